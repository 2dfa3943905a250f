package sync

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"golang.org/x/exp/slog"

	"stockbridge/internal/domain/sync"
)

type Handler struct {
	service           sync.Servicer
	defaultRemotePath string
	log               *slog.Logger
	middleware        huma.Middlewares
}

func NewHandler(service sync.Servicer, defaultRemotePath string, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:           service,
		defaultRemotePath: defaultRemotePath,
		log:               log,
		middleware:        middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	sse.Register(api, h.syncOp(), map[string]any{
		"progress": sync.Progress{},
		"result":   sync.Report{},
		"error":    errorEvent{},
	}, h.sync)
}

// sync передает события прогресса по мере выполнения и завершает поток итоговым отчетом
func (h *Handler) sync(ctx context.Context, input *syncInput, send sse.Sender) {
	remotePath := input.Body.RemotePath
	if remotePath == "" {
		remotePath = h.defaultRemotePath
	}

	report, err := h.service.Sync(ctx, input.Body.DeviceID, remotePath, func(p sync.Progress) {
		if err := send.Data(p); err != nil {
			h.log.Debug("failed to send progress event", "error", err)
		}
	})
	if err != nil {
		h.log.Warn("sync failed", "device_id", input.Body.DeviceID, "error", err)
		_ = send.Data(errorEvent{Code: errorCode(err), Message: err.Error()})
		return
	}

	if err := send.Data(*report); err != nil {
		h.log.Debug("failed to send result event", "error", err)
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, sync.ErrExtractionFailed):
		return "extraction_failed"
	case errors.Is(err, sync.ErrEmptyExtraction):
		return "empty_extraction"
	case errors.Is(err, sync.ErrCorruptExtraction):
		return "corrupt_extraction"
	case errors.Is(err, sync.ErrSyncInProgress):
		return "sync_in_progress"
	case errors.Is(err, sync.ErrStoreUnavailable):
		return "store_unavailable"
	}
	return "internal"
}
