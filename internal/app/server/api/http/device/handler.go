package device

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"stockbridge/internal/domain/device"
)

type Handler struct {
	bridge     device.Bridge
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(bridge device.Bridge, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		bridge:     bridge,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.infoOp(), h.info)
	huma.Register(api, h.authorizeOp(), h.authorize)
	huma.Register(api, h.filesOp(), h.files)
	huma.Register(api, h.pullOp(), h.pull)
	huma.Register(api, h.pushOp(), h.push)
	huma.Register(api, h.mkdirOp(), h.mkdir)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *listInput) (*listOutput, error) {
	return &listOutput{
		Body: listResponse{
			Status:  "Ok",
			Devices: h.bridge.ListDevices(ctx),
		},
	}, nil
}

func (h *Handler) info(ctx context.Context, input *idInput) (*infoOutput, error) {
	dev := h.bridge.GetDeviceInfo(ctx, input.ID)
	if dev == nil {
		return nil, huma.Error404NotFound("device not found: " + input.ID)
	}

	return &infoOutput{
		Body: infoResponse{
			Status: "Ok",
			Device: dev,
		},
	}, nil
}

func (h *Handler) authorize(ctx context.Context, input *idInput) (*authorizeOutput, error) {
	ok := h.bridge.AuthorizeDevice(ctx, input.ID)

	return &authorizeOutput{
		Body: authorizeResponse{
			Status:     status(ok),
			Authorized: ok,
		},
	}, nil
}

func (h *Handler) files(ctx context.Context, input *filesInput) (*filesOutput, error) {
	return &filesOutput{
		Body: filesResponse{
			Status: "Ok",
			Path:   input.Path,
			Files:  h.bridge.ListFiles(ctx, input.ID, input.Path),
		},
	}, nil
}

func (h *Handler) pull(ctx context.Context, input *transferInput) (*transferOutput, error) {
	outcome := h.bridge.PullFile(ctx, input.ID, input.Body.RemotePath, input.Body.LocalPath)

	return &transferOutput{
		Body: transferResponse{
			Status:  status(outcome.Success),
			Outcome: outcome,
		},
	}, nil
}

func (h *Handler) push(ctx context.Context, input *transferInput) (*transferOutput, error) {
	outcome := h.bridge.PushFile(ctx, input.ID, input.Body.LocalPath, input.Body.RemotePath)

	return &transferOutput{
		Body: transferResponse{
			Status:  status(outcome.Success),
			Outcome: outcome,
		},
	}, nil
}

func (h *Handler) mkdir(ctx context.Context, input *mkdirInput) (*actionOutput, error) {
	ok := h.bridge.CreateDirectory(ctx, input.ID, input.Body.Path)

	return &actionOutput{
		Body: actionResponse{
			Status:  status(ok),
			Success: ok,
		},
	}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*actionOutput, error) {
	ok := h.bridge.DeleteFile(ctx, input.ID, input.Path)

	return &actionOutput{
		Body: actionResponse{
			Status:  status(ok),
			Success: ok,
		},
	}, nil
}
