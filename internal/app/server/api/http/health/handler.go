package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"stockbridge/internal/app"
)

// Diagnoser проверяет окружение (мост и локальное хранилище)
type Diagnoser func(ctx context.Context) app.DoctorReport

type Handler struct {
	diagnose   Diagnoser
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(diagnose Diagnoser, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		diagnose:   diagnose,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
	huma.Register(api, h.doctorOp(), h.doctor)
}

func (h *Handler) healthCheck(_ context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	return &Output{
		Body: Response{
			Status: "OK",
		},
	}, nil
}

func (h *Handler) doctor(ctx context.Context, _ *Input) (*DoctorOutput, error) {
	report := h.diagnose(ctx)

	status := "Ok"
	if err := report.Err(); err != nil {
		h.log.Warn("environment check failed", "error", err)
		status = "Degraded"
	}

	return &DoctorOutput{
		Body: DoctorResponse{
			Status: status,
			Report: report,
		},
	}, nil
}
