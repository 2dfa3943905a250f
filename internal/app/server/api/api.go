// Локальный HTTP API для настольного интерфейса:
//
//GET    /api/v1/health
//GET    /api/v1/doctor
//GET    /api/v1/devices
//GET    /api/v1/devices/{id}
//POST   /api/v1/devices/{id}/authorize
//GET    /api/v1/devices/{id}/files?path=
//POST   /api/v1/devices/{id}/pull
//POST   /api/v1/devices/{id}/push
//POST   /api/v1/devices/{id}/mkdir
//DELETE /api/v1/devices/{id}/files?path=
//POST   /api/v1/sync               # SSE: progress, result, error

package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	"stockbridge/internal/app"
	deviceAPI "stockbridge/internal/app/server/api/http/device"
	healthAPI "stockbridge/internal/app/server/api/http/health"
	"stockbridge/internal/app/server/api/http/middleware"
	"stockbridge/internal/app/server/api/http/middleware/logger"
	syncAPI "stockbridge/internal/app/server/api/http/sync"
)

type Handlers struct {
	Health *healthAPI.Handler
	Device *deviceAPI.Handler
	Sync   *syncAPI.Handler
}

// New создает *chi.Mux со всеми операциями, зарегистрированными через huma
func New(a *app.App) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Stockbridge API", "1.0.0")
	API := humachi.New(mux, config)

	h := handlers(a, a.Log)
	h.Health.SetupRoutes(API)
	h.Device.SetupRoutes(API)
	h.Sync.SetupRoutes(API)

	return mux
}

func handlers(a *app.App, log *slog.Logger) *Handlers {
	middlewares := middleware.NewContainer()
	middlewares.Use(logger.New(log).Middleware())

	healthHandler := healthAPI.NewHandler(func(ctx context.Context) app.DoctorReport {
		return a.Doctor(ctx)
	}, log, middlewares.GetAllAndClear())
	deviceHandler := deviceAPI.NewHandler(a.Transport, log, middlewares.GetAllAndClear())
	syncHandler := syncAPI.NewHandler(a.Sync, a.Config.RemoteDBPath, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Device: deviceHandler,
		Sync:   syncHandler,
	}
}
