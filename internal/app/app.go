package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"stockbridge/internal/config"
	"stockbridge/internal/domain/device"
	"stockbridge/internal/domain/sync"
	"stockbridge/internal/infrastructure/storage"
	"stockbridge/internal/infrastructure/storage/postgres"
	"stockbridge/internal/infrastructure/storage/sqlite"
)

// App собирает компоненты приложения. Глобального состояния нет:
// CLI и HTTP-сервер получают App явно.
type App struct {
	Config    *config.Config
	Log       *slog.Logger
	Transport *device.Transport
	// Store nil, если хранилище не открылось. Причина в StoreErr.
	Store    storage.Store
	StoreErr error
	Sync     sync.Servicer
}

// New собирает приложение. Недоступное хранилище не мешает работе с устройствами:
// ошибка сохраняется в StoreErr, а синхронизация возвращает sync.ErrStoreUnavailable.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}

	transport := device.NewTransport(device.TransportConfig{
		BridgePath:       cfg.BridgePath,
		CommandTimeout:   cfg.BridgeTimeout,
		AuthorizeTimeout: cfg.AuthorizeTimeout,
	}, device.NewExecRunner(), log)

	a := &App{
		Config:    cfg,
		Log:       log,
		Transport: transport,
	}

	store, err := OpenStore(ctx, cfg, log)
	if err != nil {
		log.Warn("local store unavailable", "driver", cfg.StoreDriver, "error", err)
		a.StoreErr = fmt.Errorf("open local store: %w", err)
		a.Sync = storeUnavailable{err: a.StoreErr}
		return a, nil
	}

	extractor := sync.NewExtractor(transport, sqlite.Validate, cfg.ScratchDir, log)
	engine := sync.NewEngine(store, cfg.BatchSize, log)

	a.Store = store
	a.Sync = sync.NewService(extractor, engine, sqlite.OpenRemote, log)
	return a, nil
}

// storeUnavailable отвечает на любую синхронизацию ошибкой открытия хранилища
type storeUnavailable struct {
	err error
}

func (s storeUnavailable) Sync(context.Context, string, string, sync.ProgressFunc) (*sync.Report, error) {
	return nil, fmt.Errorf("%w: %v", sync.ErrStoreUnavailable, s.err)
}

// OpenStore открывает локальное хранилище выбранного драйвера
func OpenStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		s, err := sqlite.New(ctx, cfg.DataPath, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		s, err := postgres.New(ctx, cfg.DatabaseURI, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}
	return a.Store.Close()
}

// DoctorReport состояние окружения
type DoctorReport struct {
	BridgePath      string         `json:"bridge_path"`
	BridgeAvailable bool           `json:"bridge_available"`
	Devices         int            `json:"devices"`
	StoreDriver     string         `json:"store_driver"`
	StoreOK         bool           `json:"store_ok"`
	StoreError      string         `json:"store_error,omitempty"`
	TableCounts     map[string]int `json:"table_counts,omitempty"`
}

// Err сводная ошибка проверки или nil, если все в порядке
func (r DoctorReport) Err() error {
	var errs []error
	if !r.BridgeAvailable {
		errs = append(errs, fmt.Errorf("%w: %s", device.ErrBridgeUnavailable, r.BridgePath))
	}
	if !r.StoreOK {
		errs = append(errs, fmt.Errorf("local store: %s", r.StoreError))
	}
	return errors.Join(errs...)
}

// Doctor проверяет доступность моста и локального хранилища
func (a *App) Doctor(ctx context.Context) DoctorReport {
	return Diagnose(ctx, a.Config, a.Transport, a.Store, a.StoreErr)
}

// Diagnose собирает DoctorReport из переданных зависимостей.
// storeErr ошибка открытия хранилища, тогда store не используется.
func Diagnose(ctx context.Context, cfg *config.Config, bridge device.Bridge, store storage.Store, storeErr error) DoctorReport {
	report := DoctorReport{
		BridgePath:  cfg.BridgePath,
		StoreDriver: cfg.StoreDriver,
	}

	report.BridgeAvailable = bridge.IsAvailable(ctx)
	if report.BridgeAvailable {
		report.Devices = len(bridge.ListDevices(ctx))
	}

	switch {
	case storeErr != nil:
		report.StoreError = storeErr.Error()
	case store == nil:
		report.StoreError = "local store is not configured"
	default:
		counts, err := store.TableCounts(ctx)
		if err != nil {
			report.StoreError = err.Error()
		} else {
			report.StoreOK = true
			report.TableCounts = counts
		}
	}

	return report
}

type ctxKey struct{}

// WithApp кладет App в контекст команды
func WithApp(ctx context.Context, a *App) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// FromContext достает App из контекста команды
func FromContext(ctx context.Context) (*App, error) {
	a, ok := ctx.Value(ctxKey{}).(*App)
	if !ok || a == nil {
		return nil, errors.New("приложение не инициализировано")
	}
	return a, nil
}
