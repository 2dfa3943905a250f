package sync

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"stockbridge/internal/domain/inventory"
)

// Servicer сценарий синхронизации, доступный CLI и HTTP API
type Servicer interface {
	// Sync извлекает базу устройства и сводит все таблицы в локальное хранилище
	Sync(ctx context.Context, deviceID, remotePath string, onProgress ProgressFunc) (*Report, error)
}

// Service последовательно выполняет извлечение и синхронизацию таблиц
type Service struct {
	extractor *Extractor
	engine    *Engine
	open      RemoteOpener
	tables    []inventory.Kind
	running   atomic.Bool
	log       *slog.Logger
}

// Option настройка Service
type Option func(*Service)

// WithTables ограничивает набор таблиц. Порядок сохраняется как передан.
func WithTables(kinds ...inventory.Kind) Option {
	return func(s *Service) {
		s.tables = kinds
	}
}

// NewService создает сервис синхронизации
func NewService(extractor *Extractor, engine *Engine, open RemoteOpener, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		extractor: extractor,
		engine:    engine,
		open:      open,
		tables:    inventory.Kinds,
		log:       log.With(slog.String("component", "sync")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync выполняет один проход синхронизации.
// Ошибка возвращается только если не удалось получить базу с устройства,
// сбои отдельных таблиц отражаются в Report.Results.
func (s *Service) Sync(ctx context.Context, deviceID, remotePath string, onProgress ProgressFunc) (*Report, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrSyncInProgress
	}
	defer s.running.Store(false)

	runID := uuid.NewString()
	log := s.log.With(slog.String("run_id", runID), slog.String("device_id", deviceID))
	start := time.Now()
	log.Info("sync started", "remote", remotePath)

	localPath, err := s.extractor.Extract(ctx, deviceID, remotePath)
	if err != nil {
		log.Error("extraction failed", "error", err)
		return nil, err
	}
	defer removeScratch(log, localPath)

	remote, err := s.open(localPath)
	if err != nil {
		log.Error("failed to open extracted database", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrCorruptExtraction, err)
	}
	defer func() {
		if err := remote.Close(); err != nil {
			log.Warn("failed to close extracted database", "error", err)
		}
	}()

	report := &Report{RunID: runID, Results: make([]Result, 0, len(s.tables))}
	for i, kind := range s.tables {
		pos := TablePosition{Index: i, Total: len(s.tables)}
		report.Results = append(report.Results, s.engine.SyncTable(ctx, remote, kind, pos, onProgress))
	}

	if onProgress != nil {
		onProgress(Progress{
			TablesCompleted: len(s.tables),
			TotalTables:     len(s.tables),
			OverallProgress: 100,
		})
	}

	failed := 0
	for _, r := range report.Results {
		if !r.Success {
			failed++
		}
	}
	log.Info("sync finished", "tables", len(report.Results), "failed_tables", failed, "elapsed", time.Since(start))

	return report, nil
}
