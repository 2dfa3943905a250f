package sync

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"stockbridge/internal/domain/inventory"
)

// DefaultBatchSize размер пакета строк между событиями прогресса
const DefaultBatchSize = 100

// TablePosition положение таблицы в последовательности прохода
type TablePosition struct {
	Index int
	Total int
}

type outcome int

const (
	outcomeInserted outcome = iota
	outcomeUpdated
)

// Engine сводит строки одной удаленной таблицы в локальное хранилище.
// Пакеты нужны только для частоты событий прогресса, транзакций они не означают.
type Engine struct {
	store     LocalStore
	batchSize int
	log       *slog.Logger
}

// NewEngine создает Engine. batchSize <= 0 заменяется на DefaultBatchSize.
func NewEngine(store LocalStore, batchSize int, log *slog.Logger) *Engine {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Engine{
		store:     store,
		batchSize: batchSize,
		log:       log.With(slog.String("component", "table_sync")),
	}
}

// SyncTable синхронизирует одну таблицу. Ошибки строк пропускаются,
// ошибка чтения таблицы дает Success=false.
func (e *Engine) SyncTable(ctx context.Context, remote RemoteStore, kind inventory.Kind, pos TablePosition, onProgress ProgressFunc) Result {
	if err := kind.Validate(); err != nil {
		return Result{TableName: kind.String(), Error: err.Error()}
	}

	name := kind.TableName()
	result := Result{TableName: name}
	log := e.log.With(slog.String("table", name))

	exists, err := remote.HasTable(ctx, name)
	if err != nil {
		return e.tableFailed(log, result, fmt.Errorf("check table: %w", err))
	}
	if !exists {
		log.Info("table not found in remote database, skipping")
		result.Success = true
		result.Note = fmt.Sprintf("table %s not present in remote database", name)
		return result
	}

	rows, err := remote.ReadRows(ctx, name)
	if err != nil {
		return e.tableFailed(log, result, fmt.Errorf("read rows: %w", err))
	}
	result.RecordsFound = len(rows)

	for start := 0; start < len(rows); start += e.batchSize {
		if err := ctx.Err(); err != nil {
			return e.tableFailed(log, result, err)
		}

		if onProgress != nil {
			onProgress(Progress{
				CurrentTable:    name,
				TablesCompleted: pos.Index,
				TotalTables:     pos.Total,
				CurrentRecords:  start,
				TotalRecords:    len(rows),
				OverallProgress: overallProgress(pos, start, len(rows)),
			})
		}

		end := min(start+e.batchSize, len(rows))
		for i := start; i < end; i++ {
			res, err := e.applyRow(ctx, kind, rows[i])
			if err != nil {
				log.Warn("row skipped", "row", i, "error", err)
				continue
			}
			switch res {
			case outcomeInserted:
				result.RecordsInserted++
			case outcomeUpdated:
				result.RecordsUpdated++
			}
		}
	}

	result.Success = true
	log.Info("table synced",
		"found", result.RecordsFound,
		"inserted", result.RecordsInserted,
		"updated", result.RecordsUpdated,
		"failed", result.Failed(),
	)
	return result
}

func (e *Engine) tableFailed(log *slog.Logger, result Result, err error) Result {
	log.Error("table sync failed", "error", err)
	result.Success = false
	result.Error = err.Error()
	return result
}

func (e *Engine) applyRow(ctx context.Context, kind inventory.Kind, row inventory.Row) (outcome, error) {
	switch kind {
	case inventory.KindInventory:
		return e.applyInventory(ctx, row)
	case inventory.KindStockIn, inventory.KindStockOut:
		return e.applyStock(ctx, kind, row)
	case inventory.KindProductMaster:
		return e.applyProduct(ctx, row)
	}
	return 0, kind.Validate()
}

func (e *Engine) applyInventory(ctx context.Context, row inventory.Row) (outcome, error) {
	rec, err := inventory.DecodeInventory(row)
	if err != nil {
		return 0, err
	}

	id, found, err := e.store.FindInventory(ctx, rec.Key())
	if err != nil {
		return 0, fmt.Errorf("find inventory: %w", err)
	}
	if found {
		if err := e.store.UpdateInventory(ctx, id, rec); err != nil {
			return 0, fmt.Errorf("update inventory %d: %w", id, err)
		}
		return outcomeUpdated, nil
	}

	if err := e.store.InsertInventory(ctx, rec); err != nil {
		return 0, fmt.Errorf("insert inventory: %w", err)
	}
	return outcomeInserted, nil
}

func (e *Engine) applyStock(ctx context.Context, kind inventory.Kind, row inventory.Row) (outcome, error) {
	rec, err := inventory.DecodeStock(kind, row)
	if err != nil {
		return 0, err
	}

	id, found, err := e.store.FindStock(ctx, kind, rec.Key())
	if err != nil {
		return 0, fmt.Errorf("find %s: %w", kind, err)
	}
	if found {
		if err := e.store.UpdateStock(ctx, kind, id, rec); err != nil {
			return 0, fmt.Errorf("update %s %d: %w", kind, id, err)
		}
		return outcomeUpdated, nil
	}

	if err := e.store.InsertStock(ctx, kind, rec); err != nil {
		return 0, fmt.Errorf("insert %s: %w", kind, err)
	}
	return outcomeInserted, nil
}

// applyProduct для существующего товара обновляет только количество в коробке
func (e *Engine) applyProduct(ctx context.Context, row inventory.Row) (outcome, error) {
	rec, err := inventory.DecodeProduct(row)
	if err != nil {
		return 0, err
	}

	id, found, err := e.store.FindProduct(ctx, rec.JanCode)
	if err != nil {
		return 0, fmt.Errorf("find product: %w", err)
	}
	if found {
		if err := e.store.UpdateProductBoxQuantity(ctx, id, rec.BoxQuantity); err != nil {
			return 0, fmt.Errorf("update product %d: %w", id, err)
		}
		return outcomeUpdated, nil
	}

	if err := e.store.InsertProduct(ctx, rec); err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	return outcomeInserted, nil
}
