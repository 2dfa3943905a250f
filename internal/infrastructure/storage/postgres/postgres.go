package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"stockbridge/internal/domain/inventory"
	"stockbridge/internal/infrastructure/migration"
	"stockbridge/internal/infrastructure/storage"
)

var _ storage.Store = (*Storage)(nil)

type Storage struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func New(ctx context.Context, databaseURI string, log *slog.Logger) (*Storage, error) {
	pool, err := pgxpool.New(ctx, databaseURI)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	mg := migration.NewMigration(migration.DialectPostgres, migration.URLEngine(databaseURI), log)
	if err := mg.Up(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &Storage{
		pool: pool,
		log:  log.With(slog.String("component", "postgres_storage")),
	}, nil
}

func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.pool
}

func (s *Storage) findID(ctx context.Context, query string, args ...any) (int64, bool, error) {
	var id int64
	err := s.pool.QueryRow(ctx, query, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *Storage) FindInventory(ctx context.Context, key inventory.InventoryKey) (int64, bool, error) {
	const query = `
		SELECT id FROM inventory_data
		WHERE staff_code = $1 AND shop_code = $2 AND shelf_number = $3 AND shelf_position = $4
		  AND input_date = $5 AND jan_code IS NOT DISTINCT FROM $6
		LIMIT 1`

	id, found, err := s.findID(ctx, query,
		key.StaffCode, key.ShopCode, key.ShelfNumber, key.ShelfPosition, key.InputDate, key.JanCode)
	if err != nil {
		s.log.Error("failed to find inventory row", "error", err)
		return 0, false, fmt.Errorf("find inventory: %w", err)
	}
	return id, found, nil
}

func (s *Storage) InsertInventory(ctx context.Context, rec inventory.InventoryRecord) error {
	query := storage.InsertQuery(inventory.KindInventory.TableName(), inventory.KindInventory.Columns(), storage.Dollar)
	if _, err := s.pool.Exec(ctx, query, storage.InventoryArgs(rec)...); err != nil {
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

func (s *Storage) UpdateInventory(ctx context.Context, id int64, rec inventory.InventoryRecord) error {
	query := storage.UpdateQuery(inventory.KindInventory.TableName(), inventory.KindInventory.Columns(), storage.Dollar)
	if _, err := s.pool.Exec(ctx, query, append(storage.InventoryArgs(rec), id)...); err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	return nil
}

func (s *Storage) FindStock(ctx context.Context, kind inventory.Kind, key inventory.StockKey) (int64, bool, error) {
	if err := storage.StockKind(kind); err != nil {
		return 0, false, err
	}
	query := `SELECT id FROM ` + kind.TableName() + `
		WHERE slip_number = $1 AND product_code = $2 AND input_date = $3 AND shop_code = $4
		LIMIT 1`

	id, found, err := s.findID(ctx, query, key.SlipNumber, key.ProductCode, key.InputDate, key.ShopCode)
	if err != nil {
		s.log.Error("failed to find stock row", "table", kind.TableName(), "error", err)
		return 0, false, fmt.Errorf("find %s: %w", kind, err)
	}
	return id, found, nil
}

func (s *Storage) InsertStock(ctx context.Context, kind inventory.Kind, rec inventory.StockRecord) error {
	if err := storage.StockKind(kind); err != nil {
		return err
	}
	query := storage.InsertQuery(kind.TableName(), kind.Columns(), storage.Dollar)
	if _, err := s.pool.Exec(ctx, query, storage.StockArgs(kind, rec)...); err != nil {
		return fmt.Errorf("insert %s: %w", kind, err)
	}
	return nil
}

func (s *Storage) UpdateStock(ctx context.Context, kind inventory.Kind, id int64, rec inventory.StockRecord) error {
	if err := storage.StockKind(kind); err != nil {
		return err
	}
	query := storage.UpdateQuery(kind.TableName(), kind.Columns(), storage.Dollar)
	if _, err := s.pool.Exec(ctx, query, append(storage.StockArgs(kind, rec), id)...); err != nil {
		return fmt.Errorf("update %s: %w", kind, err)
	}
	return nil
}

func (s *Storage) FindProduct(ctx context.Context, janCode string) (int64, bool, error) {
	id, found, err := s.findID(ctx, `SELECT id FROM product_master WHERE jan_code = $1`, janCode)
	if err != nil {
		return 0, false, fmt.Errorf("find product: %w", err)
	}
	return id, found, nil
}

func (s *Storage) InsertProduct(ctx context.Context, rec inventory.ProductRecord) error {
	query := storage.InsertQuery(inventory.KindProductMaster.TableName(), inventory.KindProductMaster.Columns(), storage.Dollar)
	if _, err := s.pool.Exec(ctx, query, storage.ProductArgs(rec)...); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *Storage) UpdateProductBoxQuantity(ctx context.Context, id int64, boxQuantity int) error {
	const query = `UPDATE product_master SET box_quantity = $1, updated_at = now() WHERE id = $2`
	if _, err := s.pool.Exec(ctx, query, boxQuantity, id); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (s *Storage) TableCounts(ctx context.Context) (map[string]int, error) {
	batch := &pgx.Batch{}
	for _, kind := range inventory.Kinds {
		batch.Queue(storage.CountQuery(kind.TableName()))
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	counts := make(map[string]int, len(inventory.Kinds))
	for _, kind := range inventory.Kinds {
		var n int
		if err := br.QueryRow().Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", kind, err)
		}
		counts[kind.TableName()] = n
	}
	return counts, nil
}
