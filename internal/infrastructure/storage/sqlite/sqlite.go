package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	// Регистрация драйвера sqlite3
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"stockbridge/internal/domain/inventory"
	"stockbridge/internal/infrastructure/migration"
	"stockbridge/internal/infrastructure/storage"
)

var _ storage.Store = (*Storage)(nil)

// Storage локальное хранилище в файле sqlite
type Storage struct {
	db  *sql.DB
	log *slog.Logger
}

// New открывает (или создает) файл базы и применяет миграции
func New(ctx context.Context, path string, log *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrate(path, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &Storage{
		db:  db,
		log: log.With(slog.String("component", "sqlite_storage")),
	}, nil
}

// dsn путь передается драйверу как есть, без разбора URL
func dsn(path string) string {
	return path + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
}

// migrate применяет миграции через отдельное соединение, его закрывает мигратор
func migrate(path string, log *slog.Logger) error {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	return migration.NewMigration(migration.DialectSQLite, migration.SQLiteEngine(db), log).Up()
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) DB() *sql.DB {
	return s.db
}

// findID возвращает id первой подходящей строки
func (s *Storage) findID(ctx context.Context, query string, args ...any) (int64, bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *Storage) FindInventory(ctx context.Context, key inventory.InventoryKey) (int64, bool, error) {
	// IS сравнивает NULL с NULL как равные
	const query = `
		SELECT id FROM inventory_data
		WHERE staff_code = ? AND shop_code = ? AND shelf_number = ? AND shelf_position = ?
		  AND input_date = ? AND jan_code IS ?
		LIMIT 1`

	id, found, err := s.findID(ctx, query,
		key.StaffCode, key.ShopCode, key.ShelfNumber, key.ShelfPosition, key.InputDate, key.JanCode)
	if err != nil {
		return 0, false, fmt.Errorf("find inventory: %w", err)
	}
	return id, found, nil
}

func (s *Storage) InsertInventory(ctx context.Context, rec inventory.InventoryRecord) error {
	query := storage.InsertQuery(inventory.KindInventory.TableName(), inventory.KindInventory.Columns(), storage.QuestionMark)
	if _, err := s.db.ExecContext(ctx, query, storage.InventoryArgs(rec)...); err != nil {
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

func (s *Storage) UpdateInventory(ctx context.Context, id int64, rec inventory.InventoryRecord) error {
	query := storage.UpdateQuery(inventory.KindInventory.TableName(), inventory.KindInventory.Columns(), storage.QuestionMark)
	args := append(storage.InventoryArgs(rec), id)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	return nil
}

func (s *Storage) FindStock(ctx context.Context, kind inventory.Kind, key inventory.StockKey) (int64, bool, error) {
	if err := storage.StockKind(kind); err != nil {
		return 0, false, err
	}
	query := `SELECT id FROM ` + kind.TableName() + `
		WHERE slip_number = ? AND product_code = ? AND input_date = ? AND shop_code = ?
		LIMIT 1`

	id, found, err := s.findID(ctx, query, key.SlipNumber, key.ProductCode, key.InputDate, key.ShopCode)
	if err != nil {
		return 0, false, fmt.Errorf("find %s: %w", kind, err)
	}
	return id, found, nil
}

func (s *Storage) InsertStock(ctx context.Context, kind inventory.Kind, rec inventory.StockRecord) error {
	if err := storage.StockKind(kind); err != nil {
		return err
	}
	query := storage.InsertQuery(kind.TableName(), kind.Columns(), storage.QuestionMark)
	if _, err := s.db.ExecContext(ctx, query, storage.StockArgs(kind, rec)...); err != nil {
		return fmt.Errorf("insert %s: %w", kind, err)
	}
	return nil
}

func (s *Storage) UpdateStock(ctx context.Context, kind inventory.Kind, id int64, rec inventory.StockRecord) error {
	if err := storage.StockKind(kind); err != nil {
		return err
	}
	query := storage.UpdateQuery(kind.TableName(), kind.Columns(), storage.QuestionMark)
	args := append(storage.StockArgs(kind, rec), id)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update %s: %w", kind, err)
	}
	return nil
}

func (s *Storage) FindProduct(ctx context.Context, janCode string) (int64, bool, error) {
	id, found, err := s.findID(ctx, `SELECT id FROM product_master WHERE jan_code = ?`, janCode)
	if err != nil {
		return 0, false, fmt.Errorf("find product: %w", err)
	}
	return id, found, nil
}

func (s *Storage) InsertProduct(ctx context.Context, rec inventory.ProductRecord) error {
	query := storage.InsertQuery(inventory.KindProductMaster.TableName(), inventory.KindProductMaster.Columns(), storage.QuestionMark)
	if _, err := s.db.ExecContext(ctx, query, storage.ProductArgs(rec)...); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *Storage) UpdateProductBoxQuantity(ctx context.Context, id int64, boxQuantity int) error {
	const query = `UPDATE product_master SET box_quantity = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, boxQuantity, id); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (s *Storage) TableCounts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(inventory.Kinds))
	for _, kind := range inventory.Kinds {
		var n int
		if err := s.db.QueryRowContext(ctx, storage.CountQuery(kind.TableName())).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", kind, err)
		}
		counts[kind.TableName()] = n
	}
	return counts, nil
}
