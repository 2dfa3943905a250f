package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"stockbridge/internal/domain/inventory"
	"stockbridge/internal/domain/sync"
)

// RemoteStore извлеченная с устройства база, открытая только на чтение
type RemoteStore struct {
	db *sql.DB
}

func readOnlyDSN(path string) string {
	return "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro"
}

// OpenRemote открывает файл базы только на чтение
func OpenRemote(path string) (sync.RemoteStore, error) {
	db, err := sql.Open("sqlite3", readOnlyDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open remote database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open remote database: %w", err)
	}
	return &RemoteStore{db: db}, nil
}

// Validate проверяет, что файл является читаемой базой sqlite
func Validate(path string) error {
	db, err := sql.Open("sqlite3", readOnlyDSN(path))
	if err != nil {
		return err
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master`).Scan(&n); err != nil {
		return err
	}
	return nil
}

func (r *RemoteStore) HasTable(ctx context.Context, name string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RemoteStore) ReadRows(ctx context.Context, name string) ([]inventory.Row, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT * FROM `+quoteIdent(name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var result []inventory.Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(inventory.Row, len(cols))
		for i, col := range cols {
			row[strings.ToLower(col)] = normalize(values[i])
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *RemoteStore) Close() error {
	return r.db.Close()
}

// normalize приводит значения драйвера к виду, понятному декодеру строк.
// Колонки с типом DATE/DATETIME драйвер возвращает как time.Time.
func normalize(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format(time.DateOnly)
		}
		return t.Format(time.DateTime)
	}
	return v
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
