package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// Регистрация драйверов баз данных для миграций
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"golang.org/x/exp/slog"
)

//go:embed sqlite/*.sql postgres/*.sql
var migrations embed.FS

// Dialect набор миграций под конкретную СУБД
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Migrator интерфейс для самой библиотеки migrate.Migrate
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine фабрика мигратора, подменяется в тестах
type MigrationEngine func(src source.Driver) (Migrator, error)

type Migration struct {
	dialect Dialect
	engine  MigrationEngine
	log     *slog.Logger
}

func NewMigration(dialect Dialect, engine MigrationEngine, log *slog.Logger) *Migration {
	return &Migration{
		dialect: dialect,
		engine:  engine,
		log:     log.With(slog.String("component", "migration")),
	}
}

// URLEngine мигратор по адресу базы (postgres://...)
func URLEngine(databaseURL string) MigrationEngine {
	return func(src source.Driver) (Migrator, error) {
		return migrate.NewWithSourceInstance("iofs", src, databaseURL)
	}
}

// SQLiteEngine мигратор поверх уже открытого соединения sqlite.
// Путь к файлу не проходит через разбор URL, поэтому пробелы и
// прочие спецсимволы в нем допустимы. Close мигратора закрывает db.
func SQLiteEngine(db *sql.DB) MigrationEngine {
	return func(src source.Driver) (Migrator, error) {
		drv, err := sqlite3.WithInstance(db, &sqlite3.Config{})
		if err != nil {
			return nil, fmt.Errorf("sqlite3 driver: %w", err)
		}
		return migrate.NewWithInstance("iofs", src, "sqlite3", drv)
	}
}

// Source открывает встроенные миграции диалекта
func Source(dialect Dialect) (source.Driver, error) {
	switch dialect {
	case DialectSQLite, DialectPostgres:
	default:
		return nil, fmt.Errorf("unknown migration dialect %q", dialect)
	}
	return iofs.New(migrations, string(dialect))
}

func (mg *Migration) Up() (err error) {
	src, err := Source(mg.dialect)
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}

	m, err := mg.engine(src)
	if err != nil {
		_ = src.Close()
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			err = errors.Join(err, fmt.Errorf("migration source error: %w", serr))
		}
		if dberr != nil {
			err = errors.Join(err, fmt.Errorf("migration database error: %w", dberr))
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.log.Debug("schema is up to date", "dialect", mg.dialect)
			return nil
		}
		return fmt.Errorf("migration up: %w", err)
	}

	mg.log.Info("schema migrated", "dialect", mg.dialect)
	return nil
}
