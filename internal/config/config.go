package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	defaultEnv              = EnvLocal
	defaultLogLevel         = "info"
	defaultBridgePath       = "adb"
	defaultStoreDriver      = DriverSQLite
	defaultConfigDir        = ".stockbridge"
	defaultDataFile         = "stockbridge.db"
	defaultRemoteDBPath     = "/sdcard/Android/data/jp.stockbridge.handy/files/inventory.db"
	defaultBatchSize        = 100
	defaultAuthorizeTimeout = 120
	defaultBridgeTimeout    = 300
	defaultServerAddress    = "localhost:8085"
)

type Config struct {
	Env              string        `mapstructure:"app_env"`
	LogLevel         string        `mapstructure:"log_level"`
	ConfigDir        string        `mapstructure:"config_dir"`
	BridgePath       string        `mapstructure:"bridge_path"`
	StoreDriver      string        `mapstructure:"store_driver"`
	DataPath         string        `mapstructure:"data_path"`
	DatabaseURI      string        `mapstructure:"database_uri"`
	RemoteDBPath     string        `mapstructure:"remote_db_path"`
	ScratchDir       string        `mapstructure:"scratch_dir"`
	BatchSize        int           `mapstructure:"batch_size"`
	AuthorizeTimeout time.Duration `mapstructure:"-"`
	BridgeTimeout    time.Duration `mapstructure:"-"`
	ServerAddress    string        `mapstructure:"server_address"`
}

// Options источники конфигурации. Пустые поля означают поиск по умолчанию.
type Options struct {
	ConfigFile string
	EnvFile    string
}

// Load читает конфигурацию из .env, YAML-файла и переменных окружения
func Load(opts Options) (*Config, error) {
	loadEnvFile(opts.EnvFile)

	v := viper.New()
	v.AutomaticEnv()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	v.SetDefault("app_env", defaultEnv)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("config_dir", filepath.Join(homeDir, defaultConfigDir))
	v.SetDefault("bridge_path", defaultBridgePath)
	v.SetDefault("store_driver", defaultStoreDriver)
	v.SetDefault("remote_db_path", defaultRemoteDBPath)
	v.SetDefault("scratch_dir", os.TempDir())
	v.SetDefault("batch_size", defaultBatchSize)
	v.SetDefault("authorize_timeout_seconds", defaultAuthorizeTimeout)
	v.SetDefault("bridge_timeout_seconds", defaultBridgeTimeout)
	v.SetDefault("server_address", defaultServerAddress)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.AddConfigPath(v.GetString("config_dir"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Конфиг не найден, используем значения по умолчанию
	}

	configDir := v.GetString("config_dir")
	dataPath := v.GetString("data_path")
	if dataPath == "" {
		dataPath = filepath.Join(configDir, defaultDataFile)
	}

	cfg := &Config{
		Env:              v.GetString("app_env"),
		LogLevel:         v.GetString("log_level"),
		ConfigDir:        configDir,
		BridgePath:       v.GetString("bridge_path"),
		StoreDriver:      v.GetString("store_driver"),
		DataPath:         dataPath,
		DatabaseURI:      v.GetString("database_uri"),
		RemoteDBPath:     v.GetString("remote_db_path"),
		ScratchDir:       v.GetString("scratch_dir"),
		BatchSize:        v.GetInt("batch_size"),
		AuthorizeTimeout: time.Duration(v.GetInt("authorize_timeout_seconds")) * time.Second,
		BridgeTimeout:    time.Duration(v.GetInt("bridge_timeout_seconds")) * time.Second,
		ServerAddress:    v.GetString("server_address"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// EnsureDirs создает директорию конфигурации и директорию локальной базы
func (c *Config) EnsureDirs() error {
	if err := os.MkdirAll(c.ConfigDir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if c.StoreDriver == DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(c.DataPath), 0700); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	return nil
}

func loadEnvFile(path string) {
	if path == "" {
		// Определяем путь к .env файлу (относительно места запуска)
		path = ".env"
		if _, err := os.Stat(path); os.IsNotExist(err) {
			path = "../.env"
		}
	}

	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			fmt.Fprintf(os.Stderr, "Ошибка загрузки .env файла: %v\n", err)
		}
	}
}

func (c *Config) validate() error {
	if c.BridgePath == "" {
		return fmt.Errorf("bridge_path не может быть пустым")
	}
	switch c.StoreDriver {
	case DriverSQLite:
		if c.DataPath == "" {
			return fmt.Errorf("data_path не может быть пустым")
		}
	case DriverPostgres:
		if c.DatabaseURI == "" {
			return fmt.Errorf("database_uri обязателен для store_driver=postgres")
		}
	default:
		return fmt.Errorf("неизвестный store_driver: %q", c.StoreDriver)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size должен быть больше нуля")
	}
	if c.AuthorizeTimeout <= 0 {
		return fmt.Errorf("authorize_timeout_seconds должен быть больше нуля")
	}
	return nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}
