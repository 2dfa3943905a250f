package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"stockbridge/internal/app"
	"stockbridge/internal/config"
	"stockbridge/internal/utils/logger"
)

var (
	cfgFile    string
	debug      bool
	jsonOutput bool
	bridgePath string
)

var rootCmd = &cobra.Command{
	Use:   "stockbridge",
	Short: "Stockbridge - синхронизация складских данных с терминала сбора данных",
	Long: `Stockbridge забирает данные инвентаризации, прихода, расхода и справочник
товаров с подключенного по USB устройства и сводит их в локальную базу.

Для работы нужен установленный adb (Android Debug Bridge).`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.Options{ConfigFile: cfgFile})
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if bridgePath != "" {
		cfg.BridgePath = bridgePath
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	log := newLogger(cfg)

	a, err := app.New(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(app.WithApp(cmd.Context(), a))
	return nil
}

// newLogger в CLI логи не должны смешиваться с выводом команд,
// поэтому без --debug пишем только предупреждения и ошибки
func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.LogLevel
	if !debug && (level == "" || level == "info") {
		level = "warn"
	}
	return logger.WithLevel(cfg.Env, level)
}

func closeApp(cmd *cobra.Command, _ []string) error {
	a, err := app.FromContext(cmd.Context())
	if err != nil {
		return nil
	}
	return a.Close()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл (по умолчанию ~/.stockbridge/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод в формате JSON")
	rootCmd.PersistentFlags().StringVar(&bridgePath, "adb", "", "путь к исполняемому файлу adb")

	// Команды добавляются в commands.go
}
