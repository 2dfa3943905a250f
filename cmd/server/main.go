package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"stockbridge/internal/app"
	"stockbridge/internal/app/server/api"
	"stockbridge/internal/config"
	"stockbridge/internal/utils/logger"
)

const shutdownTimeout = 10 * time.Second

var configFile string

var rootCmd = &cobra.Command{
	Use:           "stockbridge-server",
	Short:         "Локальный HTTP API Stockbridge для настольного интерфейса",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(config.Options{ConfigFile: configFile})
		if err != nil {
			return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
		}
		return run(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "", "конфигурационный файл")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.WithLevel(cfg.Env, cfg.LogLevel)

	ctx, stop := context.WithCancel(ctx)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error("failed to close app", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           api.New(a),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.ServerAddress), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped with error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
