package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	fitnessmanager "github.com/magabrotheeeer/fitness-manager/internal/app/fitness-manager"
	"github.com/magabrotheeeer/fitness-manager/internal/config"
	"github.com/magabrotheeeer/fitness-manager/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-manager/internal/migrations"
	"github.com/magabrotheeeer/fitness-manager/internal/storage/repository"
)

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return config.Load(path)
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Apply pending migrations and start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			logger := sl.New(cfg.Env)
			logger.Info("starting fitness-manager", slog.String("env", cfg.Env))
			logger.Debug("loaded config", slog.String("config", cfg.String()))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := fitnessmanager.New(ctx, cfg, logger)
			if err != nil {
				logger.Error("failed to initialize app", sl.Err(err))
				return err
			}

			if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("app stopped with error", sl.Err(err))
				return err
			}

			logger.Info("fitness-manager stopped gracefully")
			return nil
		},
	}
}

func migrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}
	cmd.AddCommand(
		migrateStepCmd(configPath, "up", "Apply all pending migrations", migrations.Run),
		migrateStepCmd(configPath, "down", "Roll back all migrations", migrations.Down),
	)
	return cmd
}

func migrateStepCmd(configPath *string, use, short string, step func(db *sql.DB, path string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			logger := sl.New(cfg.Env)

			db, err := repository.New(cfg.StorageConnectionString)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := step(db.DB, cfg.MigrationsPath); err != nil {
				return fmt.Errorf("migrate %s: %w", use, err)
			}
			logger.Info("migrations applied", slog.String("direction", use), slog.String("path", cfg.MigrationsPath))
			return nil
		},
	}
}
