package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/ssclab/internal/api"
	"github.com/terraincognita07/ssclab/internal/i18n"
	"github.com/terraincognita07/ssclab/internal/metrics"
	"github.com/terraincognita07/ssclab/internal/undo"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, options)
		},
	}
}

func runServe(ctx context.Context, options *rootOptions) error {
	cfg, logger := options.cfg, options.logger

	s, err := openStore(options)
	if err != nil {
		return err
	}
	defer s.Close()

	if cfg.GeneratedSecret() {
		logger.Warn("SSCLAB_SECRET_KEY is not set; undo tokens use a per-process key")
	}
	if cfg.SeedOnStart {
		if _, err := s.services.Seed.SeedIfFirstLaunch(); err != nil {
			return fmt.Errorf("seed sample data: %w", err)
		}
	}

	registry := undo.NewRegistry(cfg.UndoWindow)
	defer registry.Close()

	app, err := newServer(options, s.services, registry)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("ssclab listening", "addr", "0.0.0.0:"+cfg.Port, "db", cfg.DBPath, "undo_window", cfg.UndoWindow)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newServer(options *rootOptions, services *api.Services, registry *undo.Registry) (*fiber.App, error) {
	i18nManager, err := i18n.NewManager(options.cfg.DefaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}

	handler, err := api.NewHandler(api.Options{
		Services:  services,
		SecretKey: options.cfg.SecretKey,
		I18n:      i18nManager,
		Undo:      registry,
		Metrics:   metrics.New(),
		Logger:    options.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "SSC Lab",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{Output: options.stderr}))
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, nil
}
