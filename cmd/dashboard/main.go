package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/micabrunel/marcelle-mobi/internal/api/http"
	"github.com/micabrunel/marcelle-mobi/internal/catalog"
	"github.com/micabrunel/marcelle-mobi/internal/config"
	"github.com/micabrunel/marcelle-mobi/internal/dashboard"
	"github.com/micabrunel/marcelle-mobi/internal/observability"
	"github.com/micabrunel/marcelle-mobi/internal/scheduler"
	"github.com/micabrunel/marcelle-mobi/internal/store"
	"github.com/micabrunel/marcelle-mobi/internal/upstream"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)
	metrics := observability.NewMetrics()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Error("failed to load catalog", "path", cfg.CatalogPath, "error", err)
		os.Exit(1)
	}

	// Shared HTTP client for the upstream endpoints, with retries and circuit breakers.
	client := upstream.NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.UpstreamBaseURL, upstream.BackoffConfig{
		MaxRetries:      cfg.MaxRetries,
		InitialInterval: cfg.RetryInitial,
		MaxInterval:     cfg.RetryMax,
	})

	// One dashboard store per page session.
	sessions := store.NewMemoryStore(cfg.SessionMaxCount, cfg.SessionMaxIdle, dashboard.DefaultAssets(cfg.AssetBaseURL), nil)

	service := dashboard.NewService(sessions, dashboard.Sources{
		Weather:    client,
		AirQuality: client,
		Alerts:     client,
	}, cat, log, metrics)

	// Scheduler that periodically refreshes every live session.
	sched := scheduler.New(cfg.RefreshInterval, cfg.RefreshTimeout, service, log, metrics)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "marcelle-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.HTTPTimeout * time.Duration(cfg.MaxRetries+2),
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  "marcelle-dashboard",
			"sessions": sessions.Len(),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpapi.RegisterRoutes(app, service)

	go func() {
		log.Info("listening", "port", cfg.Port, "upstream", cfg.UpstreamBaseURL)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
}
