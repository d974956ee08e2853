package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/taskgeo/ghcnd-fetcher/internal/api/http"
	"github.com/taskgeo/ghcnd-fetcher/internal/config"
	"github.com/taskgeo/ghcnd-fetcher/internal/ghcnd"
	"github.com/taskgeo/ghcnd-fetcher/internal/logger"
	"github.com/taskgeo/ghcnd-fetcher/internal/refdata"
	"github.com/taskgeo/ghcnd-fetcher/internal/scheduler"
	"github.com/taskgeo/ghcnd-fetcher/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "development").Fatalf("failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel, cfg.Env)

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Reference data: lookup tables plus the one-time bulk download.
	refData := refdata.NewDataset(refdata.Options{
		DataDir:    cfg.DataDir,
		BaseURL:    cfg.MirrorBaseURL,
		Client:     httpClient,
		LargeFiles: cfg.DownloadLargeFiles,
	}, log)

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Core pipeline service.
	executor := ghcnd.NewFetchExecutor(httpClient, cfg.NOAABaseURL, cfg.FetchConcurrency, log)
	service := ghcnd.NewService(refData, executor, memStore, nil, log)

	// Scheduler that periodically refreshes the configured countries.
	sched := scheduler.New(cfg.Countries, cfg.FetchInterval, cfg.FetchLookback, service, log)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "ghcnd-fetcher",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          5 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(fiberlogger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "ghcnd-fetcher",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
}
