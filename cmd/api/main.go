// Package main is the entry point for the Agency CRM API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/agency-crm/backend/config"
	"github.com/agency-crm/backend/internal/infra/db"
	"github.com/agency-crm/backend/internal/infra/dependency"
	"github.com/agency-crm/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting Agency CRM API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	database, err := db.NewPostgresConnection(&cfg.Database, cfg.Server.Environment)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(model.All()...); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	reportingDB, err := db.NewSQLXConnection(&cfg.SQL)
	if err != nil {
		slog.Error("Reporting database connection failed", "error", err)
		os.Exit(1)
	}
	defer closeQuietly("reporting database", reportingDB)

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = db.NewRedisClient(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis unavailable, scheduler lock is process-local", "error", err)
			redisClient = nil
		} else {
			defer closeQuietly("redis", redisClient)
		}
	}

	injector, err := dependency.NewInjector(cfg, dependency.Infrastructure{
		DB:             database.DB(),
		SQL:            reportingDB,
		Redis:          redisClient,
		DatabaseHealth: database.HealthCheck,
	})
	if err != nil {
		slog.Error("Failed to wire application", "error", err)
		os.Exit(1)
	}

	backgroundCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	if cfg.Email.WorkerEnabled {
		go injector.EmailWorker.Start(backgroundCtx)
	}
	if cfg.Scheduler.Enabled {
		injector.Scheduler.Start()
	}
	go cleanupRateLimiter(backgroundCtx, injector)

	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	stopBackground()
	if cfg.Scheduler.Enabled {
		injector.Scheduler.Stop()
	}

	slog.Info("Server exited properly")
}

func cleanupRateLimiter(ctx context.Context, injector *dependency.Injector) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			injector.RateLimiter.Cleanup()
		}
	}
}

type closer interface {
	Close() error
}

func closeQuietly(name string, c closer) {
	if err := c.Close(); err != nil {
		slog.Error("Failed to close connection", "resource", name, "error", err)
	}
}
