// Lucide server — answers football questions over HTTP by validating them,
// planning upstream API calls, and executing the plan through a shared
// redis cache.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/lucide-ai/lucide/pkg/api"
	"github.com/lucide-ai/lucide/pkg/apifootball"
	"github.com/lucide-ai/lucide/pkg/cache"
	"github.com/lucide-ai/lucide/pkg/config"
	"github.com/lucide-ai/lucide/pkg/knowledge"
	"github.com/lucide-ai/lucide/pkg/metrics"
	"github.com/lucide-ai/lucide/pkg/orchestrator"
	"github.com/lucide-ai/lucide/pkg/pipeline"
	"github.com/lucide-ai/lucide/pkg/planner"
	"github.com/lucide-ai/lucide/pkg/validator"
	"github.com/lucide-ai/lucide/pkg/version"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	// Parse command-line flags
	configDir := flag.String("config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")
	flag.Parse()

	// Load .env file from config directory
	envPath := filepath.Join(*configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		slog.Warn("Could not load .env file, continuing with existing environment",
			"path", envPath, "error", err)
	} else {
		slog.Info("Loaded environment", "path", envPath)
	}

	ctx := context.Background()

	// 1. Initialize configuration
	cfg, err := config.Initialize(ctx, *configDir)
	if err != nil {
		slog.Error("Failed to initialize configuration", "error", err)
		os.Exit(1)
	}

	// 2. Connect to redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := rdb.Close(); err != nil {
			slog.Error("Error closing redis client", "error", err)
		}
	}()
	if err := rdb.Ping(ctx).Err(); err != nil {
		// Degraded, not fatal: the cache treats backend errors as misses.
		slog.Warn("Redis unreachable at startup, caching degraded", "addr", cfg.Redis.Addr, "error", err)
	} else {
		slog.Info("Connected to redis", "addr", cfg.Redis.Addr)
	}

	// 3. Metrics registry and collectors
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	// 4. Knowledge base and cache
	kb := knowledge.NewDefaultBase()
	slog.Info("Endpoint catalog loaded", "endpoints", kb.Len())

	sharedCache, err := cache.New(rdb, kb, m)
	if err != nil {
		slog.Error("Failed to initialize cache", "error", err)
		os.Exit(1)
	}
	metrics.RegisterHitRate(registry, sharedCache.HitRate)

	// 5. Pipeline stages
	v, err := validator.New(m)
	if err != nil {
		slog.Error("Failed to initialize validator", "error", err)
		os.Exit(1)
	}

	p, err := planner.New(kb, sharedCache, m)
	if err != nil {
		slog.Error("Failed to initialize planner", "error", err)
		os.Exit(1)
	}

	client, err := apifootball.New(kb, apifootball.Config{
		BaseURL: cfg.Upstream.BaseURL,
		APIKey:  cfg.Upstream.APIKey,
		Timeout: cfg.Upstream.Timeout,
	})
	if err != nil {
		slog.Error("Failed to initialize upstream client", "error", err)
		os.Exit(1)
	}

	o, err := orchestrator.New(client, sharedCache, m, orchestrator.Config{
		MaxRetries:      cfg.Orchestrator.MaxRetries,
		RetryDelay:      cfg.Orchestrator.RetryDelay,
		PlanTimeout:     cfg.Orchestrator.PlanTimeout,
		BreakerFailures: cfg.Orchestrator.BreakerFailures,
		BreakerCooldown: cfg.Orchestrator.BreakerCooldown,
	})
	if err != nil {
		slog.Error("Failed to initialize orchestrator", "error", err)
		os.Exit(1)
	}

	pipe, err := pipeline.New(v, p, o)
	if err != nil {
		slog.Error("Failed to initialize pipeline", "error", err)
		os.Exit(1)
	}
	slog.Info("Pipeline initialized")

	// 6. Start HTTP server (non-blocking)
	httpServer := api.NewServer(pipe, rdb, registry, cfg.Server.ListenAddr)
	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
			errCh <- err
		}
	}()

	slog.Info("Lucide started successfully", "version", version.Full(), "addr", cfg.Server.ListenAddr)

	// 7. Wait for shutdown signal or server error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigCh:
		slog.Info("Shutdown signal received", "signal", sig)
	case err := <-errCh:
		slog.Error("Server error triggered shutdown", "error", err)
	}

	// 8. Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
