package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/sounding-explorer/internal/adapter/http"
	"github.com/couchcryptid/sounding-explorer/internal/adapter/rediscache"
	"github.com/couchcryptid/sounding-explorer/internal/adapter/soundingapi"
	"github.com/couchcryptid/sounding-explorer/internal/config"
	"github.com/couchcryptid/sounding-explorer/internal/dashboard"
	"github.com/couchcryptid/sounding-explorer/internal/domain"
	"github.com/couchcryptid/sounding-explorer/internal/observability"
	"github.com/couchcryptid/sounding-explorer/internal/render"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var source domain.SoundingSource = soundingapi.NewClient(cfg.APIBaseURL, cfg.APITimeout, metrics, logger)
	logger.Info("sounding API configured", "url", cfg.APIBaseURL, "timeout", cfg.APITimeout)

	// Redis is optional (feature-flagged via REDIS_ENABLED). An unreachable
	// server disables it rather than blocking startup.
	var closeRedis func() error
	if cfg.RedisEnabled {
		client, err := rediscache.Connect(ctx, rediscache.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			logger.Warn("redis cache disabled", "error", err)
		} else {
			source = rediscache.New(source, client, cfg.RedisPrefix, cfg.RedisTTL, metrics, logger)
			closeRedis = client.Close
			logger.Info("redis cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.RedisTTL)
		}
	} else {
		logger.Info("redis cache disabled")
	}

	source = soundingapi.NewCachedSource(source, cfg.ProfileCacheSize, metrics)

	svc := dashboard.New(source, logger, metrics, cfg.CatalogRefreshInterval)
	charts := render.New(cfg.ChartWidth, cfg.ChartHeight)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, charts, metrics, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start catalog refresher.
	go func() {
		if err := svc.Run(ctx); err != nil {
			logger.Error("catalog refresher error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if closeRedis != nil {
		if err := closeRedis(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
