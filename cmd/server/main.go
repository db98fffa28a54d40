package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/merchly/order-lookup/internal/audit"
	"github.com/merchly/order-lookup/internal/cache"
	"github.com/merchly/order-lookup/internal/config"
	"github.com/merchly/order-lookup/internal/events"
	"github.com/merchly/order-lookup/internal/httpapi"
	"github.com/merchly/order-lookup/internal/lookup"
	"github.com/merchly/order-lookup/internal/observability"
	"github.com/merchly/order-lookup/internal/pkg/pool"
	"github.com/merchly/order-lookup/internal/shop"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	metrics := observability.NewInmem(256)

	client := shop.NewClient(cfg.Upstream.URL, cfg.Upstream.Token, cfg.Upstream.Timeout, logger, metrics)
	results := cache.New(cfg.Cache.Cap, cfg.Cache.MaxOrders, cfg.Cache.TTL)
	workers := pool.New(cfg.Workers)
	defer workers.Close()

	var reporters []lookup.Reporter

	if cfg.Kafka.Enabled() {
		publisher := events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		defer func() { _ = publisher.Close() }()
		reporters = append(reporters, publisher)
		logger.Info("lookup events enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	}

	if cfg.Audit.Enabled() {
		pgpool, err := pgxpool.New(context.Background(), cfg.Audit.DSN())
		if err != nil {
			logger.Fatal("audit db connect", zap.Error(err))
		}
		defer pgpool.Close()
		reporters = append(reporters, audit.NewStore(pgpool, logger))
		logger.Info("lookup audit enabled", zap.String("host", cfg.Audit.Host))
	}

	service := lookup.NewService(
		client,
		results,
		workers,
		logger,
		metrics,
		lookup.Params{PageLimit: cfg.Upstream.PageLimit, MaxPages: cfg.Upstream.MaxPages},
		reporters...,
	)

	server := httpapi.New(service, logger, metrics, httpapi.Options{
		CORSOrigins:  cfg.HTTP.CORSOrigins,
		RateLimitRPM: cfg.HTTP.RateLimitRPM,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("server starting", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(ctx, cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("listen", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
