package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/quake-views/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/quake-views/internal/adapter/kafka"
	"github.com/couchcryptid/quake-views/internal/config"
	"github.com/couchcryptid/quake-views/internal/dataset"
	"github.com/couchcryptid/quake-views/internal/domain"
	"github.com/couchcryptid/quake-views/internal/linked"
	"github.com/couchcryptid/quake-views/internal/observability"
	"github.com/couchcryptid/quake-views/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	catalog, err := dataset.Load(cfg.DatasetPath, cfg.SummaryMinMagnitude, logger)
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	if len(catalog.Summary) == 0 {
		logger.Warn("summary set is empty; every selection will be rejected",
			"min_magnitude", cfg.SummaryMinMagnitude)
	}

	session := linked.NewSession(
		catalog.Full,
		catalog.Summary,
		domain.BoxResolver{},
		cfg.RegionHalfWidth,
		cfg.CacheSize,
		logger,
		metrics,
	)
	builder := pipeline.NewSnapshotBuilder(session, logger)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)

	p := pipeline.New(reader, builder, writer, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, builder, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start selection pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
