// Package main is the entry point for the poolplane server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"poolplane/internal/catalog"
	catalogpg "poolplane/internal/catalog/postgres"
	"poolplane/internal/config"
	"poolplane/internal/jobs"
	"poolplane/internal/logger"
	"poolplane/internal/observability"
	"poolplane/internal/pools"
	"poolplane/internal/resolver"
	"poolplane/internal/server"
	"poolplane/internal/server/handlers"
)

func main() {
	migrateFlag := flag.Bool("migrate", false, "Run database migrations before starting")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	slogger := logger.New()
	ctx := context.Background()

	// Catalog selection: Postgres when configured, in-memory otherwise.
	var (
		store catalog.Store
		ready func(context.Context) error
	)
	if cfg.DatabaseURL != "" {
		pg, err := catalogpg.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to DB: %v", err)
		}
		defer pg.Close()

		if *migrateFlag {
			slogger.Info("running database migrations")
			if err := catalogpg.Migrate(pg.DB()); err != nil {
				log.Fatalf("Migration failed: %v", err)
			}
			slogger.Info("migrations completed")
		}
		store = pg
		ready = pg.Ping
	} else {
		slogger.Info("no DATABASE_URL configured, using in-memory catalog")
		store = catalog.NewMemory()
	}

	// Tracing
	if cfg.OTELEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(ctx, "poolplane-server", cfg.OTELEndpoint)
		if err != nil {
			log.Fatalf("Failed to init tracing: %v", err)
		}
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				slogger.Warn("failed to shutdown tracer", "error", err)
			}
		}()
	}

	// Metrics
	metricsHandler, shutdownMetrics, err := observability.InitMetrics("poolplane-server")
	if err != nil {
		log.Fatalf("Failed to init metrics: %v", err)
	}
	defer func() {
		if err := shutdownMetrics(context.Background()); err != nil {
			slogger.Warn("failed to shutdown metrics", "error", err)
		}
	}()

	// Core wiring: resolver, registry, worker pool, dispatcher.
	res := resolver.New(store)
	registry := jobs.NewRegistry()
	refresher := pools.NewCatalogRefresher(store)
	pool := jobs.NewPool(registry, refresher, cfg.WorkerConcurrency, cfg.JobQueueDepth, slogger)
	dispatcher := jobs.NewDispatcher(res, registry, pool, slogger)

	// Observable gauges read registry/queue state only when scraped.
	meter := otel.Meter("poolplane-server")
	_, err = meter.Int64ObservableGauge("poolplane.jobs.active",
		metric.WithDescription("Refresh jobs currently queued or running"),
		metric.WithInt64Callback(func(ctx context.Context, obs metric.Int64Observer) error {
			obs.Observe(registry.ActiveCount())
			return nil
		}),
	)
	if err != nil {
		slogger.Warn("failed to register active jobs metric", "error", err)
	}
	_, err = meter.Int64ObservableGauge("poolplane.queue.depth",
		metric.WithDescription("Refresh tasks waiting for a worker"),
		metric.WithInt64Callback(func(ctx context.Context, obs metric.Int64Observer) error {
			obs.Observe(pool.Depth())
			return nil
		}),
	)
	if err != nil {
		slogger.Warn("failed to register queue depth metric", "error", err)
	}

	workerCtx, stopWorkers := context.WithCancel(ctx)
	pool.Start(workerCtx)

	h := handlers.New(res, dispatcher, registry, store, ready, slogger)
	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	srv := server.New(addr, h, server.Options{
		MetricsHandler: http.Handler(metricsHandler),
		RateLimit:      cfg.RateLimit,
	})

	go func() {
		slogger.Info("poolplane server starting", "addr", addr)
		if err := srv.Run(ctx); err != nil {
			slogger.Error("server stopped", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Let in-flight refresh jobs finish before exiting.
	stopWorkers()
	pool.Wait()
	slogger.Info("server exited properly")
}
