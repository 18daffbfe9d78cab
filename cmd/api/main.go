package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/teampulse/analytics-api/internal/config"
	"github.com/teampulse/analytics-api/internal/handlers"
	"github.com/teampulse/analytics-api/internal/logic"
	"github.com/teampulse/analytics-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Env)
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// PostgreSQL - roster, wellness profiles, source credentials
	pg, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		sugar.Fatalw("Failed to create postgres pool", "error", err)
	}
	defer pg.Close()
	if err := pg.Ping(ctx); err != nil {
		sugar.Fatalw("Failed to ping postgres", "error", err)
	}

	// ClickHouse - session telemetry
	ch, err := openClickHouse(ctx, cfg.ClickHouseURL)
	if err != nil {
		sugar.Fatalw("Failed to connect to clickhouse", "error", err)
	}
	defer ch.Close()

	// Redis - short-lived cache for cohort summaries
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Fatalw("Invalid redis URL", "error", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		sugar.Fatalw("Failed to ping redis", "error", err)
	}

	// Worker pool for async telemetry ingestion
	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount:   cfg.WorkerCount,
		QueueSize:     cfg.QueueSize,
		BatchSize:     cfg.BatchSize,
		FlushInterval: cfg.FlushInterval,
		ClickHouse:    ch,
		Logger:        logger,
	})
	pool.Start(ctx)

	// Services
	aggregator := logic.NewMetricsAggregator(ch, pg)
	analytics := logic.NewAnalyticsService(aggregator, rdb, sugar)
	roster := logic.NewRosterService(pg)

	h := handlers.New(handlers.Config{
		WorkerPool: pool,
		Postgres:   pg,
		ClickHouse: ch,
		Redis:      rdb,
		Logger:     logger,
		Analytics:  analytics,
		Roster:     roster,
	})

	router := newRouter(cfg, h)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		sugar.Infow("API server listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Server shutdown error", "error", err)
	}

	// Stop the pool after the HTTP server so in-flight ingests can still enqueue.
	pool.Stop()
	sugar.Info("Shutdown complete")
}

func newLogger(env string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func openClickHouse(ctx context.Context, dsn string) (driver.Conn, error) {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(ctx); err != nil {
		return nil, err
	}
	return conn, nil
}

func newRouter(cfg *config.Config, h *handlers.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Source-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/training-load", h.GetTrainingLoad)
			r.Get("/injury-risk", h.GetInjuryRisk)
			r.Get("/insights", h.GetInsights)
			r.Get("/risk-summary", h.GetRiskSummary)
			r.Get("/predictions", h.GetPredictions)
		})

		r.Route("/athletes", func(r chi.Router) {
			r.Get("/", h.ListAthletes)
			r.Post("/", h.CreateAthlete)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetAthlete)
				r.Put("/", h.UpdateAthlete)
				r.Delete("/", h.DeleteAthlete)
				r.Put("/wellness", h.UpdateWellness)
			})
		})

		// Telemetry ingestion requires a registered source token.
		r.Group(func(r chi.Router) {
			r.Use(h.SourceAuthMiddleware)
			r.Post("/ingest/sessions", h.IngestSessions)
		})

		r.Post("/sources/register", h.RegisterSource)
		r.Post("/system/install", h.InstallDatabase)
	})

	return r
}
