package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"crediris/internal/platform/config"
	"crediris/internal/platform/httpserver"
	"crediris/internal/platform/logger"
	"crediris/internal/platform/metrics"
	"crediris/internal/platform/middleware"
	platformredis "crediris/internal/platform/redis"
	"crediris/internal/pricing"
	"crediris/internal/pricing/afiesca"
	"crediris/internal/pricing/cache"
	"crediris/internal/simulation/handler"
	"crediris/internal/simulation/service"
	"crediris/internal/simulation/store"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	m := metrics.New()

	checks := map[string]handler.HealthCheck{}

	var st store.Store = store.NewInMemoryStore()
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres pool init failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if _, err := pool.Exec(context.Background(), store.Schema); err != nil {
			log.Error("postgres schema apply failed", "error", err)
			os.Exit(1)
		}
		pg := store.NewPostgresStore(pool)
		st = pg
		checks["database"] = pg.Ping
		log.Info("using postgres store")
	} else {
		log.Info("using in-memory store, records are lost on restart")
	}

	var quotes *cache.QuoteCache
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		quotes = cache.New(redisClient.Client, cfg.QuoteCacheTTL, log)
		checks["redis"] = redisClient.Health
		log.Info("quote cache enabled", "ttl", cfg.QuoteCacheTTL.String())
	}

	var pricer pricing.Client
	if cfg.Partner.Mock {
		pricer = &pricing.MockClient{}
		log.Warn("pricing partner mocked, quotes are deterministic and not contractual")
	} else {
		pricer = afiesca.New(afiesca.Config{
			Endpoint:  cfg.Partner.Endpoint,
			Login:     cfg.Partner.Login,
			Password:  cfg.Partner.Password,
			PartnerID: cfg.Partner.PartnerID,
			Timeout:   cfg.Partner.Timeout,
		}, log)
	}

	svc := service.New(pricer, st, log,
		service.WithQuoteCache(quotes),
		service.WithMetrics(m),
		service.WithRetry(cfg.Retry),
	)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.Recovery(log),
		middleware.Logger(log),
		middleware.Latency(m),
		middleware.Timeout(60*time.Second),
		middleware.ContentTypeJSON,
	)
	router.Mount("/", handler.New(svc, st, log, checks).Routes())

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting crediris simulation service", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
