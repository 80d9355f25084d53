package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"

	"livecounter-backend/config"
	"livecounter-backend/internal/api"
	"livecounter-backend/internal/audit"
	"livecounter-backend/internal/cache"
	"livecounter-backend/internal/client"
	"livecounter-backend/internal/db"
	"livecounter-backend/internal/logging"
	"livecounter-backend/internal/metrics"
	"livecounter-backend/internal/store"
	"livecounter-backend/internal/upstream"
	"livecounter-backend/internal/web"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration from %s: %v\n", configPath, err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, "livecounterd")
	logger.Info().Str("path", configPath).Msg("configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Initialize database
	gormDB, err := db.Init(&cfg.Database, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}
	appStore := store.NewGormStore(gormDB)
	logger.Info().Str("driver", cfg.Database.Driver).Msg("lookup store initialized")

	deps := api.Deps{
		Upstream:       upstream.NewClient(cfg.Upstream, logger),
		Store:          appStore,
		Metrics:        m,
		Log:            logger,
		MaxQueryLength: cfg.Search.MaxQueryLength,
	}

	var responses cache.Store = cache.NewMemory(cfg.Server.CacheTTL, 2*cfg.Server.CacheTTL)
	if cfg.Redis.URL != "" {
		rdb, err := cache.NewRedis(ctx, cfg.Redis.URL, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		responses = cache.NewTiered(responses, rdb, cfg.Server.CacheTTL)
		deps.Redis = rdb
		logger.Info().Msg("redis cache tier enabled")
	}

	var pool *audit.WorkerPool
	if cfg.Audit.Enabled {
		pool = audit.NewWorkerPool(cfg.Audit.Workers, cfg.Audit.QueueSize, appStore, logger, m)
		pool.Start(ctx)
		deps.Audit = pool
	}

	router := api.NewRouter(api.NewHandler(deps), api.RouterOptions{
		RateLimit: rate.Limit(cfg.Server.RateLimitPerSec),
		RateBurst: cfg.Server.RateLimitBurst,
		Cache:     responses,
		CacheTTL:  cfg.Server.CacheTTL,
		Gatherer:  reg,

		TrustedProxies: cfg.Server.TrustedProxies,
	})
	web.New(client.New(cfg.Server.APIBaseURL, nil), logger, cfg.Search.MaxQueryLength).Register(router)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server ListenAndServe")
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info().Msg("shutdown signal received, stopping services")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server Shutdown")
	}

	// Stop accepting audit work only after in-flight requests have dispatched.
	cancel()
	if pool != nil {
		pool.Wait()
	}

	logger.Info().Msg("server gracefully stopped")
}
