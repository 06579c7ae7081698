package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/agenpets/scheduler-api/internal/config"
	"github.com/agenpets/scheduler-api/internal/handler/health"
	"github.com/agenpets/scheduler-api/internal/middleware"
	"github.com/agenpets/scheduler-api/internal/repository"
	"github.com/agenpets/scheduler-api/internal/repository/postgres"
	"github.com/agenpets/scheduler-api/pkg/logger"
	"github.com/agenpets/scheduler-api/pkg/messaging/redis"
	"github.com/agenpets/scheduler-api/pkg/metrics"
	"github.com/agenpets/scheduler-api/pkg/worker"
)

const cleanupInterval = time.Hour

// healthServer exposes probes and metrics for the relay process.
func healthServer(port int, checks map[string]repository.Pinger, m *metrics.Metrics) *http.Server {
	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.Logger(m), middleware.Recovery())
	health.NewHandler(checks).RegisterRoutes(engine)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Setup(cfg.Logging.ToLoggerConfig())
	gin.SetMode(cfg.Server.Mode)

	if cfg.Database.Driver != "postgres" {
		log.Fatal().Str("driver", cfg.Database.Driver).Msg("the relay needs the postgres driver; the memory driver relays in the api process")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	repos := postgres.NewRepositories(db)

	broker, err := redis.NewRedisBroker(ctx, cfg.Redis.ToBrokerConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Redis broker")
	}
	defer broker.Close()

	m := metrics.New("agenpets", prometheus.DefaultRegisterer)

	processor, err := worker.NewOutboxProcessor(repos.Outbox, broker, cfg.ToWorkerConfig(), m)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid outbox configuration")
	}
	cleanup := worker.NewOutboxCleanupWorker(repos.Outbox, cfg.Outbox.Retention, cleanupInterval)

	srv := healthServer(cfg.Outbox.HealthPort, map[string]repository.Pinger{
		"database": repos,
		"redis":    broker,
	}, m)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("health check server failed")
			os.Exit(1)
		}
	}()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		processor.Start(ctx)
	}()
	go func() {
		defer wg.Done()
		cleanup.Start(ctx)
	}()

	log.Info().
		Int("health_port", cfg.Outbox.HealthPort).
		Int("batch_size", cfg.Outbox.BatchSize).
		Dur("poll_interval", cfg.Outbox.PollInterval).
		Msg("outbox relay started")

	<-ctx.Done()
	log.Info().Msg("shutting down...")
	wg.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}
}
