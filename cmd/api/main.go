package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/agenpets/scheduler-api/internal/config"
	bookinghandler "github.com/agenpets/scheduler-api/internal/handler/booking"
	"github.com/agenpets/scheduler-api/internal/handler/health"
	"github.com/agenpets/scheduler-api/internal/middleware"
	"github.com/agenpets/scheduler-api/internal/repository"
	"github.com/agenpets/scheduler-api/internal/router"
	"github.com/agenpets/scheduler-api/internal/service/booking"
	"github.com/agenpets/scheduler-api/internal/service/tenant"
	"github.com/agenpets/scheduler-api/pkg/auth"
	"github.com/agenpets/scheduler-api/pkg/logger"
	"github.com/agenpets/scheduler-api/pkg/messaging/redis"
	"github.com/agenpets/scheduler-api/pkg/metrics"
	"github.com/agenpets/scheduler-api/pkg/worker"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(cfg.Logging.ToLoggerConfig())
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New("agenpets", prometheus.DefaultRegisterer)

	st, err := openStore(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("failed to open storage")
	}
	defer st.close()

	configs := tenant.NewService(st.serviceConfigs, cfg.Scheduling.ToServiceConfig(), cfg.Scheduling.CacheTTL)
	bookingSvc := booking.NewService(st.staff, st.bookings, configs, m)

	checks := map[string]repository.Pinger{"database": st.pinger}

	var workers sync.WaitGroup
	if cfg.Outbox.Embedded || cfg.Database.Driver == "memory" {
		broker, err := redis.NewRedisBroker(ctx, cfg.Redis.ToBrokerConfig())
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, outbox events stay queued")
		} else {
			defer broker.Close()
			checks["redis"] = broker

			processor, err := worker.NewOutboxProcessor(st.outbox, broker, cfg.ToWorkerConfig(), m)
			if err != nil {
				log.Fatal().Err(err).Msg("invalid outbox configuration")
			}
			workers.Add(1)
			go func() {
				defer workers.Done()
				processor.Start(ctx)
			}()
		}
	}

	routerConfig := router.RouterConfig{
		RequestTimeout: cfg.Server.RequestTimeout,
		MaxBodySize:    cfg.Server.MaxBodyBytes,
		CORSConfig:     middleware.DefaultCORSConfig(),
		Gatherer:       prometheus.DefaultGatherer,
	}
	routerConfig.CORSConfig.AllowOrigins = cfg.Server.CORSOrigins
	if cfg.RateLimit.Enabled {
		routerConfig.RateLimit = &middleware.RateLimiterConfig{
			Rate:  rate.Limit(cfg.RateLimit.RequestsPerSecond),
			Burst: cfg.RateLimit.Burst,
		}
	}
	if cfg.Auth.Enabled {
		routerConfig.Verifier = auth.NewJWTService(cfg.Auth.Secret, cfg.Auth.Issuer, 0)
	}

	r := router.NewRouter(routerConfig, m, health.NewHandler(checks), bookinghandler.NewHandler(bookingSvc))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().
		Int("port", cfg.Server.Port).
		Str("driver", cfg.Database.Driver).
		Bool("auth", cfg.Auth.Enabled).
		Msg("scheduler api started")

	<-ctx.Done()
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	workers.Wait()
	log.Info().Msg("server exited")
}
