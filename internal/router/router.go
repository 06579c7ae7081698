package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agenpets/scheduler-api/internal/middleware"
	"github.com/agenpets/scheduler-api/pkg/auth"
	"github.com/agenpets/scheduler-api/pkg/errors"
	"github.com/agenpets/scheduler-api/pkg/httputil"
	"github.com/agenpets/scheduler-api/pkg/metrics"
)

// Handler registers a group of API routes.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// Probe registers unauthenticated operational routes.
type Probe interface {
	RegisterRoutes(gin.IRoutes)
}

type RouterConfig struct {
	RequestTimeout time.Duration
	MaxBodySize    int64
	CORSConfig     middleware.CORSConfig
	// RateLimit is skipped when nil.
	RateLimit *middleware.RateLimiterConfig
	// Verifier switches tenant resolution from the X-Tenant-ID header to
	// bearer tokens.
	Verifier auth.JWTService
	Gatherer prometheus.Gatherer
}

type Router struct {
	engine *gin.Engine
}

func NewRouter(config RouterConfig, m *metrics.Metrics, probe Probe, handlers ...Handler) *Router {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logger(m),
		middleware.Recovery(),
		middleware.CORS(config.CORSConfig),
		middleware.BodyLimit(config.MaxBodySize),
	)

	engine.NoRoute(func(c *gin.Context) {
		httputil.RespondWithError(c, errors.NotFound("route", nil))
	})

	if probe != nil {
		probe.RegisterRoutes(engine)
	}

	gatherer := config.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := engine.Group("/api/v1")
	api.Use(
		middleware.Timeout(config.RequestTimeout),
		middleware.Tenant(config.Verifier),
	)
	if config.RateLimit != nil {
		api.Use(middleware.NewRateLimiter(*config.RateLimit).RateLimit())
	}
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
