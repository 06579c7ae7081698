package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/agenpets/scheduler-api/internal/repository"
	"github.com/agenpets/scheduler-api/pkg/httputil"
)

const (
	StatusUp   = "UP"
	StatusDown = "DOWN"
)

type Handler struct {
	checks  map[string]repository.Pinger
	timeout time.Duration
}

// NewHandler builds probes over the named dependencies, e.g. "database"
// or "redis".
func NewHandler(checks map[string]repository.Pinger) *Handler {
	return &Handler{checks: checks, timeout: 2 * time.Second}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health/live", h.LivenessCheck)
	r.GET("/health/ready", h.ReadinessCheck)
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	httputil.RespondWithSuccess(c, gin.H{"status": StatusUp})
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		if err := h.checks[name].Ping(ctx); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("dependency", name).Msg("readiness check failed")
			results[name] = StatusDown
			healthy = false
			continue
		}
		results[name] = StatusUp
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, httputil.Response{
			Status:  httputil.StatusError,
			Message: "dependency unavailable",
			Data:    gin.H{"status": StatusDown, "checks": results},
		})
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"status": StatusUp, "checks": results})
}
