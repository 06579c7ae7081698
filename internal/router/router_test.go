package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookinghandler "github.com/agenpets/scheduler-api/internal/handler/booking"
	"github.com/agenpets/scheduler-api/internal/handler/health"
	"github.com/agenpets/scheduler-api/internal/middleware"
	"github.com/agenpets/scheduler-api/internal/model"
	"github.com/agenpets/scheduler-api/internal/repository"
	"github.com/agenpets/scheduler-api/internal/repository/memory"
	"github.com/agenpets/scheduler-api/internal/service/booking"
	"github.com/agenpets/scheduler-api/internal/service/tenant"
	"github.com/agenpets/scheduler-api/pkg/auth"
	"github.com/agenpets/scheduler-api/pkg/metrics"
)

func newEngine(t *testing.T, verifier auth.JWTService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.New()
	store.AddStaff(model.StaffMember{TenantID: "petshop-1", Name: "Ana", Skills: model.SkillSet{model.SkillBath}, Active: true})

	reg := prometheus.NewRegistry()
	m := metrics.New("agenpets", reg)
	configs := tenant.NewService(store.ServiceConfigRepository(), model.ServiceConfig{
		OpeningTime: "08:00", ClosingTime: "18:00", SlotMinutes: 30, BathMinutes: 60, GroomMinutes: 90, Timezone: "UTC",
	}, time.Minute)
	svc := booking.NewService(store.StaffRepository(), store.BookingRepository(), configs, m)

	r := NewRouter(RouterConfig{
		RequestTimeout: time.Second,
		CORSConfig:     middleware.DefaultCORSConfig(),
		RateLimit:      &middleware.RateLimiterConfig{Rate: 100, Burst: 100},
		Verifier:       verifier,
		Gatherer:       reg,
	}, m, health.NewHandler(map[string]repository.Pinger{"database": store}), bookinghandler.NewHandler(svc))
	return r.Engine()
}

func get(engine *gin.Engine, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRouter_OperationalRoutes(t *testing.T) {
	engine := newEngine(t, nil)

	w := get(engine, "/health/live", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderXRequestID))

	assert.Equal(t, http.StatusOK, get(engine, "/health/ready", nil).Code)

	w = get(engine, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "agenpets_http_requests_total")

	w = get(engine, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"error"`)
}

func TestRouter_TenantFromHeader(t *testing.T) {
	engine := newEngine(t, nil)

	w := get(engine, "/api/v1/availability?date=2026-03-10&service=bath", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(engine, "/api/v1/availability?date=2026-03-10&service=bath", map[string]string{middleware.HeaderTenantID: "petshop-1"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available":true`)
}

func TestRouter_TenantFromToken(t *testing.T) {
	verifier := auth.NewJWTService("secret", "", time.Minute)
	engine := newEngine(t, verifier)

	w := get(engine, "/api/v1/bookings?date=2026-03-10", map[string]string{middleware.HeaderTenantID: "petshop-1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := verifier.GenerateToken("petshop-1", "user-1", "Ana")
	require.NoError(t, err)
	w = get(engine, "/api/v1/bookings?date=2026-03-10", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","data":[]}`, w.Body.String())
}
