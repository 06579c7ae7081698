package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenpets/scheduler-api/internal/repository"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func probe(t *testing.T, checks map[string]repository.Pinger, path string) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(checks).RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestLivenessCheck(t *testing.T) {
	code, body := probe(t, nil, "/health/live")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", body["status"])
}

func TestReadinessCheck(t *testing.T) {
	up := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	code, body := probe(t, map[string]repository.Pinger{"database": up, "redis": up}, "/health/ready")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]interface{}{"database": "UP", "redis": "UP"}, body["data"].(map[string]interface{})["checks"])

	code, body = probe(t, map[string]repository.Pinger{"database": up, "redis": down}, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, map[string]interface{}{"database": "UP", "redis": "DOWN"}, body["data"].(map[string]interface{})["checks"])
}
