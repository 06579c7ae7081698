package tenant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenpets/scheduler-api/internal/model"
	"github.com/agenpets/scheduler-api/internal/repository"
)

type stubRepo struct {
	cfg   *model.ServiceConfig
	err   error
	calls int
}

func (r *stubRepo) Get(ctx context.Context, tenantID string) (*model.ServiceConfig, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	c := *r.cfg
	return &c, nil
}

var defaults = model.ServiceConfig{
	OpeningTime:  "08:00",
	ClosingTime:  "18:00",
	SlotMinutes:  30,
	BathMinutes:  60,
	GroomMinutes: 90,
	Timezone:     "America/Sao_Paulo",
}

func TestService_DefaultsWhenMissing(t *testing.T) {
	repo := &stubRepo{err: repository.ErrNotFound}
	svc := NewService(repo, defaults, time.Minute)

	cfg, err := svc.ServiceConfig(context.Background(), "t-1")
	require.NoError(t, err)

	want := defaults
	want.TenantID = "t-1"
	assert.Equal(t, want, *cfg)
}

func TestService_MergesStoredValues(t *testing.T) {
	repo := &stubRepo{cfg: &model.ServiceConfig{OpeningTime: "09:00", GroomMinutes: 120}}
	svc := NewService(repo, defaults, time.Minute)

	cfg, err := svc.ServiceConfig(context.Background(), "t-1")
	require.NoError(t, err)
	assert.Equal(t, "09:00", cfg.OpeningTime)
	assert.Equal(t, "18:00", cfg.ClosingTime)
	assert.Equal(t, 120, cfg.GroomMinutes)
	assert.Equal(t, 60, cfg.BathMinutes)
}

func TestService_Caches(t *testing.T) {
	repo := &stubRepo{cfg: &model.ServiceConfig{}}
	svc := NewService(repo, defaults, time.Minute)

	for i := 0; i < 3; i++ {
		_, err := svc.ServiceConfig(context.Background(), "t-1")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, repo.calls)
}

func TestService_StorageErrorNotCached(t *testing.T) {
	repo := &stubRepo{err: errors.New("timeout")}
	svc := NewService(repo, defaults, time.Minute)

	_, err := svc.ServiceConfig(context.Background(), "t-1")
	assert.Error(t, err)

	repo.err = nil
	repo.cfg = &model.ServiceConfig{}
	_, err = svc.ServiceConfig(context.Background(), "t-1")
	assert.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestService_CachedValueIsolated(t *testing.T) {
	svc := NewService(&stubRepo{cfg: &model.ServiceConfig{}}, defaults, time.Minute)

	cfg, err := svc.ServiceConfig(context.Background(), "t-1")
	require.NoError(t, err)
	cfg.OpeningTime = "00:00"

	again, err := svc.ServiceConfig(context.Background(), "t-1")
	require.NoError(t, err)
	assert.Equal(t, "08:00", again.OpeningTime)
}
