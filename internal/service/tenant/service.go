package tenant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/agenpets/scheduler-api/internal/model"
	"github.com/agenpets/scheduler-api/internal/repository"
)

// Service resolves per-tenant scheduling configuration. Stored values win;
// missing rows or zero fields fall back to the configured defaults.
type Service struct {
	repo     repository.ServiceConfigRepository
	cache    *cache.Cache
	defaults model.ServiceConfig
}

func NewService(repo repository.ServiceConfigRepository, defaults model.ServiceConfig, ttl time.Duration) *Service {
	return &Service{
		repo:     repo,
		cache:    cache.New(ttl, 2*ttl),
		defaults: defaults,
	}
}

func (s *Service) ServiceConfig(ctx context.Context, tenantID string) (*model.ServiceConfig, error) {
	if cached, ok := s.cache.Get(tenantID); ok {
		cfg := cached.(model.ServiceConfig)
		return &cfg, nil
	}

	stored, err := s.repo.Get(ctx, tenantID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.Ctx(ctx).Debug().Str("tenant_id", tenantID).Msg("no service config stored, using defaults")
		stored = &model.ServiceConfig{}
	case err != nil:
		return nil, fmt.Errorf("failed to load service config: %w", err)
	}

	cfg := s.merge(tenantID, stored)
	s.cache.SetDefault(tenantID, cfg)
	return &cfg, nil
}

func (s *Service) merge(tenantID string, stored *model.ServiceConfig) model.ServiceConfig {
	cfg := *stored
	cfg.TenantID = tenantID
	if cfg.OpeningTime == "" {
		cfg.OpeningTime = s.defaults.OpeningTime
	}
	if cfg.ClosingTime == "" {
		cfg.ClosingTime = s.defaults.ClosingTime
	}
	if cfg.SlotMinutes <= 0 {
		cfg.SlotMinutes = s.defaults.SlotMinutes
	}
	if cfg.BathMinutes <= 0 {
		cfg.BathMinutes = s.defaults.BathMinutes
	}
	if cfg.GroomMinutes <= 0 {
		cfg.GroomMinutes = s.defaults.GroomMinutes
	}
	if cfg.Timezone == "" {
		cfg.Timezone = s.defaults.Timezone
	}
	return cfg
}
