package postgres

import (
	"context"
	"fmt"

	"github.com/agenpets/scheduler-api/internal/model"
	"github.com/agenpets/scheduler-api/internal/repository"
)

type serviceConfigRepository struct {
	BaseRepository
}

func NewServiceConfigRepository(base BaseRepository) repository.ServiceConfigRepository {
	return &serviceConfigRepository{base}
}

func (r *serviceConfigRepository) Get(ctx context.Context, tenantID string) (*model.ServiceConfig, error) {
	query := `
		SELECT tenant_id, opening_time, closing_time, slot_minutes,
		       bath_minutes, groom_minutes, timezone
		FROM service_configs
		WHERE tenant_id = $1
	`
	var cfg model.ServiceConfig
	if err := r.db.GetContext(ctx, &cfg, query, tenantID); err != nil {
		return nil, fmt.Errorf("failed to get service config: %w", notFound(err))
	}
	return &cfg, nil
}
