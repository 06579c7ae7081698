package postgres

import (
	"context"
	"fmt"

	"github.com/agenpets/scheduler-api/internal/model"
	"github.com/agenpets/scheduler-api/internal/repository"
)

type staffRepository struct {
	BaseRepository
}

func NewStaffRepository(base BaseRepository) repository.StaffRepository {
	return &staffRepository{base}
}

func (r *staffRepository) ListActive(ctx context.Context, tenantID string) ([]model.StaffMember, error) {
	query := `
		SELECT id, tenant_id, name, skills, active, created_at, updated_at
		FROM staff_members
		WHERE tenant_id = $1 AND active
		ORDER BY created_at ASC, id ASC
	`
	var staff []model.StaffMember
	if err := r.db.SelectContext(ctx, &staff, query, tenantID); err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}
