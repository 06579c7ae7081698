package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/agenpets/scheduler-api/internal/model"
	"github.com/agenpets/scheduler-api/internal/repository"
)

const bookingColumns = `
	id, tenant_id, staff_id, staff_name, service, start_time, end_time,
	status, payer_id, pet_id, payment_method, amount, cancel_reason,
	checklist, checklist_done, created_at, updated_at`

type bookingRepository struct {
	BaseRepository
}

func NewBookingRepository(base BaseRepository) repository.BookingRepository {
	return &bookingRepository{base}
}

func (r *bookingRepository) Get(ctx context.Context, tenantID string, id uuid.UUID) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE tenant_id = $1 AND id = $2`

	var b model.Booking
	if err := r.db.GetContext(ctx, &b, query, tenantID, id); err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", notFound(err))
	}
	return &b, nil
}

func (r *bookingRepository) ListOverlapping(ctx context.Context, tenantID string, from, to time.Time) ([]*model.Booking, error) {
	return listOverlapping(ctx, r.db, tenantID, from, to)
}

func (r *bookingRepository) ListByDay(ctx context.Context, tenantID string, from, to time.Time) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE tenant_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time ASC, created_at ASC`

	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, tenantID, from, to); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) InTx(ctx context.Context, fn func(ctx context.Context, tx repository.BookingTx) error) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		return fn(ctx, &bookingTx{tx: tx})
	})
}

func listOverlapping(ctx context.Context, q sqlx.QueryerContext, tenantID string, from, to time.Time) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE tenant_id = $1
		AND status <> 'canceled'
		AND start_time < $3
		AND end_time > $2
		ORDER BY start_time ASC, created_at ASC`

	var bookings []*model.Booking
	if err := sqlx.SelectContext(ctx, q, &bookings, query, tenantID, from, to); err != nil {
		return nil, fmt.Errorf("failed to list overlapping bookings: %w", err)
	}
	return bookings, nil
}

type bookingTx struct {
	tx *sqlx.Tx
}

func (t *bookingTx) ListOverlapping(ctx context.Context, tenantID string, from, to time.Time) ([]*model.Booking, error) {
	return listOverlapping(ctx, t.tx, tenantID, from, to)
}

// LockDay takes a transaction scoped advisory lock on tenant and local day.
func (t *bookingTx) LockDay(ctx context.Context, tenantID string, day string) error {
	if _, err := t.tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, tenantID+":"+day); err != nil {
		return fmt.Errorf("failed to lock schedule day: %w", err)
	}
	return nil
}

func (t *bookingTx) GetForUpdate(ctx context.Context, tenantID string, id uuid.UUID) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE tenant_id = $1 AND id = $2 FOR UPDATE`

	var b model.Booking
	if err := t.tx.GetContext(ctx, &b, query, tenantID, id); err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", notFound(err))
	}
	return &b, nil
}

func (t *bookingTx) Create(ctx context.Context, b *model.Booking) error {
	query := `
		INSERT INTO bookings (
			id, tenant_id, staff_id, staff_name, service, start_time, end_time,
			status, payer_id, pet_id, payment_method, amount,
			checklist_done, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := t.tx.ExecContext(ctx, query,
		b.ID,
		b.TenantID,
		b.StaffID,
		b.StaffName,
		b.Service,
		b.StartTime,
		b.EndTime,
		b.Status,
		b.PayerID,
		b.PetID,
		b.PaymentMethod,
		b.Amount,
		b.ChecklistDone,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (t *bookingTx) Reassign(ctx context.Context, tenantID string, bookingID uuid.UUID, staff model.StaffMember) error {
	query := `
		UPDATE bookings
		SET staff_id = $1, staff_name = $2, updated_at = NOW()
		WHERE tenant_id = $3 AND id = $4 AND status <> 'canceled'
	`
	res, err := t.tx.ExecContext(ctx, query, staff.ID, staff.Name, tenantID, bookingID)
	if err != nil {
		return fmt.Errorf("failed to reassign booking: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return fmt.Errorf("failed to reassign booking: %w", err)
	}
	return nil
}

func (t *bookingTx) UpdateStatus(ctx context.Context, tenantID string, id uuid.UUID, status model.BookingStatus, reason *string) error {
	query := `
		UPDATE bookings
		SET status = $1, cancel_reason = $2, updated_at = NOW()
		WHERE tenant_id = $3 AND id = $4
	`
	res, err := t.tx.ExecContext(ctx, query, status, reason, tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	return nil
}

func (t *bookingTx) SaveChecklist(ctx context.Context, tenantID string, id uuid.UUID, checklist *model.Checklist) error {
	query := `
		UPDATE bookings
		SET checklist = $1, checklist_done = TRUE, updated_at = NOW()
		WHERE tenant_id = $2 AND id = $3
	`
	res, err := t.tx.ExecContext(ctx, query, checklist, tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to save checklist: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return fmt.Errorf("failed to save checklist: %w", err)
	}
	return nil
}

func (t *bookingTx) AddOutboxEvent(ctx context.Context, event *model.OutboxEvent) error {
	return insertOutboxEvent(ctx, t.tx, event)
}
