package memory

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/agenpets/scheduler-api/internal/model"
	"github.com/agenpets/scheduler-api/internal/repository"
)

type bookingRepository struct {
	s *Store
}

func (r *bookingRepository) Get(ctx context.Context, tenantID string, id uuid.UUID) (*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings[id]
	if !ok || b.TenantID != tenantID {
		return nil, fmt.Errorf("failed to get booking: %w", repository.ErrNotFound)
	}
	c := *b
	return &c, nil
}

func (r *bookingRepository) ListOverlapping(ctx context.Context, tenantID string, from, to time.Time) ([]*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return overlapping(r.s.bookings, tenantID, from, to), nil
}

func (r *bookingRepository) ListByDay(ctx context.Context, tenantID string, from, to time.Time) ([]*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.Booking
	for _, b := range r.s.bookings {
		if b.TenantID == tenantID && !b.StartTime.Before(from) && b.StartTime.Before(to) {
			c := *b
			out = append(out, &c)
		}
	}
	sortBookings(out)
	return out, nil
}

// InTx stages writes on a copy of the booking table and swaps it in on success.
func (r *bookingRepository) InTx(ctx context.Context, fn func(ctx context.Context, tx repository.BookingTx) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.RLock()
	tx := &bookingTx{
		bookings: maps.Clone(r.s.bookings),
		now:      r.s.now,
	}
	r.s.mu.RUnlock()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	r.s.bookings = tx.bookings
	r.s.outbox = append(r.s.outbox, tx.outbox...)
	r.s.mu.Unlock()
	return nil
}

type bookingTx struct {
	bookings map[uuid.UUID]*model.Booking
	outbox   []*model.OutboxEvent
	now      func() time.Time
}

func (t *bookingTx) ListOverlapping(ctx context.Context, tenantID string, from, to time.Time) ([]*model.Booking, error) {
	return overlapping(t.bookings, tenantID, from, to), nil
}

// LockDay is a no-op: InTx already holds the store-wide writer lock.
func (t *bookingTx) LockDay(ctx context.Context, tenantID string, day string) error {
	return nil
}

func (t *bookingTx) lookup(tenantID string, id uuid.UUID) (*model.Booking, error) {
	b, ok := t.bookings[id]
	if !ok || b.TenantID != tenantID {
		return nil, repository.ErrNotFound
	}
	c := *b
	return &c, nil
}

func (t *bookingTx) GetForUpdate(ctx context.Context, tenantID string, id uuid.UUID) (*model.Booking, error) {
	b, err := t.lookup(tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return b, nil
}

func (t *bookingTx) Create(ctx context.Context, b *model.Booking) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if _, exists := t.bookings[b.ID]; exists {
		return fmt.Errorf("failed to create booking: duplicate id %s", b.ID)
	}
	now := t.now()
	b.CreatedAt = now
	b.UpdatedAt = now

	c := *b
	t.bookings[c.ID] = &c
	return nil
}

func (t *bookingTx) Reassign(ctx context.Context, tenantID string, bookingID uuid.UUID, staff model.StaffMember) error {
	b, err := t.lookup(tenantID, bookingID)
	if err != nil || !b.Active() {
		return fmt.Errorf("failed to reassign booking: %w", repository.ErrNotFound)
	}
	b.StaffID = staff.ID
	b.StaffName = staff.Name
	b.UpdatedAt = t.now()
	t.bookings[b.ID] = b
	return nil
}

func (t *bookingTx) UpdateStatus(ctx context.Context, tenantID string, id uuid.UUID, status model.BookingStatus, reason *string) error {
	b, err := t.lookup(tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	b.Status = status
	b.CancelReason = reason
	b.UpdatedAt = t.now()
	t.bookings[b.ID] = b
	return nil
}

func (t *bookingTx) SaveChecklist(ctx context.Context, tenantID string, id uuid.UUID, checklist *model.Checklist) error {
	b, err := t.lookup(tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to save checklist: %w", err)
	}
	c := *checklist
	c.Items = maps.Clone(checklist.Items)
	b.Checklist = &c
	b.ChecklistDone = true
	b.UpdatedAt = t.now()
	t.bookings[b.ID] = b
	return nil
}

func (t *bookingTx) AddOutboxEvent(ctx context.Context, event *model.OutboxEvent) error {
	if event == nil || event.Payload == nil {
		return fmt.Errorf("failed to create outbox event: empty event")
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Status == "" {
		event.Status = model.OutboxStatusPending
	}
	c := *event
	t.outbox = append(t.outbox, &c)
	return nil
}
