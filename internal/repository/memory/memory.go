// Package memory is an in-process repository backend for local runs and tests.
// Writers are serialised store-wide, which is stricter than the per-day lock
// the postgres backend takes.
package memory

import (
	"bytes"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agenpets/scheduler-api/internal/model"
	"github.com/agenpets/scheduler-api/internal/repository"
)

type Store struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	outboxMu sync.Mutex

	staff    map[string][]model.StaffMember
	configs  map[string]model.ServiceConfig
	bookings map[uuid.UUID]*model.Booking
	outbox   []*model.OutboxEvent

	now func() time.Time
}

func New() *Store {
	return &Store{
		staff:    make(map[string][]model.StaffMember),
		configs:  make(map[string]model.ServiceConfig),
		bookings: make(map[uuid.UUID]*model.Booking),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// AddStaff registers a roster member, filling id and timestamps when unset.
// Members with equal CreatedAt keep insertion order.
func (s *Store) AddStaff(m model.StaffMember) model.StaffMember {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.now()
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = m.CreatedAt
	}
	m.Skills = slices.Clone(m.Skills)
	s.staff[m.TenantID] = append(s.staff[m.TenantID], m)
	return m
}

func (s *Store) PutServiceConfig(cfg model.ServiceConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[cfg.TenantID] = cfg
}

// SeedBooking stores b as is, bypassing allocation.
func (s *Store) SeedBooking(b *model.Booking) *model.Booking {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *b
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
		c.UpdatedAt = c.CreatedAt
	}
	s.bookings[c.ID] = &c
	out := c
	return &out
}

// OutboxEvents returns a snapshot of every stored event in insertion order.
func (s *Store) OutboxEvents() []*model.OutboxEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.OutboxEvent, len(s.outbox))
	for i, e := range s.outbox {
		c := *e
		out[i] = &c
	}
	return out
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) StaffRepository() repository.StaffRepository {
	return &staffRepository{s}
}

func (s *Store) ServiceConfigRepository() repository.ServiceConfigRepository {
	return &serviceConfigRepository{s}
}

func (s *Store) BookingRepository() repository.BookingRepository {
	return &bookingRepository{s}
}

func (s *Store) OutboxRepository() repository.OutboxRepository {
	return &outboxRepository{s}
}

type staffRepository struct {
	s *Store
}

func (r *staffRepository) ListActive(ctx context.Context, tenantID string) ([]model.StaffMember, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []model.StaffMember
	for _, m := range r.s.staff[tenantID] {
		if m.Active {
			m.Skills = slices.Clone(m.Skills)
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b model.StaffMember) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

type serviceConfigRepository struct {
	s *Store
}

func (r *serviceConfigRepository) Get(ctx context.Context, tenantID string) (*model.ServiceConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	cfg, ok := r.s.configs[tenantID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &cfg, nil
}

func sortBookings(bookings []*model.Booking) {
	slices.SortFunc(bookings, func(a, b *model.Booking) int {
		if c := a.StartTime.Compare(b.StartTime); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})
}

func overlapping(bookings map[uuid.UUID]*model.Booking, tenantID string, from, to time.Time) []*model.Booking {
	var out []*model.Booking
	for _, b := range bookings {
		if b.TenantID != tenantID || !b.Active() {
			continue
		}
		if b.StartTime.Before(to) && b.EndTime.After(from) {
			c := *b
			out = append(out, &c)
		}
	}
	sortBookings(out)
	return out
}
