package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/agenpets/scheduler-api/internal/model"
)

// ErrNotFound is returned when a tenant scoped lookup matches no row.
var ErrNotFound = errors.New("record not found")

// All repository interfaces in one file
type (
	// StaffRepository reads the tenant roster.
	StaffRepository interface {
		// ListActive returns active members ordered by creation time then id.
		// The order is the roster order used for tie-breaking.
		ListActive(ctx context.Context, tenantID string) ([]model.StaffMember, error)
	}

	// ServiceConfigRepository reads per-tenant business hours and durations.
	ServiceConfigRepository interface {
		// Get returns ErrNotFound when the tenant has no stored configuration.
		Get(ctx context.Context, tenantID string) (*model.ServiceConfig, error)
	}

	BookingReader interface {
		// ListOverlapping returns non-canceled bookings intersecting [from, to).
		ListOverlapping(ctx context.Context, tenantID string, from, to time.Time) ([]*model.Booking, error)
	}

	BookingRepository interface {
		BookingReader
		Get(ctx context.Context, tenantID string, id uuid.UUID) (*model.Booking, error)
		// ListByDay returns every booking starting in [from, to), canceled included.
		ListByDay(ctx context.Context, tenantID string, from, to time.Time) ([]*model.Booking, error)
		// InTx runs fn in a single transaction. Nothing fn wrote survives an error.
		InTx(ctx context.Context, fn func(ctx context.Context, tx BookingTx) error) error
	}

	// BookingTx is the write side of BookingRepository, only valid inside InTx.
	BookingTx interface {
		BookingReader
		// LockDay serialises allocation for one tenant day until the transaction ends.
		LockDay(ctx context.Context, tenantID string, day string) error
		GetForUpdate(ctx context.Context, tenantID string, id uuid.UUID) (*model.Booking, error)
		Create(ctx context.Context, booking *model.Booking) error
		Reassign(ctx context.Context, tenantID string, bookingID uuid.UUID, staff model.StaffMember) error
		UpdateStatus(ctx context.Context, tenantID string, id uuid.UUID, status model.BookingStatus, reason *string) error
		SaveChecklist(ctx context.Context, tenantID string, id uuid.UUID, checklist *model.Checklist) error
		AddOutboxEvent(ctx context.Context, event *model.OutboxEvent) error
	}

	OutboxRepository interface {
		// Claim locks up to limit due events for the duration of fn. Status
		// updates made through tx commit together when fn returns nil.
		Claim(ctx context.Context, limit int, fn func(ctx context.Context, events []*model.OutboxEvent, tx OutboxTx) error) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}

	OutboxTx interface {
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string, retryAt *time.Time) error
	}

	// Pinger reports storage liveness for readiness probes.
	Pinger interface {
		Ping(ctx context.Context) error
	}
)
