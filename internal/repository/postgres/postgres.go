package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/agenpets/scheduler-api/internal/repository"
)

// Repositories bundles every postgres backed repository over one pool.
type Repositories struct {
	BaseRepository
	Staff          repository.StaffRepository
	ServiceConfigs repository.ServiceConfigRepository
	Bookings       repository.BookingRepository
	Outbox         repository.OutboxRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	base := NewBaseRepository(db)
	return &Repositories{
		BaseRepository: base,
		Staff:          NewStaffRepository(base),
		ServiceConfigs: NewServiceConfigRepository(base),
		Bookings:       NewBookingRepository(base),
		Outbox:         NewOutboxRepository(base),
	}
}
