package scheduling

import (
	"time"

	"github.com/agenpets/scheduler-api/internal/model"
)

// Allocator picks the staff member for a concrete request. It must be built from a
// snapshot read inside the allocation transaction, not from the grid's view.
type Allocator struct {
	roster Roster
	index  *IntervalIndex
}

func NewAllocator(staff []model.StaffMember, bookings []*model.Booking) *Allocator {
	return &Allocator{
		roster: PartitionRoster(staff),
		index:  NewIntervalIndex(bookings),
	}
}

// Allocate returns the assignment for [start, end) or ErrNoCapacity.
func (a *Allocator) Allocate(service model.ServiceType, start, end time.Time) (Assignment, error) {
	return Resolve(service, a.roster, a.index, a.index.Window(start, end))
}
