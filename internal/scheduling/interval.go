package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/agenpets/scheduler-api/internal/model"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and [bStart, bEnd)
// share an instant. Intervals that only touch do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// IntervalIndex answers occupancy questions over a set of bookings, usually the
// bookings of one tenant for one day. Canceled bookings are ignored.
type IntervalIndex struct {
	byStaff map[uuid.UUID][]*model.Booking
}

func NewIntervalIndex(bookings []*model.Booking) *IntervalIndex {
	ix := &IntervalIndex{byStaff: make(map[uuid.UUID][]*model.Booking)}
	for _, b := range bookings {
		if b == nil || !b.Active() {
			continue
		}
		ix.byStaff[b.StaffID] = append(ix.byStaff[b.StaffID], b)
	}
	return ix
}

// Conflicts returns the bookings of staffID that overlap [start, end), in input order.
func (ix *IntervalIndex) Conflicts(staffID uuid.UUID, start, end time.Time) []*model.Booking {
	var out []*model.Booking
	for _, b := range ix.byStaff[staffID] {
		if Overlaps(b.StartTime, b.EndTime, start, end) {
			out = append(out, b)
		}
	}
	return out
}

func (ix *IntervalIndex) IsBusy(staffID uuid.UUID, start, end time.Time) bool {
	for _, b := range ix.byStaff[staffID] {
		if Overlaps(b.StartTime, b.EndTime, start, end) {
			return true
		}
	}
	return false
}

// Window fixes the interval so callers can ask per staff member.
func (ix *IntervalIndex) Window(start, end time.Time) Window {
	return Window{ix: ix, Start: start, End: end}
}

// Window is the occupancy view of one candidate interval.
type Window struct {
	ix    *IntervalIndex
	Start time.Time
	End   time.Time
}

func (w Window) IsBusy(staffID uuid.UUID) bool {
	return w.ix.IsBusy(staffID, w.Start, w.End)
}

func (w Window) Conflicts(staffID uuid.UUID) []*model.Booking {
	return w.ix.Conflicts(staffID, w.Start, w.End)
}

// firstFree returns the first member of pool with no conflict in the window.
func (w Window) firstFree(pool []model.StaffMember) (model.StaffMember, bool) {
	for _, m := range pool {
		if !w.IsBusy(m.ID) {
			return m, true
		}
	}
	return model.StaffMember{}, false
}
