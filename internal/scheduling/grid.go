package scheduling

import (
	"iter"
	"slices"
	"time"

	"github.com/agenpets/scheduler-api/internal/model"
)

const slotClock = "15:04"

// Grid enumerates the candidate start times of a service over one day.
type Grid struct {
	day      time.Time
	service  model.ServiceType
	cfg      *model.ServiceConfig
	resolver *Resolver
}

func NewGrid(day time.Time, service model.ServiceType, cfg *model.ServiceConfig, roster Roster, bookings []*model.Booking) *Grid {
	return &Grid{
		day:      day,
		service:  service,
		cfg:      cfg,
		resolver: NewResolver(roster, NewIntervalIndex(bookings)),
	}
}

// Slots yields slots from opening time while the service still fits before closing.
// Each range over the sequence starts again from opening time.
func (g *Grid) Slots() iter.Seq[model.TimeSlot] {
	return func(yield func(model.TimeSlot) bool) {
		open, closing, err := g.cfg.BusinessHours(g.day)
		if err != nil {
			return
		}
		duration := g.cfg.Duration(g.service)
		step := g.cfg.Granularity()
		if duration <= 0 || step <= 0 {
			return
		}
		loc := g.cfg.Location()
		for cur := open; !cur.Add(duration).After(closing); cur = cur.Add(step) {
			slot := model.TimeSlot{
				Time:      cur.In(loc).Format(slotClock),
				Available: g.resolver.CanAdmit(g.service, cur, cur.Add(duration)),
			}
			if !yield(slot) {
				return
			}
		}
	}
}

// Collect materialises the grid. The result is never nil.
func (g *Grid) Collect() []model.TimeSlot {
	slots := slices.Collect(g.Slots())
	if slots == nil {
		return []model.TimeSlot{}
	}
	return slots
}
