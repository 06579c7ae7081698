package scheduling

import (
	"errors"

	"github.com/agenpets/scheduler-api/internal/model"
)

// ErrNoCapacity is returned when no strategy finds a qualified free staff member.
var ErrNoCapacity = errors.New("no staff member available for the requested interval")

// Strategy is the rule that produced an assignment.
type Strategy int

const (
	// DirectMatch assigns a free member of the service's own pool.
	DirectMatch Strategy = iota + 1
	// SubstituteUp assigns a free groomer to a bath.
	SubstituteUp
	// EvictAndSubstitute moves a groomer's bath onto a free bather and gives the
	// groomer the groom request.
	EvictAndSubstitute
)

func (s Strategy) String() string {
	switch s {
	case DirectMatch:
		return "direct_match"
	case SubstituteUp:
		return "substitute_up"
	case EvictAndSubstitute:
		return "evict_and_substitute"
	default:
		return "unknown"
	}
}

// Reallocation is the side effect of EvictAndSubstitute: Booking changes owner to To.
type Reallocation struct {
	Booking *model.Booking
	To      model.StaffMember
}

// Assignment is the outcome of resolving one request.
type Assignment struct {
	Strategy     Strategy
	Staff        model.StaffMember
	Reallocation *Reallocation
}

// StrategiesFor lists the strategies tried for a service, in priority order.
func StrategiesFor(service model.ServiceType) []Strategy {
	switch service {
	case model.ServiceBath:
		return []Strategy{DirectMatch, SubstituteUp}
	case model.ServiceGroom:
		return []Strategy{DirectMatch, EvictAndSubstitute}
	default:
		return nil
	}
}

// Apply runs a single strategy. It never mutates the index or the bookings in it.
func (s Strategy) Apply(service model.ServiceType, roster Roster, ix *IntervalIndex, w Window) (Assignment, bool) {
	switch s {
	case DirectMatch:
		return directMatch(service, roster, w)
	case SubstituteUp:
		return substituteUp(service, roster, w)
	case EvictAndSubstitute:
		return evictAndSubstitute(service, roster, ix, w)
	default:
		return Assignment{}, false
	}
}

func directMatch(service model.ServiceType, roster Roster, w Window) (Assignment, bool) {
	var pool []model.StaffMember
	switch service {
	case model.ServiceBath:
		pool = roster.Bathers
	case model.ServiceGroom:
		pool = roster.Groomers
	}
	m, ok := w.firstFree(pool)
	if !ok {
		return Assignment{}, false
	}
	return Assignment{Strategy: DirectMatch, Staff: m}, true
}

func substituteUp(service model.ServiceType, roster Roster, w Window) (Assignment, bool) {
	if service != model.ServiceBath {
		return Assignment{}, false
	}
	m, ok := w.firstFree(roster.Groomers)
	if !ok {
		return Assignment{}, false
	}
	return Assignment{Strategy: SubstituteUp, Staff: m}, true
}

// evictAndSubstitute looks for a groomer whose only conflict in the window is a bath
// and a bather free for that bath's whole interval. A groomer holding two bookings
// in the window cannot be freed by a single move.
func evictAndSubstitute(service model.ServiceType, roster Roster, ix *IntervalIndex, w Window) (Assignment, bool) {
	if service != model.ServiceGroom {
		return Assignment{}, false
	}
	for _, g := range roster.Groomers {
		conflicts := w.Conflicts(g.ID)
		if len(conflicts) != 1 || conflicts[0].Service != model.ServiceBath {
			continue
		}
		bath := conflicts[0]
		for _, b := range roster.Bathers {
			if ix.IsBusy(b.ID, bath.StartTime, bath.EndTime) {
				continue
			}
			return Assignment{
				Strategy:     EvictAndSubstitute,
				Staff:        g,
				Reallocation: &Reallocation{Booking: bath, To: b},
			}, true
		}
	}
	return Assignment{}, false
}

// Resolve tries the strategies for service in order and returns the first match.
func Resolve(service model.ServiceType, roster Roster, ix *IntervalIndex, w Window) (Assignment, error) {
	for _, s := range StrategiesFor(service) {
		if a, ok := s.Apply(service, roster, ix, w); ok {
			return a, nil
		}
	}
	return Assignment{}, ErrNoCapacity
}
