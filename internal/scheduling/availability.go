package scheduling

import (
	"time"

	"github.com/agenpets/scheduler-api/internal/model"
)

// Resolver answers whether a candidate interval can take one more booking. It only
// evaluates; a possible reallocation is never applied.
type Resolver struct {
	roster Roster
	index  *IntervalIndex
}

func NewResolver(roster Roster, index *IntervalIndex) *Resolver {
	return &Resolver{roster: roster, index: index}
}

func (r *Resolver) CanAdmit(service model.ServiceType, start, end time.Time) bool {
	_, err := Resolve(service, r.roster, r.index, r.index.Window(start, end))
	return err == nil
}
