package scheduling

import "github.com/agenpets/scheduler-api/internal/model"

// Roster is the active staff split by capability. Each pool keeps the input order,
// which is the tie-break order for assignments.
type Roster struct {
	Bathers  []model.StaffMember
	Groomers []model.StaffMember
}

// PartitionRoster splits staff into bath-only and groom-capable pools. Inactive
// members and members without a known skill are left out.
func PartitionRoster(staff []model.StaffMember) Roster {
	var r Roster
	for _, m := range staff {
		if !m.Active {
			continue
		}
		switch {
		case m.CanPerform(model.ServiceGroom):
			r.Groomers = append(r.Groomers, m)
		case m.CanPerform(model.ServiceBath):
			r.Bathers = append(r.Bathers, m)
		}
	}
	return r
}

// Empty reports whether nobody can take a booking.
func (r Roster) Empty() bool {
	return len(r.Bathers) == 0 && len(r.Groomers) == 0
}
