package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenpets/scheduler-api/internal/model"
)

func TestResolver_Bath(t *testing.T) {
	ana := member("Ana", model.SkillBath)
	caio := member("Caio", model.SkillGroom)
	roster := PartitionRoster([]model.StaffMember{ana, caio})

	tests := []struct {
		name     string
		bookings []*model.Booking
		want     bool
	}{
		{"bather free", nil, true},
		{"bather busy groomer free", []*model.Booking{booked(ana, model.ServiceBath, "10:00", "11:00")}, true},
		{"everyone busy", []*model.Booking{
			booked(ana, model.ServiceBath, "10:00", "11:00"),
			booked(caio, model.ServiceGroom, "09:30", "11:00"),
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(roster, NewIntervalIndex(tt.bookings))
			assert.Equal(t, tt.want, r.CanAdmit(model.ServiceBath, at("10:00"), at("11:00")))
		})
	}
}

func TestResolver_Groom(t *testing.T) {
	ana := member("Ana", model.SkillBath)
	caio := member("Caio", model.SkillGroom)
	roster := PartitionRoster([]model.StaffMember{ana, caio})

	tests := []struct {
		name     string
		bookings []*model.Booking
		want     bool
	}{
		{"groomer free", nil, true},
		{"groomer on bath, bather free", []*model.Booking{booked(caio, model.ServiceBath, "10:00", "11:00")}, true},
		{"groomer on bath, bather busy", []*model.Booking{
			booked(caio, model.ServiceBath, "10:00", "11:00"),
			booked(ana, model.ServiceBath, "10:00", "11:00"),
		}, false},
		{"groomer on groom", []*model.Booking{booked(caio, model.ServiceGroom, "10:00", "11:30")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(roster, NewIntervalIndex(tt.bookings))
			assert.Equal(t, tt.want, r.CanAdmit(model.ServiceGroom, at("10:00"), at("11:30")))
		})
	}
}

func TestResolver_BathersNeverTakeGroom(t *testing.T) {
	ana := member("Ana", model.SkillBath)
	r := NewResolver(PartitionRoster([]model.StaffMember{ana}), NewIntervalIndex(nil))

	assert.False(t, r.CanAdmit(model.ServiceGroom, at("10:00"), at("11:30")))
	assert.True(t, r.CanAdmit(model.ServiceBath, at("10:00"), at("11:00")))
}
