package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/agenpets/scheduler-api/internal/model"
)

var testDay = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func at(clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		panic(err)
	}
	return testDay.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
}

func member(name string, skills ...model.Skill) model.StaffMember {
	return model.StaffMember{
		Base:     model.Base{ID: uuid.New()},
		TenantID: "petshop-centro",
		Name:     name,
		Skills:   skills,
		Active:   true,
	}
}

func booked(m model.StaffMember, service model.ServiceType, from, to string) *model.Booking {
	return &model.Booking{
		Base:      model.Base{ID: uuid.New()},
		TenantID:  "petshop-centro",
		StaffID:   m.ID,
		StaffName: m.Name,
		Service:   service,
		StartTime: at(from),
		EndTime:   at(to),
		Status:    model.BookingStatusConfirmed,
	}
}

func testConfig() *model.ServiceConfig {
	return &model.ServiceConfig{
		TenantID:     "petshop-centro",
		OpeningTime:  "08:00",
		ClosingTime:  "18:00",
		SlotMinutes:  30,
		BathMinutes:  60,
		GroomMinutes: 90,
		Timezone:     "UTC",
	}
}
