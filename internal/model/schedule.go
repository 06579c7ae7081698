package model

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// ServiceConfig holds the per-tenant business hours and service durations.
type ServiceConfig struct {
	TenantID     string `db:"tenant_id" json:"tenant_id"`
	OpeningTime  string `db:"opening_time" json:"opening_time"`
	ClosingTime  string `db:"closing_time" json:"closing_time"`
	SlotMinutes  int    `db:"slot_minutes" json:"slot_minutes"`
	BathMinutes  int    `db:"bath_minutes" json:"bath_minutes"`
	GroomMinutes int    `db:"groom_minutes" json:"groom_minutes"`
	Timezone     string `db:"timezone" json:"timezone"`
}

// Duration returns how long the service takes.
func (c *ServiceConfig) Duration(service ServiceType) time.Duration {
	switch service {
	case ServiceGroom:
		return time.Duration(c.GroomMinutes) * time.Minute
	default:
		return time.Duration(c.BathMinutes) * time.Minute
	}
}

// Granularity is the distance between two consecutive slot starts.
func (c *ServiceConfig) Granularity() time.Duration {
	return time.Duration(c.SlotMinutes) * time.Minute
}

// Location resolves the tenant time zone, falling back to UTC.
func (c *ServiceConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// BusinessHours returns the opening and closing instants for the given day.
// Both are wall-clock times in the tenant zone, so DST transitions do not shift them.
func (c *ServiceConfig) BusinessHours(day time.Time) (time.Time, time.Time, error) {
	loc := c.Location()
	y, m, d := day.In(loc).Date()

	openH, openM, err := parseClock(c.OpeningTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("opening time: %w", err)
	}
	closeH, closeM, err := parseClock(c.ClosingTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("closing time: %w", err)
	}
	return time.Date(y, m, d, openH, openM, 0, 0, loc), time.Date(y, m, d, closeH, closeM, 0, 0, loc), nil
}

// DayBounds returns [00:00, 24:00) of the day in the tenant time zone.
func (c *ServiceConfig) DayBounds(day time.Time) (time.Time, time.Time) {
	loc := c.Location()
	y, m, d := day.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// parseClock parses "HH:MM". "24:00" is allowed and means the end of the day.
func parseClock(hhmm string) (int, int, error) {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return 0, 0, fmt.Errorf("invalid clock %q", hhmm)
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, 0, fmt.Errorf("invalid clock %q", hhmm)
	}
	return h, m, nil
}

// TimeSlot is one entry of the availability grid.
type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type Availability struct {
	Date    string      `json:"date"`
	Service ServiceType `json:"service"`
	Slots   []TimeSlot  `json:"slots"`
}
