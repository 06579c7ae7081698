package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceConfig_BusinessHours(t *testing.T) {
	cfg := &ServiceConfig{OpeningTime: "08:30", ClosingTime: "24:00", Timezone: "America/Sao_Paulo"}
	day := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	open, closing, err := cfg.BusinessHours(day)
	require.NoError(t, err)

	loc := cfg.Location()
	assert.Equal(t, time.Date(2026, 3, 10, 8, 30, 0, 0, loc), open)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, loc), closing)
}

func TestServiceConfig_BusinessHoursAcrossDST(t *testing.T) {
	cfg := &ServiceConfig{OpeningTime: "08:00", ClosingTime: "18:00", Timezone: "America/New_York"}
	loc := cfg.Location()

	for _, day := range []time.Time{
		time.Date(2026, 3, 8, 0, 0, 0, 0, loc),
		time.Date(2026, 11, 1, 0, 0, 0, 0, loc),
	} {
		open, closing, err := cfg.BusinessHours(day)
		require.NoError(t, err)
		assert.Equal(t, "08:00", open.In(loc).Format("15:04"), day.Format("2006-01-02"))
		assert.Equal(t, "18:00", closing.In(loc).Format("15:04"), day.Format("2006-01-02"))
	}
}

func TestServiceConfig_BusinessHoursInvalid(t *testing.T) {
	for _, clock := range []string{"", "7", "25:00", "24:30", "10:75", "-1:00"} {
		cfg := &ServiceConfig{OpeningTime: clock, ClosingTime: "18:00"}
		_, _, err := cfg.BusinessHours(time.Now())
		assert.Error(t, err, clock)
	}
}

func TestServiceConfig_Durations(t *testing.T) {
	cfg := &ServiceConfig{SlotMinutes: 30, BathMinutes: 60, GroomMinutes: 90}
	assert.Equal(t, 60*time.Minute, cfg.Duration(ServiceBath))
	assert.Equal(t, 90*time.Minute, cfg.Duration(ServiceGroom))
	assert.Equal(t, 30*time.Minute, cfg.Granularity())
}

func TestServiceConfig_LocationFallback(t *testing.T) {
	assert.Equal(t, time.UTC, (&ServiceConfig{}).Location())
	assert.Equal(t, time.UTC, (&ServiceConfig{Timezone: "Mars/Olympus"}).Location())
}

func TestServiceConfig_DayBounds(t *testing.T) {
	cfg := &ServiceConfig{Timezone: "UTC"}
	start, end := cfg.DayBounds(time.Date(2026, 3, 10, 13, 45, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), end)
}
