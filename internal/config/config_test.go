package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_File(t *testing.T) {
	cfg, err := LoadConfig("./testdata")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, "09:00", cfg.Scheduling.OpeningTime)
	assert.Equal(t, "17:00", cfg.Scheduling.ClosingTime)
	assert.Equal(t, "UTC", cfg.Scheduling.Timezone)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"https://app.agenpets.com"}, cfg.Server.CORSOrigins)
	require.Len(t, cfg.Database.Seed, 2)
	assert.Equal(t, StaffSeed{TenantID: "petshop-1", Name: "Bruno", Skills: []string{"banho"}}, cfg.Database.Seed[1])

	// untouched keys keep their defaults
	assert.Equal(t, 30, cfg.Scheduling.SlotMinutes)
	assert.Equal(t, 90, cfg.Scheduling.GroomMinutes)
	assert.Equal(t, 2*time.Second, cfg.Outbox.PollInterval)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "08:00", cfg.Scheduling.OpeningTime)
	assert.Equal(t, "18:00", cfg.Scheduling.ClosingTime)
	assert.Equal(t, 60, cfg.Scheduling.BathMinutes)
	assert.Equal(t, "America/Sao_Paulo", cfg.Scheduling.Timezone)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.Outbox.Embedded)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "7000")
	t.Setenv("DATABASE_DRIVER", "memory")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Database.Driver)
}

func TestConfig_Validate(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.Validate())

	cfg.Database.Driver = "memory"
	cfg.Auth.Enabled = true
	assert.Error(t, cfg.Validate())

	cfg.Auth.Secret = "s3cret"
	assert.NoError(t, cfg.Validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "agenpets", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=agenpets sslmode=disable", c.DSN())
}
