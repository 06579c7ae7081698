package main

import (
	"database/sql"
	"errors"
	"flag"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/agenpets/scheduler-api/migrations"
	"github.com/agenpets/scheduler-api/pkg/logger"
)

type migrateConfig struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"console"`
}

// Usage: migrate [up|down|force <version>|version]
func main() {
	_ = godotenv.Load()

	var cfg migrateConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load migrate configuration")
	}
	logger.Setup(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	flag.Parse()
	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to reach database")
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create database driver")
	}
	srcDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create source driver")
	}

	m, err := migrate.NewWithInstance("iofs", srcDriver, "postgres", dbDriver)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create migrator")
	}
	defer func() { _, _ = m.Close() }()

	if err := run(m, command, flag.Arg(1)); err != nil {
		log.Error().Err(err).Str("command", command).Msg("migration failed")
		os.Exit(1)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Fatal().Err(err).Msg("failed to read schema version")
	}
	log.Info().Str("command", command).Uint("version", version).Bool("dirty", dirty).Msg("migrations complete")
}
