package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
)

// migrator is the subset of *migrate.Migrate the commands use.
type migrator interface {
	Up() error
	Down() error
	Force(version int) error
}

func run(m migrator, command, arg string) error {
	var err error
	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "force":
		version, convErr := strconv.Atoi(arg)
		if convErr != nil {
			return fmt.Errorf("invalid version %q: %w", arg, convErr)
		}
		err = m.Force(version)
	case "version":
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
