package main

import (
	"context"
	"fmt"

	"github.com/agenpets/scheduler-api/internal/config"
	"github.com/agenpets/scheduler-api/internal/repository"
	"github.com/agenpets/scheduler-api/internal/repository/memory"
	"github.com/agenpets/scheduler-api/internal/repository/postgres"
)

// store is the storage backend selected by database.driver.
type store struct {
	staff          repository.StaffRepository
	serviceConfigs repository.ServiceConfigRepository
	bookings       repository.BookingRepository
	outbox         repository.OutboxRepository
	pinger         repository.Pinger
	close          func() error
}

func openStore(ctx context.Context, cfg config.DatabaseConfig) (*store, error) {
	switch cfg.Driver {
	case "memory":
		members, err := cfg.ToStaffMembers()
		if err != nil {
			return nil, fmt.Errorf("invalid database seed: %w", err)
		}
		s := memory.New()
		for _, m := range members {
			s.AddStaff(m)
		}
		return &store{
			staff:          s.StaffRepository(),
			serviceConfigs: s.ServiceConfigRepository(),
			bookings:       s.BookingRepository(),
			outbox:         s.OutboxRepository(),
			pinger:         s,
			close:          func() error { return nil },
		}, nil
	case "postgres":
		db, err := postgres.NewDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		repos := postgres.NewRepositories(db)
		return &store{
			staff:          repos.Staff,
			serviceConfigs: repos.ServiceConfigs,
			bookings:       repos.Bookings,
			outbox:         repos.Outbox,
			pinger:         repos,
			close:          db.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
