package main

import (
	"fmt"

	"github.com/desertthunder/medley/internal/repositories"
	"github.com/desertthunder/medley/internal/shared"
)

// OpenStore builds the [repositories.AccountStore] selected by config.Store.Driver.
//
// The returned close function releases any connection the store holds.
func OpenStore(config *shared.Config) (repositories.AccountStore, func() error, error) {
	if err := config.Validate(); err != nil {
		return nil, nil, err
	}

	noop := func() error { return nil }

	switch config.Store.Driver {
	case shared.DriverSQLite:
		db, err := shared.OpenMigrated(config.Store.Path, config.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return repositories.NewSQLiteStore(db), db.Close, nil
	case shared.DriverCSV:
		return repositories.NewCSVStore(config.Store.CSVPath), noop, nil
	case shared.DriverPostgres:
		store, err := repositories.OpenPostgresStore(config.Store.DSN)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case shared.DriverMemory:
		return repositories.NewMemoryStore(), noop, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", shared.ErrUnknownDriver, config.Store.Driver)
	}
}
