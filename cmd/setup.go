package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/medley/internal/repositories"
	"github.com/desertthunder/medley/internal/shared"
)

// Setup writes config.toml from the embedded template if it is missing, then prepares the
// configured store: migrations for sqlite, schema for postgres, a header-only file for csv.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	if _, err := os.Stat(r.configPath); errors.Is(err, fs.ErrNotExist) {
		r.logger.Info("config file not found, creating from template", "path", r.configPath)
		if err := shared.CreateConfigFile(r.configPath); err != nil {
			return err
		}
		r.writePlain("✓ Wrote %s\n", r.configPath)
	}

	if cmd.Bool("rollback") {
		if r.config.Store.Driver != shared.DriverSQLite {
			return fmt.Errorf("%w: --rollback only applies to the sqlite driver", shared.ErrInvalidArgument)
		}
		return r.rollbackSQLite()
	}

	switch r.config.Store.Driver {
	case shared.DriverSQLite:
		return r.setupSQLite()
	case shared.DriverCSV:
		return r.setupCSV()
	case shared.DriverPostgres:
		r.logger.Info("migrating postgres schema")
		store, err := repositories.OpenPostgresStore(r.config.Store.DSN)
		if err != nil {
			return err
		}
		defer store.Close()
		r.writePlain("✓ Postgres account table ready\n")
	case shared.DriverMemory:
		r.writePlain("The memory store needs no setup; accounts last for one command.\n")
	}
	return nil
}

func (r *Runner) setupSQLite() error {
	path := r.config.Store.Path
	r.logger.Info("initializing database", "path", path)

	db, err := shared.NewDatabase(path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, pending, err := shared.MigrationStatus(db)
	if err != nil {
		return err
	}
	r.logger.Infof("setup complete for database: %v", path)
	r.writePlain("✓ %s at schema version %d (%d pending)\n", path, version, pending)
	return nil
}

func (r *Runner) rollbackSQLite() error {
	db, err := shared.NewDatabase(r.config.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	m, err := shared.RollbackMigration(db)
	if err != nil {
		return err
	}

	r.logger.Warn("migration rolled back", "version", m.Version, "name", m.Name)
	r.writePlain("✓ Rolled back %04d_%s\n", m.Version, m.Name)
	return nil
}

func (r *Runner) setupCSV() error {
	path := r.config.Store.CSVPath
	if _, err := os.Stat(path); err == nil {
		r.writePlain("✓ %s already exists\n", path)
		return nil
	}

	if err := repositories.NewCSVStore(path).Save(nil); err != nil {
		return fmt.Errorf("failed to create account file: %w", err)
	}
	r.writePlain("✓ Created %s\n", path)
	return nil
}
