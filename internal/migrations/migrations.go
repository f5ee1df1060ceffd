// Package migrations owns the schema of the local experiment_events replica
// used for development against postgres. Real warehouses are never migrated.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var MigrationFiles embed.FS

// schema is the subset of *migrate.Migrate the replica setup drives.
type schema interface {
	Version() (uint, bool, error)
	Force(version int) error
	Up() error
}

// Run brings the local replica table up to date on db. With autoMigrate off
// it only reports the recorded version.
func Run(db *sql.DB, autoMigrate bool) error {
	m, err := open(db)
	if err != nil {
		return err
	}
	return apply(m, autoMigrate)
}

func open(db *sql.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(MigrationFiles, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded replica schema: %w", err)
	}
	target, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to attach to replica database: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", target)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare replica schema: %w", err)
	}
	return m, nil
}

func apply(m schema, autoMigrate bool) error {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		version, dirty = 0, false
	case err != nil:
		return fmt.Errorf("failed to read replica schema version: %w", err)
	}

	if dirty {
		if err := clearDirty(m, version); err != nil {
			return err
		}
	}

	if !autoMigrate {
		slog.Info("[Migrations] Replica schema left as is", "version", version)
		return nil
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		slog.Info("[Migrations] Replica schema current", "version", version)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create replica table: %w", err)
	}

	current, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to read replica schema version: %w", err)
	}
	slog.Info("[Migrations] Replica schema updated", "from", version, "to", current)
	return nil
}

// clearDirty resets an interrupted run to its recorded version. Every
// replica statement uses IF NOT EXISTS, so the following Up can replay it.
func clearDirty(m schema, version uint) error {
	slog.Warn("[Migrations] Interrupted replica migration, resetting", "version", version)
	if err := m.Force(int(version)); err != nil {
		return fmt.Errorf("failed to reset replica schema at version %d: %w", version, err)
	}
	return nil
}
