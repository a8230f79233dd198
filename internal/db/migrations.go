package db

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Migration represents a database migration.
type Migration struct {
	Version int
	Name    string
	Up      func(ctx context.Context, tx *sql.Tx, driver string) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_fleet_tables",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "reset_unreferenced_vehicle_holds",
		Up:      migrationV2,
	},
}

// RunMigrations executes all pending migrations, each in its own transaction.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	versionTable := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.ExecContext(ctx, versionTable); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var currentVersion int
	err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	insert := Rebind(driver, "INSERT INTO schema_version (version) VALUES (?)")

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		logger := log.WithFields(log.Fields{"version": migration.Version, "name": migration.Name})
		logger.Info("running migration")

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(ctx, tx, driver); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.ExecContext(ctx, insert, migration.Version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		logger.Info("migration completed")
	}

	return nil
}

// CurrentVersion reports the highest applied migration.
func CurrentVersion(ctx context.Context, db *sql.DB) (int, error) {
	var v int
	err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&v)
	return v, err
}

// migrationV1 creates the base tables.
func migrationV1(ctx context.Context, tx *sql.Tx, driver string) error {
	_, err := tx.ExecContext(ctx, SchemaFor(driver))
	return err
}

// migrationV2 frees vehicles marked unavailable with no mission holding them.
// Databases filled before the ledger owned availability could carry such rows.
func migrationV2(ctx context.Context, tx *sql.Tx, driver string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE vehicles SET available = TRUE
		WHERE available = FALSE
		AND id NOT IN (SELECT vehicle_id FROM missions WHERE vehicle_reserved = TRUE AND vehicle_id IS NOT NULL)
	`)
	return err
}
