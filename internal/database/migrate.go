package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const migrationsTable = "alms_schema_migrations"

// RunMigrations applies every pending migration from migrationsPath. A
// migration left dirty by a crashed run is rolled back one version and
// retried once.
func RunMigrations(db *sql.DB, migrationsPath string, logger *slog.Logger) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	var dirty migrate.ErrDirty
	if errors.As(err, &dirty) {
		err = retryDirty(m, dirty.Version, logger)
	}

	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("Database schema is up to date")
		return nil
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, isDirty, _ := m.Version()
	logger.Info("Migrations completed", "version", version, "dirty", isDirty)
	return nil
}

func retryDirty(m *migrate.Migrate, version int, logger *slog.Logger) error {
	if version <= 0 {
		return fmt.Errorf("dirty database at version %d", version)
	}

	logger.Warn("Dirty migration state, forcing previous version and retrying", "version", version)
	if err := m.Force(version - 1); err != nil {
		return fmt.Errorf("force version %d: %w", version-1, err)
	}
	return m.Up()
}
