package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Migration directions.
const (
	MigrateUp   = "up"
	MigrateDown = "down"
)

// RunMigrations applies (up) or reverts one step of (down) the migrations at
// sourceURL, e.g. "file://migrations".
func RunMigrations(databaseURL, sourceURL, direction string, logger *slog.Logger) error {
	// A plain database/sql connection through the pgx stdlib driver.
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open database for migrations: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create postgres migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	switch direction {
	case MigrateUp:
		err = m.Up()
	case MigrateDown:
		err = m.Steps(-1)
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	noChange := errors.Is(err, migrate.ErrNoChange)
	version, dirty, verr := m.Version()

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return fmt.Errorf("migration source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database: %w", dbErr)
	}

	if noChange {
		logger.Info("No new migrations to apply.")
	} else if verr == nil {
		logger.Info("Database migrations applied successfully.", slog.String("direction", direction), slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	} else {
		logger.Info("Database migrations applied successfully.", slog.String("direction", direction))
	}
	return nil
}
