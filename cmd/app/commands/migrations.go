package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/onetime/internal/config"
)

// RunMigrations applies pending migrations for the SQL store drivers.
// The migration path is chosen from the store driver (postgres or mysql). Returns nil if there
// is nothing to apply.
func RunMigrations(logger *slog.Logger, storeDriver, connectionString string) error {
	var migrationsPath, databaseURL string
	switch storeDriver {
	case config.StoreDriverPostgres:
		migrationsPath = "file://migrations/postgresql"
		databaseURL = connectionString
	case config.StoreDriverMySQL:
		migrationsPath = "file://migrations/mysql"
		databaseURL = mysqlMigrateURL(connectionString)
	default:
		return fmt.Errorf("migrations are not supported for store driver %q", storeDriver)
	}

	logger.Info("running database migrations", slog.String("driver", storeDriver))

	m, err := migrate.New(migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}

// mysqlMigrateURL turns a go-sql-driver DSN into the mysql:// URL golang-migrate expects.
func mysqlMigrateURL(dsn string) string {
	if strings.HasPrefix(dsn, "mysql://") {
		return dsn
	}
	return "mysql://" + dsn
}
