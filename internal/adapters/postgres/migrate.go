package postgres

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // pgx v5 driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies all pending schema migrations. Migrations are embedded
// at compile time and tracked in the schema_migrations table, so running
// this on every startup is idempotent: the authors and quotes tables are
// created once and later starts are no-ops.
func Migrate(connURL string, logger *slog.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("creating migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, migrateURL(connURL))
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}

	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Warn("closing migration source", slog.Any("error", srcErr))
		}

		if dbErr != nil {
			logger.Warn("closing migration connection", slog.Any("error", dbErr))
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Debug("schema up to date")
			return nil
		}

		return fmt.Errorf("applying migrations: %w", err)
	}

	logger.Info("schema migrations applied")

	return nil
}

// migrateURL rewrites a postgres:// or postgresql:// URL to the pgx5://
// scheme golang-migrate uses to select its pgx v5 driver.
func migrateURL(connURL string) string {
	if rest, ok := strings.CutPrefix(connURL, "postgresql://"); ok {
		return "pgx5://" + rest
	}

	if rest, ok := strings.CutPrefix(connURL, "postgres://"); ok {
		return "pgx5://" + rest
	}

	return connURL
}
