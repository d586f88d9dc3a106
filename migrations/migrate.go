package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"hisab/backend/database"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/sqlite/*.sql sql/postgres/*.sql
var migrationsFS embed.FS

// RunMigrations applies every pending up migration for the database's dialect.
// It uses its own connection because closing a migrate instance closes the
// connection it was built on.
func RunMigrations(db *database.DB) error {
	m, err := newMigrator(db)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Version reports the currently applied schema version.
func Version(db *database.DB) (uint, bool, error) {
	m, err := newMigrator(db)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// Rollback reverts every applied migration.
func Rollback(db *database.DB) error {
	m, err := newMigrator(db)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rollback migrations: %w", err)
	}
	return nil
}

func newMigrator(db *database.DB) (*migrate.Migrate, error) {
	name := db.Dialect.Name()

	migrateDB, err := sql.Open(name, db.DSN)
	if err != nil {
		return nil, fmt.Errorf("open migration database: %w", err)
	}

	var dir string
	var m *migrate.Migrate
	switch db.Dialect {
	case database.Postgres:
		dir = "sql/postgres"
		driver, err := postgres.WithInstance(migrateDB, &postgres.Config{})
		if err != nil {
			migrateDB.Close()
			return nil, fmt.Errorf("create postgres driver: %w", err)
		}
		src, err := iofs.New(migrationsFS, dir)
		if err != nil {
			driver.Close()
			return nil, fmt.Errorf("create iofs source: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, "postgres", driver)
		if err != nil {
			return nil, fmt.Errorf("create migrate instance: %w", err)
		}
	default:
		dir = "sql/sqlite"
		driver, err := sqlite3.WithInstance(migrateDB, &sqlite3.Config{})
		if err != nil {
			migrateDB.Close()
			return nil, fmt.Errorf("create sqlite driver: %w", err)
		}
		src, err := iofs.New(migrationsFS, dir)
		if err != nil {
			driver.Close()
			return nil, fmt.Errorf("create iofs source: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, "sqlite3", driver)
		if err != nil {
			return nil, fmt.Errorf("create migrate instance: %w", err)
		}
	}

	return m, nil
}
