package migrations

import (
	"embed"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // DB driver
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql" // migrate option
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*sql
var migrationsFS embed.FS

const (
	dbURLPrefix = "mysql://"
)

// MigrateDB applies every pending migration to the catalog/orders schema.
func MigrateDB(dsn string) error {
	return run(dsn, func(m *migrate.Migrate) error {
		return m.Up()
	})
}

// Migrate moves the schema up or down to version.
func Migrate(dsn string, version uint) error {
	return run(dsn, func(m *migrate.Migrate) error {
		return m.Migrate(version)
	})
}

func newSource() (source.Driver, error) {
	migrationSource, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}
	return migrationSource, nil
}

func run(dsn string, step func(m *migrate.Migrate) error) error {
	migrationSource, err := newSource()
	if err != nil {
		return err
	}
	defer migrationSource.Close()

	migration, err := migrate.NewWithSourceInstance("iofs", migrationSource, dbURLPrefix+dsn)
	if err != nil {
		return fmt.Errorf("failed to connect migrations to storage: %w", err)
	}
	defer migration.Close()

	err = step(migration)
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate storage: %w", err)
	}

	return nil
}
