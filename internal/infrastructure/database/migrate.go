package database

import (
	"database/sql"
	"errors"
	"fmt"

	"healthcare-records/config"
	"healthcare-records/migrations"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
)

// RunMigrations applies the embedded schema on its own connection; closing the
// migrator closes that connection, not the application pool.
func RunMigrations(cfg config.DBConfig, log *logrus.Logger) error {
	db, err := sql.Open("pgx", cfg.URL())
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}

	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			log.Warnf("Failed to close migrator: source=%v database=%v", srcErr, dbErr)
		}
	}()

	log.Info("Running database migrations...")
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("No migrations to run")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err == nil {
		log.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("Database migrations applied")
	}
	return nil
}
