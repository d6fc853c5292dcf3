package main

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/urfave/cli/v2"
)

// migrateCommand manages the kv_entries schema for operators who want it
// versioned. The store creates the table on its own otherwise.
func migrateCommand() *cli.Command {
	run := func(step func(m *migrate.Migrate) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			logger := newLogger(cfg)
			dsn, err := migrateDSN(cfg)
			if err != nil {
				return err
			}
			m, err := migrate.New("file://"+migrationsDir(), dsn)
			if err != nil {
				return fmt.Errorf("cannot create migration: %w", err)
			}
			defer m.Close()
			if err = step(m); errors.Is(err, migrate.ErrNoChange) {
				logger.Info("schema is up to date")
				return nil
			} else if err != nil {
				return err
			}
			version, dirty, err := m.Version()
			if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
				return err
			}
			logger.Info("migration done", "version", version, "dirty", dirty)
			return nil
		}
	}
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply or roll back the SQL schema",
		Subcommands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "apply all migrations",
				Action: run(func(m *migrate.Migrate) error { return m.Up() }),
			},
			{
				Name:   "down",
				Usage:  "roll back one migration",
				Action: run(func(m *migrate.Migrate) error { return m.Steps(-1) }),
			},
		},
	}
}
