//go:build sqlite

package main

import (
	"fmt"
	"path/filepath"

	"github.com/billingcat/invoicedesk/model"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3" // CGO!
)

func migrationsDir() string { return "migrations/sqlite3" }

func migrateDSN(cfg *model.Config) (string, error) {
	svr, err := cfg.Server()
	if err != nil {
		return "", err
	}
	dbPath := model.SQLitePath(cfg, svr)
	if !filepath.IsAbs(dbPath) {
		dbPath = "./" + dbPath
	}
	return fmt.Sprintf("sqlite3://%s?_journal_mode=WAL", filepath.ToSlash(dbPath)), nil
}
