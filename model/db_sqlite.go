package model

import (
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// SQLitePath is the database file of svr below the base directory.
func SQLitePath(cfg *Config, svr Server) string {
	return filepath.Join(cfg.Basedir, svr.DBName)
}

// openSQLite uses the pure Go driver, no cgo needed.
func openSQLite(cfg *Config, svr Server) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(SQLitePath(cfg, svr)), gormLoggerFor(cfg, svr))
}
