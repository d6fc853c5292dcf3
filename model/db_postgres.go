package model

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgresPort returns the configured port or the postgres default.
func PostgresPort(svr Server) int {
	if svr.DBPort == 0 {
		return 5432
	}
	return svr.DBPort
}

func openPostgres(cfg *Config, svr Server) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		svr.DBHost, svr.DBUser, svr.DBPassword, svr.DBName, PostgresPort(svr),
	)
	return gorm.Open(postgres.Open(dsn), gormLoggerFor(cfg, svr))
}
