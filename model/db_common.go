package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config is read from config.toml.
type Config struct {
	Basedir string
	Mode    string
	Port    int
	Public  string // directory of the single page application
	Servers map[string]Server
}

// Server selects the key-value backend for one mode.
type Server struct {
	Database   string // memory, file, sqlite3 or postgresql
	DBName     string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     int
	DBLogger   string
}

// DefaultConfig is used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Basedir: ".",
		Mode:    "development",
		Port:    8080,
		Public:  "public",
		Servers: map[string]Server{
			"development": {Database: "file", DBName: "invoicedesk.json"},
			"production":  {Database: "sqlite3", DBName: "invoicedesk.db"},
		},
	}
}

// LoadConfig reads the TOML file at path on top of the defaults and applies
// the INVOICEDESK_MODE and INVOICEDESK_PORT environment overrides. A missing
// file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err = toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if mode := os.Getenv("INVOICEDESK_MODE"); mode != "" {
		cfg.Mode = mode
	}
	if port := os.Getenv("INVOICEDESK_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("INVOICEDESK_PORT: %w", err)
		}
		cfg.Port = p
	}
	return cfg, nil
}

// Server returns the backend settings of the active mode.
func (cfg *Config) Server() (Server, error) {
	svr, ok := cfg.Servers[cfg.Mode]
	if !ok {
		return Server{}, fmt.Errorf("no server configured for mode %q", cfg.Mode)
	}
	return svr, nil
}

// shared helper for GORM logger
func gormLoggerFor(cfg *Config, svr Server) *gorm.Config {
	gormConfig := &gorm.Config{}
	switch svr.DBLogger {
	case "info":
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	case "silent":
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	default:
		if cfg.Mode == "development" {
			gormConfig.Logger = logger.Default.LogMode(logger.Warn)
		} else {
			gormConfig.Logger = logger.Default.LogMode(logger.Silent)
		}
	}
	return gormConfig
}
