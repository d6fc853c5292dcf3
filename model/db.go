package model

import (
	"fmt"
	"path/filepath"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kvEntry is one key of the store in a SQL table.
type kvEntry struct {
	Name      string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text;not null;default:''"`
	UpdatedAt time.Time
}

func (kvEntry) TableName() string { return "kv_entries" }

// GormKV keeps the key-value store in a table of a local sqlite file or a
// postgres database.
type GormKV struct {
	db *gorm.DB
}

// NewGormKV migrates the table and wraps db.
func NewGormKV(db *gorm.DB) (*GormKV, error) {
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, fmt.Errorf("migrate kv_entries: %w", err)
	}
	return &GormKV{db: db}, nil
}

func (kv *GormKV) Get(key string) (string, bool, error) {
	var e kvEntry
	result := kv.db.Where("name = ?", key).Limit(1).Find(&e)
	if result.Error != nil {
		return "", false, fmt.Errorf("get %s: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return "", false, nil
	}
	return e.Value, true, nil
}

func (kv *GormKV) Set(key, value string) error {
	e := kvEntry{Name: key, Value: value, UpdatedAt: time.Now()}
	err := kv.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (kv *GormKV) Clear() error {
	return kv.db.Where("1 = 1").Delete(&kvEntry{}).Error
}

// Close closes the underlying connection pool.
func (kv *GormKV) Close() error {
	sqlDB, err := kv.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// OpenKV opens the backend configured for the active mode.
func OpenKV(cfg *Config) (KV, error) {
	svr, err := cfg.Server()
	if err != nil {
		return nil, err
	}
	switch svr.Database {
	case "memory":
		return NewMemoryKV(), nil
	case "file", "":
		name := svr.DBName
		if name == "" {
			name = "invoicedesk.json"
		}
		return NewFileKV(filepath.Join(cfg.Basedir, name)), nil
	case "sqlite3":
		db, err := openSQLite(cfg, svr)
		if err != nil {
			return nil, err
		}
		return NewGormKV(db)
	case "postgresql":
		db, err := openPostgres(cfg, svr)
		if err != nil {
			return nil, err
		}
		return NewGormKV(db)
	default:
		return nil, fmt.Errorf("database %q not implemented", svr.Database)
	}
}
