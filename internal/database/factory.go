package database

import (
	"fmt"
	"os"
	"path/filepath"

	"lignee/internal/config"
)

// NewDatabaseFromConfig creates a database based on the database config type.
// A "memory" database is migrated immediately since it starts empty on every run.
func NewDatabaseFromConfig(cfg config.DatabaseConfig, hostID string) (*SQLiteDatabase, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
			return nil, fmt.Errorf("creating data_dir: %w", err)
		}
		return NewSQLiteDatabase(filepath.Join(cfg.DataDir, databaseFileName(hostID)))
	case "memory":
		db, err := NewSQLiteDatabase(":memory:")
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}

func databaseFileName(hostID string) string {
	if hostID == "" {
		return "lignee.db"
	}
	return hostID + ".db"
}
