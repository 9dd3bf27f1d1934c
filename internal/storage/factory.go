// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/CapCeph/ship-lens/internal/config"
	"github.com/CapCeph/ship-lens/internal/storage/jsonfile"
	"github.com/CapCeph/ship-lens/internal/storage/memory"
	sqlitestorage "github.com/CapCeph/ship-lens/internal/storage/sqlite"
)

// NewStore creates a preset store based on configuration.
func NewStore(cfg config.StorageConfig, log zerolog.Logger) (Store, error) {
	switch cfg.Type {
	case "jsonfile":
		return jsonfile.New(cfg.JSONFile.Dir), nil
	case "sqlite":
		return sqlitestorage.New(cfg.SQLite.Path, log), nil
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
