// internal/storage/storage_test.go
package storage_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CapCeph/ship-lens/internal/config"
	"github.com/CapCeph/ship-lens/internal/storage"
)

func TestNewStore_JSONFile(t *testing.T) {
	cfg := config.StorageConfig{
		Type:     "jsonfile",
		JSONFile: config.JSONFileConfig{Dir: t.TempDir()},
	}

	store, err := storage.NewStore(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, store)
	require.NoError(t, store.Init())
	assert.NoError(t, store.Close())
}

func TestNewStore_SQLite(t *testing.T) {
	cfg := config.StorageConfig{
		Type:   "sqlite",
		SQLite: config.SQLiteConfig{Path: t.TempDir() + "/shiplens.db"},
	}

	store, err := storage.NewStore(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, store)
	require.NoError(t, store.Init())
	assert.NoError(t, store.Close())
}

func TestNewStore_Memory(t *testing.T) {
	store, err := storage.NewStore(config.StorageConfig{Type: "memory"}, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, store)
	require.NoError(t, store.Init())
	assert.NoError(t, store.Close())
}

func TestNewStore_Unknown(t *testing.T) {
	_, err := storage.NewStore(config.StorageConfig{Type: "redis"}, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage type")
}
