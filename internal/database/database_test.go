package database

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CapCeph/ship-lens/internal/model"
)

func TestConnectAndMigrate(t *testing.T) {
	m := NewManager(zerolog.Nop())

	require.NoError(t, m.Connect(filepath.Join(t.TempDir(), "shiplens.db")))
	assert.True(t, m.IsValid)
	require.NoError(t, m.Setup())

	// migrated tables accept writes
	preset := model.FleetPreset{PresetID: "alpha", Name: "Alpha"}
	require.NoError(t, m.DB.Create(&preset).Error)

	var count int64
	require.NoError(t, m.DB.Model(&model.FleetPreset{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, m.Close())
}

func TestConnectEmptyPathUsesMemory(t *testing.T) {
	m := NewManager(zerolog.Nop())

	require.NoError(t, m.Connect(""))
	assert.True(t, m.IsValid)
	require.NoError(t, m.Setup())
	require.NoError(t, m.Close())
}
