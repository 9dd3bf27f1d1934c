package sqlitestorage

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/CapCeph/ship-lens/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "shiplens.db"), zerolog.Nop())
	require.NoError(t, s.Init())
	t.Cleanup(func() { s.Close() })
	return s
}

func testPreset(id, name string) *model.FleetPreset {
	return &model.FleetPreset{
		PresetID: id,
		Name:     name,
		Payload:  datatypes.JSON(`{"ship":"Drake Cutlass Black"}`),
	}
}

func TestSaveAndGetPreset(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SavePreset(testPreset("p1", "Alpha")))

	got, err := s.GetPreset("p1")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Name)
	assert.JSONEq(t, `{"ship":"Drake Cutlass Black"}`, string(got.Payload))
}

func TestSavePreset_UpsertsByID(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SavePreset(testPreset("p1", "Alpha")))
	require.NoError(t, s.SavePreset(testPreset("p2", "Bravo")))
	require.NoError(t, s.SavePreset(testPreset("p1", "Alpha v2")))

	presets, err := s.ListPresets()
	require.NoError(t, err)
	require.Len(t, presets, 2)

	got, err := s.GetPreset("p1")
	require.NoError(t, err)
	assert.Equal(t, "Alpha v2", got.Name)
}

func TestGetPreset_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetPreset("missing")
	assert.ErrorIs(t, err, model.ErrPresetNotFound)
}

func TestDeletePreset(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SavePreset(testPreset("p1", "Alpha")))
	require.NoError(t, s.DeletePreset("p1"))

	_, err := s.GetPreset("p1")
	assert.ErrorIs(t, err, model.ErrPresetNotFound)

	// The ID must be reusable after deletion.
	require.NoError(t, s.SavePreset(testPreset("p1", "Alpha reborn")))
	got, err := s.GetPreset("p1")
	require.NoError(t, err)
	assert.Equal(t, "Alpha reborn", got.Name)
}

func TestDeletePreset_NotFound(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.DeletePreset("missing"), model.ErrPresetNotFound)
}

func TestSettings_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	got, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.SaveSettings(json.RawMessage(`{"theme":"dark"}`)))
	require.NoError(t, s.SaveSettings(json.RawMessage(`{"theme":"light"}`)))

	got, err = s.LoadSettings()
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"light"}`, string(got))
}

func TestSaveSettings_RejectsInvalidJSON(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.SaveSettings(json.RawMessage(`{broken`)))
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shiplens.db")

	s := New(path, zerolog.Nop())
	require.NoError(t, s.Init())
	require.NoError(t, s.SavePreset(testPreset("p1", "Alpha")))
	require.NoError(t, s.Close())

	s2 := New(path, zerolog.Nop())
	require.NoError(t, s2.Init())
	t.Cleanup(func() { s2.Close() })

	got, err := s2.GetPreset("p1")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Name)
}
