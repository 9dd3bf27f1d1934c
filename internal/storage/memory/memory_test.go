package memory

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/CapCeph/ship-lens/internal/model"
)

func TestPresetLifecycle(t *testing.T) {
	s := New()
	require.NoError(t, s.Init())
	defer s.Close()

	require.NoError(t, s.SavePreset(&model.FleetPreset{
		PresetID: "bravo",
		Name:     "Bravo",
		Payload:  datatypes.JSON(`{"weapons": []}`),
	}))
	require.NoError(t, s.SavePreset(&model.FleetPreset{PresetID: "alpha", Name: "Alpha"}))

	got, err := s.GetPreset("bravo")
	require.NoError(t, err)
	assert.Equal(t, "Bravo", got.Name)

	list, err := s.ListPresets()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].PresetID)
	assert.Equal(t, "bravo", list[1].PresetID)

	// upsert by ID
	require.NoError(t, s.SavePreset(&model.FleetPreset{PresetID: "alpha", Name: "Alpha v2"}))
	got, err = s.GetPreset("alpha")
	require.NoError(t, err)
	assert.Equal(t, "Alpha v2", got.Name)

	require.NoError(t, s.DeletePreset("alpha"))
	_, err = s.GetPreset("alpha")
	assert.ErrorIs(t, err, model.ErrPresetNotFound)
	assert.ErrorIs(t, s.DeletePreset("alpha"), model.ErrPresetNotFound)
}

func TestGetPresetReturnsCopy(t *testing.T) {
	s := New()
	require.NoError(t, s.SavePreset(&model.FleetPreset{PresetID: "alpha", Name: "Alpha"}))

	got, err := s.GetPreset("alpha")
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := s.GetPreset("alpha")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", again.Name)
}

func TestSettings(t *testing.T) {
	s := New()

	loaded, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	require.NoError(t, s.SaveSettings(json.RawMessage(`{"theme": "dark"}`)))
	loaded, err = s.LoadSettings()
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme": "dark"}`, string(loaded))

	assert.Error(t, s.SaveSettings(json.RawMessage(`{broken`)))
}
