// Package model defines the persisted user-state records: saved fleet
// presets and application settings. The structs carry both gorm tags
// for the sqlite backend and json tags for the file backend, so the two
// stores share one schema.
package model

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrPresetNotFound is the shared sentinel returned by every store
// backend when a preset ID does not exist.
var ErrPresetNotFound = errors.New("preset not found")

// DatabaseModels lists every struct that maps to a table in the
// database schema.
var DatabaseModels = []interface{}{
	&FleetPreset{},
	&Setting{},
}

// FleetPreset is a saved loadout configuration. PresetID is the
// user-visible identity: saving an existing PresetID replaces the
// stored payload. Payload is opaque to the store; its shape belongs to
// whoever builds the preset.
type FleetPreset struct {
	gorm.Model `json:"-"`
	PresetID   string         `json:"id" gorm:"uniqueIndex;size:127"`
	Name       string         `json:"name" gorm:"size:255"`
	Payload    datatypes.JSON `json:"payload"`
}

func (FleetPreset) TableName() string {
	return "fleet_presets"
}

// Setting is a single named settings document. The whole application
// settings blob lives under one well-known key.
type Setting struct {
	gorm.Model `json:"-"`
	Key        string         `json:"key" gorm:"uniqueIndex;size:127"`
	Value      datatypes.JSON `json:"value"`
}

func (Setting) TableName() string {
	return "settings"
}

// SettingsKey is the key the application settings document is stored
// under.
const SettingsKey = "settings"
