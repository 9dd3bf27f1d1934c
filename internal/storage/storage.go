// internal/storage/storage.go
package storage

import (
	"encoding/json"

	"github.com/CapCeph/ship-lens/internal/model"
)

// ErrNotFound is returned when a preset ID does not exist in the store.
// It lives in the model package so every backend can return the same
// sentinel; this alias keeps call sites on the storage package.
var ErrNotFound = model.ErrPresetNotFound

// Store is the interface all preset storage implementations must satisfy.
type Store interface {
	// Lifecycle
	Init() error
	Close() error

	// Preset management. SavePreset is an upsert keyed on PresetID.
	SavePreset(p *model.FleetPreset) error
	GetPreset(id string) (*model.FleetPreset, error)
	ListPresets() ([]model.FleetPreset, error)
	DeletePreset(id string) error

	// Settings document. LoadSettings returns nil when none is saved.
	SaveSettings(value json.RawMessage) error
	LoadSettings() (json.RawMessage, error)
}
