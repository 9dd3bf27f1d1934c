// Package jsonfile implements the preset store on plain JSON files:
// fleet_presets.json holds an array of presets, settings.json holds the
// settings document. Files are rewritten whole on every mutation, which
// is fine at the scale of hand-saved loadouts.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/CapCeph/ship-lens/internal/model"
)

const (
	presetsFile  = "fleet_presets.json"
	settingsFile = "settings.json"
)

// Store is a file-backed preset store.
type Store struct {
	mu  sync.Mutex
	dir string
}

// New creates a file-backed store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Init ensures the storage directory exists.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage dir: %w", err)
	}
	return nil
}

// Close is a no-op; every mutation is flushed as it happens.
func (s *Store) Close() error {
	return nil
}

func (s *Store) presetsPath() string {
	return filepath.Join(s.dir, presetsFile)
}

func (s *Store) settingsPath() string {
	return filepath.Join(s.dir, settingsFile)
}

// readPresets loads the preset array; a missing file is an empty list.
func (s *Store) readPresets() ([]model.FleetPreset, error) {
	raw, err := os.ReadFile(s.presetsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return []model.FleetPreset{}, nil
		}
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}

	var presets []model.FleetPreset
	if err := json.Unmarshal(raw, &presets); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}
	return presets, nil
}

func (s *Store) writePresets(presets []model.FleetPreset) error {
	raw, err := json.MarshalIndent(presets, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize presets: %w", err)
	}
	if err := os.WriteFile(s.presetsPath(), raw, 0o644); err != nil {
		return fmt.Errorf("failed to write presets: %w", err)
	}
	return nil
}

// SavePreset inserts the preset, replacing any existing entry with the
// same PresetID.
func (s *Store) SavePreset(p *model.FleetPreset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	presets, err := s.readPresets()
	if err != nil {
		return err
	}

	replaced := false
	for i := range presets {
		if presets[i].PresetID == p.PresetID {
			presets[i] = *p
			replaced = true
			break
		}
	}
	if !replaced {
		presets = append(presets, *p)
	}

	return s.writePresets(presets)
}

// GetPreset returns the preset with the given ID.
func (s *Store) GetPreset(id string) (*model.FleetPreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	presets, err := s.readPresets()
	if err != nil {
		return nil, err
	}
	for i := range presets {
		if presets[i].PresetID == id {
			return &presets[i], nil
		}
	}
	return nil, model.ErrPresetNotFound
}

// ListPresets returns all saved presets in file order.
func (s *Store) ListPresets() ([]model.FleetPreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readPresets()
}

// DeletePreset removes the preset with the given ID.
func (s *Store) DeletePreset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	presets, err := s.readPresets()
	if err != nil {
		return err
	}

	kept := presets[:0]
	found := false
	for _, p := range presets {
		if p.PresetID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return model.ErrPresetNotFound
	}

	return s.writePresets(kept)
}

// SaveSettings replaces the settings document.
func (s *Store) SaveSettings(value json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pretty json.RawMessage
	if err := json.Unmarshal(value, &pretty); err != nil {
		return fmt.Errorf("settings are not valid JSON: %w", err)
	}

	raw, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	if err := os.WriteFile(s.settingsPath(), raw, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// LoadSettings returns the settings document, or nil when none exists.
func (s *Store) LoadSettings() (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.settingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return json.RawMessage(raw), nil
}
