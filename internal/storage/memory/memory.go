// internal/storage/memory/memory.go
package memory

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/CapCeph/ship-lens/internal/model"
)

// Store keeps presets and settings in memory. Nothing survives a
// restart; it backs tests and the "memory" storage type.
type Store struct {
	mu       sync.RWMutex
	presets  map[string]model.FleetPreset // keyed by PresetID
	settings json.RawMessage
}

// New creates an empty memory store.
func New() *Store {
	return &Store{
		presets: make(map[string]model.FleetPreset),
	}
}

// Init initializes the store.
func (s *Store) Init() error {
	return nil
}

// Close cleans up resources.
func (s *Store) Close() error {
	return nil
}

// SavePreset inserts or replaces a preset by its PresetID.
func (s *Store) SavePreset(p *model.FleetPreset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presets[p.PresetID] = *p
	return nil
}

// GetPreset returns one preset by ID.
func (s *Store) GetPreset(id string) (*model.FleetPreset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.presets[id]
	if !ok {
		return nil, model.ErrPresetNotFound
	}
	return &p, nil
}

// ListPresets returns all presets sorted by PresetID.
func (s *Store) ListPresets() ([]model.FleetPreset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	presets := make([]model.FleetPreset, 0, len(s.presets))
	for _, p := range s.presets {
		presets = append(presets, p)
	}
	sort.Slice(presets, func(i, j int) bool {
		return presets[i].PresetID < presets[j].PresetID
	})
	return presets, nil
}

// DeletePreset removes one preset by ID.
func (s *Store) DeletePreset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.presets[id]; !ok {
		return model.ErrPresetNotFound
	}
	delete(s.presets, id)
	return nil
}

// SaveSettings replaces the settings document.
func (s *Store) SaveSettings(value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("settings are not valid JSON")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = append(json.RawMessage(nil), value...)
	return nil
}

// LoadSettings returns the settings document, nil when none is saved.
func (s *Store) LoadSettings() (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return nil, nil
	}
	return append(json.RawMessage(nil), s.settings...), nil
}
