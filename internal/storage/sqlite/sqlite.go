// Package sqlitestorage implements the preset store on a local sqlite
// database. Presets and settings are single-row upserts keyed on their
// natural IDs; the database manager owns connection and migration.
package sqlitestorage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CapCeph/ship-lens/internal/database"
	"github.com/CapCeph/ship-lens/internal/model"
)

// Store is a sqlite-backed preset store.
type Store struct {
	path string
	mgr  *database.Manager
}

// New creates a sqlite store writing to the database file at path. An
// empty path uses an in-memory database.
func New(path string, log zerolog.Logger) *Store {
	return &Store{
		path: path,
		mgr:  database.NewManager(log),
	}
}

// Init connects and migrates the schema.
func (s *Store) Init() error {
	if err := s.mgr.Connect(s.path); err != nil {
		return err
	}
	return s.mgr.Setup()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.mgr.Close()
}

// SavePreset inserts the preset, replacing any existing row with the
// same PresetID.
func (s *Store) SavePreset(p *model.FleetPreset) error {
	err := s.mgr.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "preset_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "payload", "updated_at"}),
	}).Create(p).Error
	if err != nil {
		return fmt.Errorf("failed to save preset: %w", err)
	}
	return nil
}

// GetPreset returns the preset with the given ID.
func (s *Store) GetPreset(id string) (*model.FleetPreset, error) {
	var p model.FleetPreset
	err := s.mgr.DB.Where("preset_id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrPresetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load preset: %w", err)
	}
	return &p, nil
}

// ListPresets returns all saved presets, oldest first.
func (s *Store) ListPresets() ([]model.FleetPreset, error) {
	var presets []model.FleetPreset
	if err := s.mgr.DB.Order("id asc").Find(&presets).Error; err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	return presets, nil
}

// DeletePreset removes the preset with the given ID.
func (s *Store) DeletePreset(id string) error {
	// Hard delete: a soft-deleted row would still hold the unique
	// preset_id and block a later save under the same ID.
	res := s.mgr.DB.Unscoped().Where("preset_id = ?", id).Delete(&model.FleetPreset{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete preset: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrPresetNotFound
	}
	return nil
}

// SaveSettings replaces the settings document.
func (s *Store) SaveSettings(value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("settings are not valid JSON")
	}

	setting := model.Setting{
		Key:   model.SettingsKey,
		Value: datatypes.JSON(value),
	}
	err := s.mgr.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// LoadSettings returns the settings document, or nil when none exists.
func (s *Store) LoadSettings() (json.RawMessage, error) {
	var setting model.Setting
	err := s.mgr.DB.Where("key = ?", model.SettingsKey).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return json.RawMessage(setting.Value), nil
}
