// Package database owns the sqlite connection used by the preset
// store. The file-backed database is the normal case; an empty path
// opens a shared in-memory database, which tests use.
package database

import (
	"database/sql"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/CapCeph/ship-lens/internal/model"
)

// Manager handles the database connection and schema setup.
type Manager struct {
	DB      *gorm.DB
	SqlDB   *sql.DB
	IsValid bool
	Logger  zerolog.Logger
}

// NewManager creates a new database manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		IsValid: false,
		Logger:  log,
	}
}

// Connect opens the sqlite database at path and validates the
// connection. An empty path opens an in-memory database.
func (m *Manager) Connect(path string) error {
	var err error

	m.DB, err = m.openSqlite(path)
	if err != nil || m.DB == nil {
		m.IsValid = false
		return fmt.Errorf("failed to open sqlite DB: %s", err)
	}

	m.SqlDB, err = m.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %s", err)
	}

	if err = m.SqlDB.Ping(); err != nil {
		m.IsValid = false
		return fmt.Errorf("failed to validate connection: %s", err)
	}

	m.IsValid = true
	return nil
}

func (m *Manager) openSqlite(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if path != "" {
		m.Logger.Info().Str("path", path).Msg("Using local SQLite DB")
	} else {
		m.Logger.Info().Msg("Using in-memory SQLite DB")
	}

	pragmas := []string{
		"PRAGMA user_version = 1;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA temp_store = MEMORY;",
	}

	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %s", err)
		}
	}

	return db, nil
}

// Setup migrates the schema.
func (m *Manager) Setup() error {
	m.Logger.Info().Msg("Migrating schema")
	if err := m.DB.AutoMigrate(model.DatabaseModels...); err != nil {
		m.IsValid = false
		return fmt.Errorf("failed to migrate schema: %s", err)
	}

	m.Logger.Info().Msg("Database setup complete")
	return nil
}

// Close closes the underlying connection.
func (m *Manager) Close() error {
	if m.SqlDB == nil {
		return nil
	}
	m.IsValid = false
	return m.SqlDB.Close()
}
