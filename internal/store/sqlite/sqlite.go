package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/maloquacious/apprater/internal/logger"
	"github.com/maloquacious/apprater/internal/store"
	_ "modernc.org/sqlite"
)

// SQLiteStore owns the database connection and its schema.
// Preference access goes through Settings.
type SQLiteStore struct {
	dbPath         string
	db             *sql.DB
	expectedSchema string
	log            logger.Logger
}

var _ store.Store = (*SQLiteStore)(nil)

// New creates a new SQLiteStore.
func New(dbPath string, expectedSchema string, log logger.Logger) *SQLiteStore {
	if log == nil {
		log = logger.Default
	}
	return &SQLiteStore{
		dbPath:         dbPath,
		expectedSchema: expectedSchema,
		log:            log,
	}
}

// Open opens the SQLite database with safe defaults.
func (s *SQLiteStore) Open() error {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Apply safe defaults
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	s.db = db
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema creates the schema and records the given version.
// Running it against an initialized database is a no-op.
func (s *SQLiteStore) InitSchema(version string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(initialSchema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	_, err = tx.Exec(`INSERT OR IGNORE INTO schema_migrations (version, applied_at) VALUES (?, strftime('%s', 'now'))`, version)
	if err != nil {
		return fmt.Errorf("failed to insert schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CheckState returns the current state of the datastore.
func (s *SQLiteStore) CheckState() (store.StoreState, error) {
	if s.db == nil {
		return store.StateMissing, fmt.Errorf("database not opened")
	}

	// Check if schema_migrations table exists
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_migrations'`).Scan(&count)
	if err != nil {
		return store.StateUninitialized, fmt.Errorf("failed to check schema_migrations table: %w", err)
	}

	if count == 0 {
		return store.StateUninitialized, nil
	}

	version, err := s.GetSchemaVersion()
	if err != nil {
		return store.StateUninitialized, fmt.Errorf("failed to get schema version: %w", err)
	}

	if version != s.expectedSchema {
		return store.StateVersionMismatch, nil
	}

	return store.StateReady, nil
}

// GetSchemaVersion returns the current schema version from the database.
func (s *SQLiteStore) GetSchemaVersion() (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("database not opened")
	}

	var version string
	err := s.db.QueryRow(`SELECT version FROM schema_migrations ORDER BY applied_at DESC LIMIT 1`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query schema version: %w", err)
	}

	return version, nil
}

// Settings returns the preference record for a namespace.
// The store must be opened and its schema initialized.
func (s *SQLiteStore) Settings(namespace string) *Settings {
	return &Settings{db: s.db, namespace: namespace, log: s.log}
}
