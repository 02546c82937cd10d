// Package store provides SQLite-backed persistence for extracted catalogs.
// The database lives at .tscat/catalog.db and holds one row per cataloged
// file plus one row per declaration record, so downstream consumers can
// query across a whole repository without re-parsing.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store manages the .tscat/catalog.db database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open opens or creates the catalog database under the given .tscat
// directory. The directory is created if missing and the schema is
// initialized on first open.
func Open(tscatDir string) (*Store, error) {
	if err := os.MkdirAll(tscatDir, 0755); err != nil {
		return nil, fmt.Errorf("create .tscat directory: %w", err)
	}

	dbPath := filepath.Join(tscatDir, "catalog.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}

	// WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	store := &Store{db: db, dbPath: dbPath}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// OpenDefault opens the store in the .tscat directory of the current
// working directory.
func OpenDefault() (*Store, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return Open(filepath.Join(cwd, ".tscat"))
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying database connection for advanced operations.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(schemaSQL)
	if err != nil {
		return fmt.Errorf("exec schema: %w", err)
	}
	return nil
}
