package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/explorer/internal/shared"
)

// Store is a string key/value store standing in for browser local storage.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(keys ...string) error
}

// MemoryStore keeps values for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Remove(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

// FileStore persists values as a flat TOML table.
//
// The file is created with mode 0600 since it holds a bearer token.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store at path; a leading ~/ is expanded.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: shared.ExpandHome(path)}
}

// Path returns the expanded file location.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value
	return f.write(values)
}

func (f *FileStore) Remove(keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(values, k)
	}
	return f.write(values)
}

func (f *FileStore) read() (map[string]string, error) {
	values := map[string]string{}
	if _, err := toml.DecodeFile(f.path, &values); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("failed to read storage file: %w", err)
	}
	return values, nil
}

func (f *FileStore) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open storage file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(values); err != nil {
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	return nil
}

// SQLStore persists values in the local_storage table.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore returns a store over db. Run [shared.RunMigrations] first.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM local_storage WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query storage: %w", err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(key, value string) error {
	query := `
		INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *SQLStore) Remove(keys ...string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, k := range keys {
		if _, err := tx.Exec(`DELETE FROM local_storage WHERE key = ?`, k); err != nil {
			return fmt.Errorf("failed to delete %s: %w", k, err)
		}
	}
	return tx.Commit()
}

// OpenStore builds the store selected by the storage config. db is only used by the sqlite driver.
func OpenStore(cfg shared.StorageConfig, db *sql.DB) (Store, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case "file", "":
		path := cfg.Path
		if path == "" {
			dir, err := shared.HomeDir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, "storage.toml")
		}
		return NewFileStore(path), nil
	case "sqlite":
		if db == nil {
			return nil, fmt.Errorf("%w: sqlite storage needs a database", shared.ErrInvalidConfig)
		}
		return NewSQLStore(db), nil
	}
	return nil, fmt.Errorf("%w: unknown storage driver %q", shared.ErrInvalidConfig, cfg.Driver)
}
