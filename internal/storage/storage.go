package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"vocabdeck/internal/database"
)

// Store is the persistence collaborator: a flat key-value interface.
// Get returns ok=false when the key is absent.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// SQLStore persists key-value pairs in the app_state table
type SQLStore struct {
	db *database.DB
}

// NewSQLStore creates a store backed by the given database connection
func NewSQLStore(db *database.DB) (*SQLStore, error) {
	if err := db.EnsureSchema(); err != nil {
		return nil, err
	}
	return &SQLStore{db: db}, nil
}

// Get reads the value stored under key
func (s *SQLStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(s.db.Dialect.GetStateQuery(), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read state %q: %w", key, err)
	}
	return value, true, nil
}

// Set writes value under key, replacing any previous value
func (s *SQLStore) Set(key, value string) error {
	if _, err := s.db.Exec(s.db.Dialect.UpsertStateQuery(), key, value); err != nil {
		return fmt.Errorf("failed to write state %q: %w", key, err)
	}
	return nil
}

// Remove deletes the value stored under key; missing keys are a no-op
func (s *SQLStore) Remove(key string) error {
	if _, err := s.db.Exec(s.db.Dialect.DeleteStateQuery(), key); err != nil {
		return fmt.Errorf("failed to remove state %q: %w", key, err)
	}
	return nil
}

// MemoryStore is a map-backed Store. It is the fallback when the database
// cannot be opened (the app then runs memory-only for the session) and the
// default store in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
