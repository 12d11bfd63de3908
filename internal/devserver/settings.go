package devserver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"quickbar/internal/domain"
)

// SettingsStore keeps the settings record in a TOML file. The record is
// stored as given; typing is the client's concern.
type SettingsStore struct {
	mu   sync.Mutex
	path string
}

// NewSettingsStore creates a store backed by path
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// Load returns the stored record, or an empty record when nothing was saved
func (s *SettingsStore) Load() (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	rec := domain.Record{}
	if err := toml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return rec, nil
}

// Save replaces the stored record
func (s *SettingsStore) Save(rec domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	data, err := toml.Marshal(map[string]any(rec))
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// MaxResults reads the result bound from the stored record
func (s *SettingsStore) MaxResults() int {
	rec, err := s.Load()
	if err != nil {
		return domain.DefaultSettings().MaxResults
	}
	n, err := domain.ToInt(rec[domain.KeyMaxResults])
	if err != nil || n <= 0 {
		return domain.DefaultSettings().MaxResults
	}
	return n
}
