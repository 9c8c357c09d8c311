// Package jsonfile persists user profiles in the legacy single-document
// format: one JSON object keyed by username, rewritten in full on every
// mutation. It exists for drop-in compatibility with data files produced by
// earlier deployments.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"questlog/internal/domain"
)

// Store is a file-backed user repository.
type Store struct {
	mu   sync.Mutex
	path string
}

// New creates a Store persisting to path. The file is created lazily on the
// first write.
func New(path string) *Store {
	return &Store{path: path}
}

// Ensure the interface is met.
var _ domain.UserRepository = (*Store)(nil)

// GetByUsername returns the stored profile, or nil when unknown.
func (s *Store) GetByUsername(ctx context.Context, username string) (*domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return nil, err
	}
	return users[username], nil
}

// Create stores a new profile.
func (s *Store) Create(ctx context.Context, profile *domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := users[profile.Username]; ok {
		return errors.New("user already exists")
	}
	users[profile.Username] = profile
	return s.save(users)
}

// Save replaces the stored profile for an existing user.
func (s *Store) Save(ctx context.Context, profile *domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := users[profile.Username]; !ok {
		return errors.New("user does not exist")
	}
	users[profile.Username] = profile
	return s.save(users)
}

func (s *Store) load() (map[string]*domain.UserProfile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]*domain.UserProfile{}, nil
	}
	if err != nil {
		return nil, err
	}

	users := map[string]*domain.UserProfile{}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return users, nil
}

func (s *Store) save(users map[string]*domain.UserProfile) error {
	// Four-space indentation matches the documents older deployments wrote.
	data, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
