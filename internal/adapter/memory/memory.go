// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"errors"
	"sync"

	"questlog/internal/domain"
)

// DB implements in-memory user storage keyed by username.
type DB struct {
	mu    sync.Mutex
	users map[string]*domain.UserProfile
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{users: make(map[string]*domain.UserProfile)}
}

// Ensure the interface is met.
var _ domain.UserRepository = (*DB)(nil)

// GetByUsername returns a copy of the stored profile, or nil when unknown.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.UserProfile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	u, ok := db.users[username]
	if !ok {
		return nil, nil
	}
	return clone(u), nil
}

// Create stores a new profile.
func (db *DB) Create(ctx context.Context, profile *domain.UserProfile) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.users[profile.Username]; ok {
		return errors.New("user already exists")
	}
	db.users[profile.Username] = clone(profile)
	return nil
}

// Save replaces the stored profile for an existing user.
func (db *DB) Save(ctx context.Context, profile *domain.UserProfile) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.users[profile.Username]; !ok {
		return errors.New("user does not exist")
	}
	db.users[profile.Username] = clone(profile)
	return nil
}

// clone copies a profile so callers never share slices with the store.
func clone(u *domain.UserProfile) *domain.UserProfile {
	cp := *u
	cp.Logs = append([]domain.LogEntry{}, u.Logs...)
	cp.Reflections = append([]domain.ReflectionEntry{}, u.Reflections...)
	return &cp
}
