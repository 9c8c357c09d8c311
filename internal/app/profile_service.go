package app

import (
	"context"
	"strings"
	"time"

	"questlog/internal/domain"
)

// ProfileService handles login and dashboard assembly.
type ProfileService struct {
	repo  domain.UserRepository
	start time.Time
}

// NewProfileService creates a ProfileService backed by the given repository.
// start is the campaign start date progression is measured from.
func NewProfileService(repo domain.UserRepository, start time.Time) *ProfileService {
	return &ProfileService{repo: repo, start: start}
}

// Login returns the stored profile for the posted username, creating it with
// defaults on first sight. Logging in an existing user never resets anything.
func (s *ProfileService) Login(ctx context.Context, profile domain.UserProfile) (*domain.UserProfile, error) {
	profile.Username = strings.TrimSpace(profile.Username)
	if profile.Username == "" {
		return nil, ErrUsernameRequired
	}

	existing, err := s.repo.GetByUsername(ctx, profile.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	profile.ApplyDefaults()
	if err := s.repo.Create(ctx, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Dashboard bundles a stored profile with the progression snapshot and
// today's completion locks.
type Dashboard struct {
	User        *domain.UserProfile `json:"user"`
	Progression domain.Progression  `json:"progression"`
	Locks       domain.DayLocks     `json:"locks"`
}

// Dashboard assembles the dashboard view for username as of now. Locks are
// evaluated against the progression date, which is clamped to the campaign
// start, so both always agree on what "today" is.
func (s *ProfileService) Dashboard(ctx context.Context, username string, now time.Time) (*Dashboard, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	prog := domain.CalcProgression(now, s.start)
	locks := domain.EvaluateLocks(user.Logs, user.Reflections, prog.DateStr)
	return &Dashboard{User: user, Progression: prog, Locks: locks}, nil
}
