package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"questlog/internal/domain"
)

// Fixed XP grants. Task completions and reflections award constants; there is
// no scoring.
const (
	taskXP       = 30
	reflectionXP = 20
)

// TaskService applies XP awards under the one-completion-per-category-per-day
// rule. Mutations for a single username are serialized, so concurrent
// requests cannot overwrite each other's XP or bypass a daily lock.
type TaskService struct {
	repo  domain.UserRepository
	start time.Time

	mu    sync.Mutex
	users map[string]*sync.Mutex
}

// NewTaskService creates a TaskService backed by the given repository.
func NewTaskService(repo domain.UserRepository, start time.Time) *TaskService {
	return &TaskService{
		repo:  repo,
		start: start,
		users: make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex serializing mutations for one username.
func (s *TaskService) userLock(username string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.users[username]
	if !ok {
		m = &sync.Mutex{}
		s.users[username] = m
	}
	return m
}

// TaskResult reports the profile counters after a successful award.
type TaskResult struct {
	Status   string `json:"status"`
	NewXP    int    `json:"new_xp"`
	NewLevel int    `json:"new_level"`
}

// CompleteTask awards the fixed task XP for one category, at most once per
// category per day. The day is the progression date, clamped to the campaign
// start. Nothing is persisted when the award is rejected.
func (s *TaskService) CompleteTask(ctx context.Context, username string, action domain.ActionType, now time.Time) (*TaskResult, error) {
	if !action.Trackable() {
		return nil, ErrInvalidAction
	}

	lock := s.userLock(username)
	lock.Lock()
	defer lock.Unlock()

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	today := domain.CalcProgression(now, s.start).DateStr
	if domain.EvaluateLocks(user.Logs, user.Reflections, today).Locked(action) {
		return nil, ErrTaskAlreadyCompleted
	}

	user.AwardXP(taskXP)
	user.Logs = append(user.Logs, domain.LogEntry{
		Date:       today,
		ActionType: action,
		XP:         taskXP,
		Note:       fmt.Sprintf("Completed %s", action),
	})

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return &TaskResult{Status: "success", NewXP: user.XP, NewLevel: user.Level}, nil
}

// SubmitReflection stores the reflection and awards the fixed bonus XP.
// Reflections carry the date the client submitted and are never gated by a
// daily lock.
func (s *TaskService) SubmitReflection(ctx context.Context, username string, entry domain.ReflectionEntry) error {
	lock := s.userLock(username)
	lock.Lock()
	defer lock.Unlock()

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	user.Reflections = append(user.Reflections, entry)
	user.AwardXP(reflectionXP)
	user.Logs = append(user.Logs, domain.LogEntry{
		Date:       entry.Date,
		ActionType: domain.ActionReflection,
		XP:         reflectionXP,
		Note:       "Daily Reflection Submitted",
	})

	return s.repo.Save(ctx, user)
}
