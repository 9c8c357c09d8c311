// Package domain contains the core business entities and interfaces.
package domain

import "context"

// ActionType identifies a daily action category.
type ActionType string

// The four action categories a user can complete.
const (
	ActionAcademic   ActionType = "academic"
	ActionSkill      ActionType = "skill"
	ActionWorkout    ActionType = "workout"
	ActionReflection ActionType = "reflection"
)

// Valid reports whether t is one of the known action categories.
func (t ActionType) Valid() bool {
	switch t {
	case ActionAcademic, ActionSkill, ActionWorkout, ActionReflection:
		return true
	}
	return false
}

// Trackable reports whether t can be completed through the task flow.
// Reflections have their own submission flow.
func (t ActionType) Trackable() bool {
	switch t {
	case ActionAcademic, ActionSkill, ActionWorkout:
		return true
	}
	return false
}

// LogEntry records a single completed action. Entries are append-only and
// never edited.
type LogEntry struct {
	Date       string     `json:"date"`
	ActionType ActionType `json:"action_type"`
	XP         int        `json:"xp"`
	Note       string     `json:"note"`
}

// ReflectionEntry stores a user's written daily reflection.
type ReflectionEntry struct {
	Date          string `json:"date"`
	AcademicTopic string `json:"academic_topic"`
	SkillTopic    string `json:"skill_topic"`
	UserNotes     string `json:"user_notes"`
}

// UserProfile is the persistent record for a single user, keyed by username.
type UserProfile struct {
	Username    string            `json:"username"`
	Level       int               `json:"level"`
	XP          int               `json:"xp"`
	XPLimit     int               `json:"xp_limit"`
	Logs        []LogEntry        `json:"logs"`
	Reflections []ReflectionEntry `json:"reflections"`
}

// ApplyDefaults fills the zero fields a freshly posted profile leaves empty.
func (u *UserProfile) ApplyDefaults() {
	if u.Level < 1 {
		u.Level = 1
	}
	if u.XP < 0 {
		u.XP = 0
	}
	if u.XPLimit <= 0 {
		u.XPLimit = 100
	}
	if u.Logs == nil {
		u.Logs = []LogEntry{}
	}
	if u.Reflections == nil {
		u.Reflections = []ReflectionEntry{}
	}
}

// AwardXP adds amount and settles any level-ups. Settling loops, so a grant
// crossing more than one threshold still leaves xp below xp_limit.
func (u *UserProfile) AwardXP(amount int) {
	u.XP += amount
	for u.XP >= u.XPLimit {
		u.Level++
		u.XP -= u.XPLimit
		u.XPLimit = u.XPLimit * 3 / 2
	}
}

// UserRepository is the port for user profile persistence.
type UserRepository interface {
	// GetByUsername returns the stored profile, or nil when the user is unknown.
	GetByUsername(ctx context.Context, username string) (*UserProfile, error)
	// Create stores a new profile. It fails if the username is taken.
	Create(ctx context.Context, profile *UserProfile) error
	// Save persists the profile's counters and any newly appended logs or
	// reflections. History rows already stored are never rewritten.
	Save(ctx context.Context, profile *UserProfile) error
}
