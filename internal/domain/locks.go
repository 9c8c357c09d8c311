package domain

// DayLocks reports which action categories are already completed for one
// calendar day.
type DayLocks struct {
	Academic   bool `json:"academic"`
	Skill      bool `json:"skill"`
	Workout    bool `json:"workout"`
	Reflection bool `json:"reflection"`
}

// EvaluateLocks scans the full history for entries on day. The reflection
// lock is checked against the reflection list itself, not against the
// synthetic reflection log entries.
func EvaluateLocks(logs []LogEntry, reflections []ReflectionEntry, day string) DayLocks {
	var l DayLocks
	for _, e := range logs {
		if e.Date != day {
			continue
		}
		switch e.ActionType {
		case ActionAcademic:
			l.Academic = true
		case ActionSkill:
			l.Skill = true
		case ActionWorkout:
			l.Workout = true
		}
	}
	for _, r := range reflections {
		if r.Date == day {
			l.Reflection = true
			break
		}
	}
	return l
}

// Locked reports whether the given category is already completed.
func (l DayLocks) Locked(t ActionType) bool {
	switch t {
	case ActionAcademic:
		return l.Academic
	case ActionSkill:
		return l.Skill
	case ActionWorkout:
		return l.Workout
	case ActionReflection:
		return l.Reflection
	}
	return false
}
