package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"questlog/internal/domain"
)

// Ensure the interface is met.
var _ domain.UserRepository = (*DB)(nil)

// GetByUsername assembles the full profile, or returns nil when unknown.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.UserProfile, error) {
	u := &domain.UserProfile{
		Username:    username,
		Logs:        []domain.LogEntry{},
		Reflections: []domain.ReflectionEntry{},
	}
	err := d.sql.QueryRowContext(ctx,
		"SELECT level, xp, xp_limit FROM users WHERE username=?;", username,
	).Scan(&u.Level, &u.XP, &u.XPLimit)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := d.sql.QueryContext(ctx,
		"SELECT date, action_type, xp, note FROM logs WHERE username=? ORDER BY seq;", username)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck
	for rows.Next() {
		var e domain.LogEntry
		if err := rows.Scan(&e.Date, &e.ActionType, &e.XP, &e.Note); err != nil {
			return nil, err
		}
		u.Logs = append(u.Logs, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refRows, err := d.sql.QueryContext(ctx,
		"SELECT date, academic_topic, skill_topic, user_notes FROM reflections WHERE username=? ORDER BY seq;", username)
	if err != nil {
		return nil, err
	}
	defer refRows.Close() //nolint:errcheck
	for refRows.Next() {
		var r domain.ReflectionEntry
		if err := refRows.Scan(&r.Date, &r.AcademicTopic, &r.SkillTopic, &r.UserNotes); err != nil {
			return nil, err
		}
		u.Reflections = append(u.Reflections, r)
	}
	return u, refRows.Err()
}

// Create inserts a new profile with whatever history it was posted with.
func (d *DB) Create(ctx context.Context, profile *domain.UserProfile) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO users(username, level, xp, xp_limit) VALUES(?, ?, ?, ?);",
		profile.Username, profile.Level, profile.XP, profile.XPLimit,
	); err != nil {
		return err
	}
	if err := appendHistory(ctx, tx, profile, 0, 0); err != nil {
		return err
	}
	return tx.Commit()
}

// Save updates the counters and appends any new history rows, atomically.
func (d *DB) Save(ctx context.Context, profile *domain.UserProfile) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		"UPDATE users SET level=?, xp=?, xp_limit=? WHERE username=?;",
		profile.Level, profile.XP, profile.XPLimit, profile.Username,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("user %q does not exist", profile.Username)
	}

	var haveLogs, haveRefs int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM logs WHERE username=?;", profile.Username,
	).Scan(&haveLogs); err != nil {
		return err
	}
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reflections WHERE username=?;", profile.Username,
	).Scan(&haveRefs); err != nil {
		return err
	}

	if err := appendHistory(ctx, tx, profile, haveLogs, haveRefs); err != nil {
		return err
	}
	return tx.Commit()
}

func appendHistory(ctx context.Context, tx *sql.Tx, profile *domain.UserProfile, logsFrom, refsFrom int) error {
	for i := logsFrom; i < len(profile.Logs); i++ {
		e := profile.Logs[i]
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO logs(username, seq, date, action_type, xp, note) VALUES(?, ?, ?, ?, ?, ?);",
			profile.Username, i, e.Date, e.ActionType, e.XP, e.Note,
		); err != nil {
			return err
		}
	}
	for i := refsFrom; i < len(profile.Reflections); i++ {
		r := profile.Reflections[i]
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO reflections(username, seq, date, academic_topic, skill_topic, user_notes) VALUES(?, ?, ?, ?, ?, ?);",
			profile.Username, i, r.Date, r.AcademicTopic, r.SkillTopic, r.UserNotes,
		); err != nil {
			return err
		}
	}
	return nil
}
