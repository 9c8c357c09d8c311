// Package app holds the application services and business logic.
package app

import "errors"

var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameRequired indicates a login request without a username.
	ErrUsernameRequired = errors.New("username is required")
	// ErrTaskAlreadyCompleted indicates the category is locked for today.
	ErrTaskAlreadyCompleted = errors.New("task already completed today")
	// ErrInvalidAction indicates an action type outside the task categories.
	ErrInvalidAction = errors.New("action_type must be academic, skill or workout")
)
