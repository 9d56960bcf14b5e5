package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced record does not exist
	ErrNotFound = errors.New("resource not found")
	// ErrLockConflict is returned when a resume already has a locked evaluation
	ErrLockConflict = errors.New("evaluation already locked")
	// ErrTransitionConflict is returned when a concurrent status write lost
	// the race and should be retried by the caller
	ErrTransitionConflict = errors.New("concurrent status transition")
)
