package store

import "errors"

var (
	// ErrNotFound is returned when no record exists for the given key
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateLead is returned when a newsletter subscription already exists for the email
	ErrDuplicateLead = errors.New("lead already exists")
	// ErrDuplicateToken is returned when a report snapshot with the same token already exists
	ErrDuplicateToken = errors.New("report token already exists")
	// ErrMissingDatabaseURL is returned when no database URL is configured
	ErrMissingDatabaseURL = errors.New("database URL is required")
	// ErrMigrationFailed is returned when schema migrations cannot be applied
	ErrMigrationFailed = errors.New("database migration failed")
)
