package database

import "errors"

var (
	// ErrDuplicateKey is returned when an insert violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrVersionConflict is returned when an optimistic write finds a newer version in the store.
	ErrVersionConflict = errors.New("version conflict")
)
