package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint (phone hash, confirmed booking per ride, rating triple).
	ErrDuplicate = errors.New("duplicate entity")
)
