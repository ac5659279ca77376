package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when a uniqueness constraint is violated,
	// e.g. rating a pickup that already has a rating.
	ErrDuplicate = errors.New("entity already exists")
)
