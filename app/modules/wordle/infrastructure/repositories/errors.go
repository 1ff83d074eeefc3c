package wordledb

import "errors"

var (
	// ErrNotFound indicates the requested outcome does not exist.
	ErrNotFound = errors.New("outcome not found")
	// ErrNoOutcomes is returned by GetGlobalBounds on an empty table.
	ErrNoOutcomes = errors.New("no outcomes recorded")
)
