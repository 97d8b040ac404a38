package database

import "errors"

// ErrVersionConflict is returned when a conditional update matches no document
// because the stored version (or another guard in the filter) has moved on.
var ErrVersionConflict = errors.New("document was modified concurrently")

// ErrDuplicate is returned when an insert violates a unique index.
var ErrDuplicate = errors.New("document already exists")
