package store

import "errors"

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write would break a rule about dependent
// rows, such as deleting a phase that still has tasks.
var ErrConflict = errors.New("conflict")
