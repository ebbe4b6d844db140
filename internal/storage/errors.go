package storage

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned by CompareAndSwap when the stored version no longer
// matches the expected one.
var ErrConflict = errors.New("version conflict")
