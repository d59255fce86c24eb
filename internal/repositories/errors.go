package repositories

import "errors"

// ErrNotFound is returned when a lookup by key or id matches nothing.
var ErrNotFound = errors.New("record not found")
