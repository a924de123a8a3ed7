package store

import "fmt"

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = fmt.Errorf("not found")

// ErrConflict is returned when a unique constraint is violated, e.g. linking
// the same model to an agent twice.
var ErrConflict = fmt.Errorf("conflict")
