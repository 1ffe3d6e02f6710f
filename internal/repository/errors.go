// Package repository defines error values that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// workflow services to distinguish between different failure scenarios
// without string matching. For example, ErrNotFound indicates that a
// requested row does not exist, while ErrDuplicate signals that an
// insert collided with a uniqueness constraint (e.g. registering a
// login handle twice).
package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row. It normalizes
// sql.ErrNoRows so callers outside this package never depend on
// database/sql directly.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness
// constraint, such as an already registered email/phone handle.
var ErrDuplicate = errors.New("duplicate entry")
