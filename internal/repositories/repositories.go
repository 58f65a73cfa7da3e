// Package repositories contains the database access layer
package repositories

import "errors"

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

// ErrTokenMismatch is returned when a conditional refresh-token update matched no row,
// meaning the presented token is stale or was already rotated
var ErrTokenMismatch = errors.New("token mismatch")
