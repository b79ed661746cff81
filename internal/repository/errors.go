// Package repository holds the in-memory seat collection and the
// sentinel errors shared by its callers. Handlers translate these into
// HTTP responses.
package repository

import "errors"

// ErrSeatNotFound is returned when a seat lookup yields no seat.
// Handlers should translate this into an HTTP 404 response.
var ErrSeatNotFound = errors.New("seat not found")
