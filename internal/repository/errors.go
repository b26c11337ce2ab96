// Package repository contains the data access layer for persisted events.
// These sentinel values allow higher layers such as handlers to distinguish
// between failure scenarios without inspecting driver-specific errors.
package repository

import "errors"

// ErrEventNotFound is returned when no event row matches the given id.
// Handlers should translate this into an HTTP 404 response.
var ErrEventNotFound = errors.New("event not found")

// ErrConflict is returned when a write collides with existing state, such
// as saving an event whose custom URL is already taken by a different
// event. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
