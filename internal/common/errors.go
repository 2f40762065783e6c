// Package common defines sentinel errors and constants shared by the Evently
// client layers. Callers should match errors with errors.Is.
package common

import "errors"

var (
	// Lookup errors.
	ErrorNotFound = errors.New("not found")

	// Authorization errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Token errors (malformed or undecodable).
	ErrInvalidToken = errors.New("invalid token")

	// Validation errors.
	ErrorValidation = errors.New("validation error")
)
