// Package common defines shared constants and sentinel errors used across
// the storefront client packages. Callers should use errors.Is to match them.
package common

import "errors"

var (
	// Session errors.
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrorValidation = errors.New("validation error")
)
