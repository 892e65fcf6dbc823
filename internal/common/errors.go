// Package common defines sentinel errors shared across the gatekeeper
// server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (

	// repository specific errors
	ErrNotFound        = errors.New("not found")
	ErrVersionConflict = errors.New("version conflict")

	// validation / registration errors
	ErrValidation       = errors.New("validation error")
	ErrDuplicateAccount = errors.New("account already exists")

	// Wrong password, unknown email and locked account are deliberately
	// collapsed into one value so the caller cannot tell them apart.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// Token lifecycle errors. Distinguished internally for logging; both
	// map to the same unauthenticated response at the HTTP boundary.
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid token signature")

	// infrastructure errors
	ErrStoreUnavailable = errors.New("credential store unavailable")
	ErrInternal         = errors.New("internal error")
)
