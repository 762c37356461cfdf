package models

import "errors"

// Store-level errors. Underlying driver detail is wrapped around these at the
// storage layer and logged there; it never crosses the service boundary.
var (
	ErrStoreUnavailable = errors.New("patient store unavailable")
	ErrConstraint       = errors.New("patient record violates a constraint")
)

// Service-level errors returned to callers. Deliberately generic: the cause is
// logged where it occurs, not exposed at the presentation boundary.
var (
	ErrRegistration = errors.New("failed to register patient")
	ErrQuery        = errors.New("failed to load patients")
)
