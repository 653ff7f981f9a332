package service

import (
	"errors"
)

// Outcome taxonomy for the service layer. Unauthorized and NotFound are
// distinct outcomes and are never conflated here; whether an HTTP layer
// chooses to render both as 404 is its own decision. Storage failures that
// match none of these propagate unmodified.
var (
	// ErrUnauthorized means the policy denied the action for this caller.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound means no visible, non-removed record matched. A mutation
	// against a soft-deleted record surfaces identically to one against a
	// record that never existed.
	ErrNotFound = errors.New("not found")

	// ErrValidation means the input was malformed.
	ErrValidation = errors.New("validation failed")

	// ErrAuthFailed means login credentials were rejected. Unknown login and
	// wrong password are deliberately indistinguishable.
	ErrAuthFailed = errors.New("invalid credentials")
)
