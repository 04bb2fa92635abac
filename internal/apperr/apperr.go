package apperr

import "errors"

// Sentinel errors for the request-terminal failure categories. Services wrap
// them with context via fmt.Errorf("%w: ...") and handlers match with errors.Is
// to pick a status code.
var (
	// ErrUnauthenticated covers missing/invalid/expired tokens, unknown
	// subjects and disabled accounts presenting credentials.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means authenticated but not allowed: not owner, not admin,
	// or self-deletion.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict is a uniqueness violation, e.g. duplicate username.
	ErrConflict = errors.New("conflict")
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation is malformed input, e.g. mismatched password confirmation.
	ErrValidation = errors.New("validation failed")
)
