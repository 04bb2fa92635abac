package service

import (
	"fmt"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

// CheckPermission is the single authorization decision point. Every mutating
// operation goes through it before touching a resource.
//
// Order of checks: admin gate, disabled gate, superuser bypass, ownership.
// A disabled actor is an authentication failure, not an authorization one.
func CheckPermission(actor *models.User, ownerID *int64, adminRequired bool) error {
	if actor == nil {
		return fmt.Errorf("%w: no authenticated user", apperr.ErrUnauthenticated)
	}
	if adminRequired && !actor.Superuser {
		return fmt.Errorf("%w: admin required", apperr.ErrForbidden)
	}
	if actor.Disabled {
		return fmt.Errorf("%w: account disabled", apperr.ErrUnauthenticated)
	}
	if actor.Superuser {
		return nil
	}
	if ownerID == nil {
		return nil
	}
	if actor.ID == *ownerID {
		return nil
	}
	return fmt.Errorf("%w: not the resource owner", apperr.ErrForbidden)
}
