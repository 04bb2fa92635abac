package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestCheckPermission(t *testing.T) {
	owner := &models.User{ID: 1, Username: "owner"}
	other := &models.User{ID: 2, Username: "other"}
	admin := &models.User{ID: 3, Username: "admin", Superuser: true}
	disabled := &models.User{ID: 4, Username: "disabled", Disabled: true}
	disabledAdmin := &models.User{ID: 5, Username: "disabled-admin", Superuser: true, Disabled: true}

	tests := []struct {
		name          string
		actor         *models.User
		ownerID       *int64
		adminRequired bool
		wantErr       error
	}{
		{"nil actor", nil, nil, false, apperr.ErrUnauthenticated},
		{"owner on own resource", owner, int64Ptr(1), false, nil},
		{"non-owner on resource", other, int64Ptr(1), false, apperr.ErrForbidden},
		{"admin on anyone's resource", admin, int64Ptr(1), false, nil},
		{"admin required, regular actor", other, nil, true, apperr.ErrForbidden},
		{"admin required, admin actor", admin, nil, true, nil},
		{"disabled actor", disabled, int64Ptr(4), false, apperr.ErrUnauthenticated},
		{"disabled admin", disabledAdmin, nil, true, apperr.ErrUnauthenticated},
		{"no owner, authenticated actor", other, nil, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPermission(tt.actor, tt.ownerID, tt.adminRequired)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// The admin gate is evaluated before the disabled gate, so a disabled regular
// actor asking for an admin operation gets a 403-class error, not 401.
func TestCheckPermission_AdminGateBeforeDisabled(t *testing.T) {
	disabled := &models.User{ID: 7, Disabled: true}
	err := CheckPermission(disabled, nil, true)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}
