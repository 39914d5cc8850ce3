package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/internal/shared/logger"
)

func TestEnforcer(t *testing.T) {
	e, err := NewEnforcer(logger.NewNopLogger())
	require.NoError(t, err)

	tests := []struct {
		role, resource, action string
		want                   bool
	}{
		{RoleOwner, ResourceCommand, ActionPush, true},
		{RoleAdmin, ResourceCommand, ActionPush, true},
		{RoleAdmin, ResourceBan, ActionLift, true},
		{RoleAdmin, ResourceSettings, ActionWrite, true},
		{RoleOwner, ResourceAdmins, ActionManage, true},
		{RoleAdmin, ResourceAdmins, ActionManage, false},
		{RoleAdmin, ResourceLicense, ActionToggle, false},
		{"unresolved", ResourceCommand, ActionPush, false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.resource+"/"+tt.action, func(t *testing.T) {
			ok, err := e.Enforce(tt.role, tt.resource, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
