package permission

// Roles match identity.Kind strings.
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// Resources and actions referenced by route guards.
const (
	ResourceCommand  = "command"
	ResourceBan      = "ban"
	ResourceSettings = "settings"
	ResourceAdmins   = "panel_admins"
	ResourceLicense  = "license"

	ActionPush   = "push"
	ActionLift   = "lift"
	ActionRead   = "read"
	ActionWrite  = "write"
	ActionManage = "manage"
	ActionToggle = "toggle"
)

// DefaultPolicies grants delegated admins the day-to-day moderation
// operations and reserves account management for owners.
func DefaultPolicies() [][]string {
	shared := [][]string{
		{ResourceCommand, ActionPush},
		{ResourceBan, ActionLift},
		{ResourceSettings, ActionRead},
		{ResourceSettings, ActionWrite},
	}
	ownerOnly := [][]string{
		{ResourceAdmins, ActionManage},
		{ResourceLicense, ActionRead},
		{ResourceLicense, ActionToggle},
	}

	policies := make([][]string, 0, 2*len(shared)+len(ownerOnly))
	for _, p := range shared {
		policies = append(policies, []string{RoleOwner, p[0], p[1]}, []string{RoleAdmin, p[0], p[1]})
	}
	for _, p := range ownerOnly {
		policies = append(policies, []string{RoleOwner, p[0], p[1]})
	}
	return policies
}
