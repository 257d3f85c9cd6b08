// Package permission maps portal roles to the capabilities that gate UI
// actions.
//
// The lookup fails closed: a role outside the closed role set, or a
// capability a role was not explicitly granted, is always denied.
package permission

// Role identifies an authenticated identity class.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleViewer     Role = "viewer"
)

// Roles returns every known role, most privileged first.
func Roles() []Role {
	return []Role{RoleSuperAdmin, RoleAdmin, RoleManager, RoleViewer}
}

// ParseRole resolves raw into a known role. Matching is exact: padded or
// differently cased values are outside the role set and report false.
func ParseRole(raw string) (Role, bool) {
	role := Role(raw)
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleManager, RoleViewer:
		return role, true
	default:
		return "", false
	}
}

// Capability names a UI permission flag.
type Capability string

const (
	CanCreate           Capability = "canCreate"
	CanUpdate           Capability = "canUpdate"
	CanDelete           Capability = "canDelete"
	CanViewUsers        Capability = "canViewUsers"
	CanManageCampaigns  Capability = "canManageCampaigns"
	CanManageSurveys    Capability = "canManageSurveys"
	CanManageContacts   Capability = "canManageContacts"
	CanManageAccounts   Capability = "canManageAccounts"
	CanViewAnalytics    Capability = "canViewAnalytics"
	CanExportData       Capability = "canExportData"
	CanExecuteCampaigns Capability = "canExecuteCampaigns"
)

// Capabilities returns the closed capability set.
func Capabilities() []Capability {
	return []Capability{
		CanCreate,
		CanUpdate,
		CanDelete,
		CanViewUsers,
		CanManageCampaigns,
		CanManageSurveys,
		CanManageContacts,
		CanManageAccounts,
		CanViewAnalytics,
		CanExportData,
		CanExecuteCampaigns,
	}
}

// ParseCapability resolves raw into a known capability. Matching is exact.
func ParseCapability(raw string) (Capability, bool) {
	capability := Capability(raw)
	for _, known := range Capabilities() {
		if capability == known {
			return capability, true
		}
	}
	return "", false
}

// Grants lists the capabilities granted to each role.
type Grants map[Role][]Capability

// DefaultGrants returns the portal role grants.
func DefaultGrants() Grants {
	return Grants{
		RoleSuperAdmin: Capabilities(),
		RoleAdmin: {
			CanCreate,
			CanUpdate,
			CanDelete,
			CanViewUsers,
			CanManageCampaigns,
			CanManageSurveys,
			CanManageContacts,
			CanViewAnalytics,
			CanExportData,
			CanExecuteCampaigns,
		},
		RoleManager: {
			CanCreate,
			CanUpdate,
			CanManageCampaigns,
			CanManageSurveys,
			CanManageContacts,
			CanViewAnalytics,
			CanExportData,
		},
		RoleViewer: {
			CanViewAnalytics,
		},
	}
}
