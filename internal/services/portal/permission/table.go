package permission

// Table is an immutable role to capability lookup. Build it once at startup
// and share the pointer; concurrent reads need no locking.
type Table struct {
	grants map[Role]map[Capability]bool
}

// NewTable copies grants into a new table. Every known role gets an entry,
// even when grants omits it, and unknown capabilities are dropped.
func NewTable(grants Grants) *Table {
	t := &Table{grants: make(map[Role]map[Capability]bool, len(Roles()))}
	for _, role := range Roles() {
		t.grants[role] = make(map[Capability]bool)
	}
	for role, capabilities := range grants {
		known, ok := ParseRole(string(role))
		if !ok {
			continue
		}
		for _, capability := range capabilities {
			if parsed, ok := ParseCapability(string(capability)); ok {
				t.grants[known][parsed] = true
			}
		}
	}
	return t
}

// DefaultTable builds the table from DefaultGrants.
func DefaultTable() *Table {
	return NewTable(DefaultGrants())
}

// Allows reports whether role may use capability. Unknown roles and
// capabilities are denied.
func (t *Table) Allows(role string, capability Capability) bool {
	if t == nil {
		return false
	}
	known, ok := ParseRole(role)
	if !ok {
		return false
	}
	return t.grants[known][capability]
}

// Granted returns the capabilities role holds, in Capabilities order.
func (t *Table) Granted(role string) []Capability {
	granted := make([]Capability, 0)
	for _, capability := range Capabilities() {
		if t.Allows(role, capability) {
			granted = append(granted, capability)
		}
	}
	return granted
}

// For binds role to the table for repeated checks in a view.
func (t *Table) For(role string) Checker {
	return Checker{table: t, role: role}
}

// Checker answers capability questions for one role.
type Checker struct {
	table *Table
	role  string
}

// Role returns the raw role the checker was built for.
func (c Checker) Role() string { return c.role }

// Known reports whether the bound role is in the role set.
func (c Checker) Known() bool {
	_, ok := ParseRole(c.role)
	return ok
}

// Can reports whether the bound role holds capability.
func (c Checker) Can(capability Capability) bool {
	return c.table.Allows(c.role, capability)
}

func (c Checker) CanCreate() bool           { return c.Can(CanCreate) }
func (c Checker) CanUpdate() bool           { return c.Can(CanUpdate) }
func (c Checker) CanDelete() bool           { return c.Can(CanDelete) }
func (c Checker) CanViewUsers() bool        { return c.Can(CanViewUsers) }
func (c Checker) CanManageCampaigns() bool  { return c.Can(CanManageCampaigns) }
func (c Checker) CanManageSurveys() bool    { return c.Can(CanManageSurveys) }
func (c Checker) CanManageContacts() bool   { return c.Can(CanManageContacts) }
func (c Checker) CanManageAccounts() bool   { return c.Can(CanManageAccounts) }
func (c Checker) CanViewAnalytics() bool    { return c.Can(CanViewAnalytics) }
func (c Checker) CanExportData() bool       { return c.Can(CanExportData) }
func (c Checker) CanExecuteCampaigns() bool { return c.Can(CanExecuteCampaigns) }
