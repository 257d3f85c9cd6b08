package permission

import "testing"

func TestAllowsConcreteScenarios(t *testing.T) {
	t.Parallel()

	table := DefaultTable()
	tests := []struct {
		role       string
		capability Capability
		want       bool
	}{
		{role: "viewer", capability: CanManageCampaigns, want: false},
		{role: "admin", capability: CanManageCampaigns, want: true},
		{role: "admin", capability: CanManageAccounts, want: false},
		{role: "super_admin", capability: CanManageAccounts, want: true},
		{role: "manager", capability: CanDelete, want: false},
		{role: "viewer", capability: CanViewAnalytics, want: true},
	}
	for _, tc := range tests {
		if got := table.Allows(tc.role, tc.capability); got != tc.want {
			t.Fatalf("Allows(%q, %q) = %t, want %t", tc.role, tc.capability, got, tc.want)
		}
	}
}

func TestAllowsOnlyExplicitGrants(t *testing.T) {
	t.Parallel()

	grants := DefaultGrants()
	table := NewTable(grants)
	for _, role := range Roles() {
		granted := make(map[Capability]bool)
		for _, capability := range grants[role] {
			granted[capability] = true
		}
		for _, capability := range Capabilities() {
			if got := table.Allows(string(role), capability); got != granted[capability] {
				t.Fatalf("Allows(%q, %q) = %t, want %t", role, capability, got, granted[capability])
			}
		}
	}
}

func TestAllowsUnknownRoleIsAlwaysFalse(t *testing.T) {
	t.Parallel()

	table := DefaultTable()
	for _, role := range []string{"", "owner", "SUPER_ADMIN", "super-admin", "root", " super_admin ", "admin\n", "\tviewer", "Admin"} {
		for _, capability := range Capabilities() {
			if table.Allows(role, capability) {
				t.Fatalf("Allows(%q, %q) = true, want false", role, capability)
			}
		}
	}
}

func TestAllowsUnknownCapabilityIsFalse(t *testing.T) {
	t.Parallel()

	if DefaultTable().Allows("super_admin", Capability("canLaunchRockets")) {
		t.Fatalf("expected unknown capability to be denied")
	}
}

func TestAllowsIsIdempotent(t *testing.T) {
	t.Parallel()

	table := DefaultTable()
	for _, role := range Roles() {
		for _, capability := range Capabilities() {
			first := table.Allows(string(role), capability)
			second := table.Allows(string(role), capability)
			if first != second {
				t.Fatalf("Allows(%q, %q) changed between calls", role, capability)
			}
		}
	}
}

func TestNilTableDenies(t *testing.T) {
	t.Parallel()

	var table *Table
	if table.Allows("super_admin", CanCreate) {
		t.Fatalf("expected nil table to deny")
	}
}

func TestNewTableCopiesGrants(t *testing.T) {
	t.Parallel()

	grants := Grants{RoleViewer: {CanViewAnalytics}}
	table := NewTable(grants)
	grants[RoleViewer] = append(grants[RoleViewer], CanDelete)
	grants[RoleManager] = []Capability{CanDelete}

	if table.Allows("viewer", CanDelete) || table.Allows("manager", CanDelete) {
		t.Fatalf("expected table to be unaffected by later grant changes")
	}
	if !table.Allows("viewer", CanViewAnalytics) {
		t.Fatalf("expected original grant to survive")
	}
}

func TestNewTableIgnoresUnknownEntries(t *testing.T) {
	t.Parallel()

	table := NewTable(Grants{
		Role("owner"):  {CanCreate},
		RoleViewer:     {Capability("canFly"), CanExportData},
		RoleSuperAdmin: nil,
	})
	if table.Allows("owner", CanCreate) {
		t.Fatalf("expected unknown role grant to be dropped")
	}
	if !table.Allows("viewer", CanExportData) {
		t.Fatalf("expected known capability grant to be kept")
	}
	if got := table.Granted("super_admin"); len(got) != 0 {
		t.Fatalf("Granted(super_admin) = %v, want none", got)
	}
}

func TestCheckerPredicatesMatchTable(t *testing.T) {
	t.Parallel()

	table := DefaultTable()
	for _, role := range append(Roles(), Role("intruder")) {
		checker := table.For(string(role))
		predicates := map[Capability]func() bool{
			CanCreate:           checker.CanCreate,
			CanUpdate:           checker.CanUpdate,
			CanDelete:           checker.CanDelete,
			CanViewUsers:        checker.CanViewUsers,
			CanManageCampaigns:  checker.CanManageCampaigns,
			CanManageSurveys:    checker.CanManageSurveys,
			CanManageContacts:   checker.CanManageContacts,
			CanManageAccounts:   checker.CanManageAccounts,
			CanViewAnalytics:    checker.CanViewAnalytics,
			CanExportData:       checker.CanExportData,
			CanExecuteCampaigns: checker.CanExecuteCampaigns,
		}
		if len(predicates) != len(Capabilities()) {
			t.Fatalf("predicate count = %d, want %d", len(predicates), len(Capabilities()))
		}
		for capability, predicate := range predicates {
			if got, want := predicate(), table.Allows(string(role), capability); got != want {
				t.Fatalf("%s %s() = %t, want %t", role, capability, got, want)
			}
		}
	}
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	if role, ok := ParseRole("manager"); !ok || role != RoleManager {
		t.Fatalf("ParseRole(manager) = (%q, %t), want (%q, true)", role, ok, RoleManager)
	}
	if role, ok := ParseRole(" manager "); ok || role != "" {
		t.Fatalf("ParseRole(\" manager \") = (%q, %t), want (\"\", false)", role, ok)
	}
	if role, ok := ParseRole("Manager"); ok || role != "" {
		t.Fatalf("ParseRole(Manager) = (%q, %t), want (\"\", false)", role, ok)
	}
}

func TestParseCapability(t *testing.T) {
	t.Parallel()

	for _, capability := range Capabilities() {
		if got, ok := ParseCapability(string(capability)); !ok || got != capability {
			t.Fatalf("ParseCapability(%q) = (%q, %t)", capability, got, ok)
		}
	}
	if _, ok := ParseCapability("canEverything"); ok {
		t.Fatalf("expected unknown capability to fail parsing")
	}
}

func TestEveryRoleHasAnEntry(t *testing.T) {
	t.Parallel()

	table := NewTable(nil)
	for _, role := range Roles() {
		if _, ok := table.grants[role]; !ok {
			t.Fatalf("role %q missing from table", role)
		}
	}
}

func TestCheckerKnown(t *testing.T) {
	t.Parallel()

	table := DefaultTable()
	for _, role := range Roles() {
		if !table.For(string(role)).Known() {
			t.Fatalf("For(%q).Known() = false, want true", role)
		}
	}
	for _, role := range []string{"", "owner", " admin"} {
		if table.For(role).Known() {
			t.Fatalf("For(%q).Known() = true, want false", role)
		}
	}
}
