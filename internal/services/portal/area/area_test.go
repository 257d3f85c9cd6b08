package area

import (
	"testing"

	"github.com/louisbranch/crmportal/internal/platform/filter"
	"github.com/louisbranch/crmportal/internal/services/portal/integration/crmapi"
	"github.com/louisbranch/crmportal/internal/services/portal/permission"
)

func TestEveryResourceHasAnArea(t *testing.T) {
	t.Parallel()

	for _, resource := range crmapi.Resources() {
		a, ok := Lookup(resource)
		if !ok {
			t.Fatalf("Lookup(%q) missing", resource)
		}
		if a.Path != "/portal/"+string(resource) {
			t.Fatalf("%s path = %q", resource, a.Path)
		}
		if len(a.Columns) == 0 || len(a.Fields) == 0 {
			t.Fatalf("%s has no columns or fields", resource)
		}
	}
	if _, ok := Lookup(crmapi.Resource("invoices")); ok {
		t.Fatalf("expected unknown resource lookup to fail")
	}
}

func TestVisibleHidesAccountsBelowSuperAdmin(t *testing.T) {
	t.Parallel()

	table := permission.DefaultTable()
	tests := []struct {
		role string
		want int
	}{
		{role: "super_admin", want: len(All())},
		{role: "admin", want: len(All()) - 1},
		{role: "viewer", want: len(All()) - 1},
		{role: "", want: 0},
		{role: "owner", want: 0},
		{role: " viewer", want: 0},
	}
	for _, tc := range tests {
		if got := len(Visible(table.For(tc.role))); got != tc.want {
			t.Fatalf("Visible(%q) = %d areas, want %d", tc.role, got, tc.want)
		}
	}
}

func TestActionGates(t *testing.T) {
	t.Parallel()

	table := permission.DefaultTable()
	campaigns, _ := Lookup(crmapi.ResourceCampaigns)
	contacts, _ := Lookup(crmapi.ResourceContacts)
	accounts, _ := Lookup(crmapi.ResourceAccounts)

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{name: "admin executes campaigns", got: campaigns.CanExecute(table.For("admin")), want: true},
		{name: "manager cannot execute campaigns", got: campaigns.CanExecute(table.For("manager")), want: false},
		{name: "contacts are not executable", got: contacts.CanExecute(table.For("super_admin")), want: false},
		{name: "manager creates contacts", got: contacts.CanCreate(table.For("manager")), want: true},
		{name: "manager cannot delete contacts", got: contacts.CanDelete(table.For("manager")), want: false},
		{name: "viewer cannot create contacts", got: contacts.CanCreate(table.For("viewer")), want: false},
		{name: "viewer cannot export", got: contacts.CanExport(table.For("viewer")), want: false},
		{name: "admin cannot edit accounts", got: accounts.CanUpdate(table.For("admin")), want: false},
		{name: "super admin edits accounts", got: accounts.CanUpdate(table.For("super_admin")), want: true},
		{name: "unknown role cannot export", got: campaigns.CanExport(table.For("owner")), want: false},
		{name: "unknown role cannot view contacts", got: contacts.CanView(table.For("owner")), want: false},
		{name: "missing role cannot view campaigns", got: campaigns.CanView(table.For("")), want: false},
		{name: "viewer views contacts", got: contacts.CanView(table.For("viewer")), want: true},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Fatalf("%s = %t, want %t", tc.name, tc.got, tc.want)
		}
	}
}

func TestFilterFieldsTypesCountColumns(t *testing.T) {
	t.Parallel()

	surveys, _ := Lookup(crmapi.ResourceSurveys)
	fields := surveys.FilterFields()
	if fields["responses"] != filter.FieldInt {
		t.Fatalf("responses type = %q, want %q", fields["responses"], filter.FieldInt)
	}
	if fields["title"] != filter.FieldString {
		t.Fatalf("title type = %q, want %q", fields["title"], filter.FieldString)
	}
	if len(fields) != len(surveys.Columns) {
		t.Fatalf("fields = %d, want %d", len(fields), len(surveys.Columns))
	}
}
