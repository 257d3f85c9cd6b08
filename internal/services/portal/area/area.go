// Package area describes the CRM areas the portal exposes and the
// capabilities that open them and change their records.
package area

import (
	"github.com/louisbranch/crmportal/internal/platform/filter"
	"github.com/louisbranch/crmportal/internal/services/portal/integration/crmapi"
	"github.com/louisbranch/crmportal/internal/services/portal/permission"
	"github.com/louisbranch/crmportal/internal/services/portal/routepath"
)

// Area is one CRM collection served under the portal.
type Area struct {
	Resource crmapi.Resource
	Path     string
	// View is required to open the area. Empty means any known role.
	View permission.Capability
	// Manage is required on top of the generic write
	// capabilities. Empty means the generic capability is enough.
	Manage permission.Capability
	// Columns are shown in the list table; Fields are editable in forms.
	Columns    []string
	Fields     []string
	Executable bool
}

// All returns the portal areas in navigation order.
func All() []Area {
	return []Area{
		{
			Resource: crmapi.ResourceCompanies,
			Path:     routepath.PortalCompanies,
			Columns:  []string{"name", "industry", "website", "phone"},
			Fields:   []string{"name", "industry", "website", "phone"},
		},
		{
			Resource: crmapi.ResourceContacts,
			Path:     routepath.PortalContacts,
			Manage:   permission.CanManageContacts,
			Columns:  []string{"firstName", "lastName", "email", "phone", "company"},
			Fields:   []string{"firstName", "lastName", "email", "phone"},
		},
		{
			Resource: crmapi.ResourceContactGroups,
			Path:     routepath.PortalContactGroups,
			Manage:   permission.CanManageContacts,
			Columns:  []string{"name", "description", "members"},
			Fields:   []string{"name", "description"},
		},
		{
			Resource:   crmapi.ResourceCampaigns,
			Path:       routepath.PortalCampaigns,
			Manage:     permission.CanManageCampaigns,
			Columns:    []string{"name", "status", "channel", "scheduledAt"},
			Fields:     []string{"name", "channel", "scheduledAt"},
			Executable: true,
		},
		{
			Resource: crmapi.ResourceSurveys,
			Path:     routepath.PortalSurveys,
			Manage:   permission.CanManageSurveys,
			Columns:  []string{"title", "status", "responses"},
			Fields:   []string{"title", "status"},
		},
		{
			Resource: crmapi.ResourceTasks,
			Path:     routepath.PortalTasks,
			Columns:  []string{"title", "status", "dueDate", "assignee"},
			Fields:   []string{"title", "status", "dueDate", "assignee"},
		},
		{
			Resource: crmapi.ResourceTemplates,
			Path:     routepath.PortalTemplates,
			Manage:   permission.CanManageCampaigns,
			Columns:  []string{"name", "channel", "subject"},
			Fields:   []string{"name", "channel", "subject"},
		},
		{
			Resource: crmapi.ResourceAccounts,
			Path:     routepath.PortalAccounts,
			View:     permission.CanManageAccounts,
			Manage:   permission.CanManageAccounts,
			Columns:  []string{"name", "email", "role", "status"},
			Fields:   []string{"name", "email", "role"},
		},
	}
}

// Lookup returns the area serving resource.
func Lookup(resource crmapi.Resource) (Area, bool) {
	for _, a := range All() {
		if a.Resource == resource {
			return a, true
		}
	}
	return Area{}, false
}

// Visible returns the areas c may open.
func Visible(c permission.Checker) []Area {
	visible := make([]Area, 0, len(All()))
	for _, a := range All() {
		if a.CanView(c) {
			visible = append(visible, a)
		}
	}
	return visible
}

// LabelKey is the localization key of the area title.
func (a Area) LabelKey() string {
	return "resource." + string(a.Resource)
}

// countColumns hold integers; every other column filters as a string.
var countColumns = map[string]struct{}{"members": {}, "responses": {}}

// FilterFields declares the list columns a filter expression may reference.
func (a Area) FilterFields() filter.Fields {
	fields := make(filter.Fields, len(a.Columns))
	for _, column := range a.Columns {
		fields[column] = filter.FieldString
		if _, ok := countColumns[column]; ok {
			fields[column] = filter.FieldInt
		}
	}
	return fields
}

// CanView reports whether c may open the area. Roles outside the role set
// open nothing.
func (a Area) CanView(c permission.Checker) bool {
	if !c.Known() {
		return false
	}
	return a.View == "" || c.Can(a.View)
}

func (a Area) CanCreate(c permission.Checker) bool {
	return a.CanView(c) && c.CanCreate() && a.manages(c)
}

func (a Area) CanUpdate(c permission.Checker) bool {
	return a.CanView(c) && c.CanUpdate() && a.manages(c)
}

func (a Area) CanDelete(c permission.Checker) bool {
	return a.CanView(c) && c.CanDelete() && a.manages(c)
}

func (a Area) CanExport(c permission.Checker) bool {
	return a.CanView(c) && c.CanExportData()
}

func (a Area) CanExecute(c permission.Checker) bool {
	return a.Executable && a.CanView(c) && c.CanExecuteCampaigns()
}

func (a Area) manages(c permission.Checker) bool {
	return a.Manage == "" || c.Can(a.Manage)
}
