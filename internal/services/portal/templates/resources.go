package templates

import (
	"github.com/a-h/templ"

	"github.com/louisbranch/crmportal/internal/services/portal/platform/i18n"
)

// Column is one list column.
type Column struct {
	Key   string
	Label string
}

// Row is one rendered record.
type Row struct {
	ID    string
	Cells []string
}

// ListActions selects which record actions are rendered.
type ListActions struct {
	Create  bool
	Edit    bool
	Delete  bool
	Export  bool
	Execute bool
}

// ResourceListView is a paged table of one CRM area.
type ResourceListView struct {
	Title      string
	BasePath   string
	Columns    []Column
	Rows       []Row
	Search     string
	Filter     string
	Error      string
	Page       int
	TotalPages int
	PrevURL    string
	NextURL    string
	ExportURL  string
	Actions    ListActions
}

// ResourceListPage renders a CRM area table with the actions the viewer
// may use.
func ResourceListPage(loc i18n.Localizer, view ResourceListView) templ.Component {
	return render(func(h *htmlWriter) {
		h.raw(`<section class="resource"><header><h1>`)
		h.text(view.Title)
		h.raw(`</h1><div class="toolbar">`)
		if view.Actions.Create {
			h.raw(`<a class="button" data-action="create"`)
			h.href(view.BasePath + "/new")
			h.raw(`>`)
			h.text(loc.T("action.create"))
			h.raw(`</a>`)
		}
		if view.Actions.Export && view.ExportURL != "" {
			h.raw(`<a class="button" data-action="export"`)
			h.href(view.ExportURL)
			h.raw(`>`)
			h.text(loc.T("action.export"))
			h.raw(`</a>`)
		}
		h.raw(`<form method="get" role="search"`)
		h.action(view.BasePath)
		h.raw(`><input type="search" name="search"`)
		h.attr("value", view.Search)
		h.attr("aria-label", loc.T("action.search"))
		h.raw(`><input type="text" name="filter"`)
		h.attr("value", view.Filter)
		h.attr("placeholder", loc.T("table.filter_hint"))
		h.attr("aria-label", loc.T("table.filter"))
		h.raw(`><button type="submit">`)
		h.text(loc.T("action.search"))
		h.raw(`</button></form></div></header>`)
		h.alert(view.Error)

		if len(view.Rows) == 0 {
			h.raw(`<p class="empty">`)
			h.text(loc.T("table.empty"))
			h.raw(`</p></section>`)
			return
		}
		h.raw(`<table><thead><tr>`)
		for _, column := range view.Columns {
			h.raw(`<th>`)
			h.text(column.Label)
			h.raw(`</th>`)
		}
		hasRowActions := view.Actions.Edit || view.Actions.Delete || view.Actions.Execute
		if hasRowActions {
			h.raw(`<th></th>`)
		}
		h.raw(`</tr></thead><tbody>`)
		for _, row := range view.Rows {
			h.raw(`<tr`)
			h.attr("data-id", row.ID)
			h.raw(`>`)
			for _, cell := range row.Cells {
				h.raw(`<td>`)
				h.text(cell)
				h.raw(`</td>`)
			}
			if hasRowActions {
				h.raw(`<td class="row-actions">`)
				rowActions(h, loc, view, row.ID)
				h.raw(`</td>`)
			}
			h.raw(`</tr>`)
		}
		h.raw(`</tbody></table>`)
		pager(h, loc, view)
		h.raw(`</section>`)
	})
}

func rowActions(h *htmlWriter, loc i18n.Localizer, view ResourceListView, id string) {
	if id == "" {
		return
	}
	recordPath := view.BasePath + "/" + id
	if view.Actions.Edit {
		h.raw(`<a data-action="edit"`)
		h.href(recordPath + "/edit")
		h.raw(`>`)
		h.text(loc.T("action.edit"))
		h.raw(`</a>`)
	}
	if view.Actions.Execute {
		postButton(h, recordPath+"/execute", "execute", loc.T("action.execute"))
	}
	if view.Actions.Delete {
		postButton(h, recordPath+"/delete", "delete", loc.T("action.delete"))
	}
}

func postButton(h *htmlWriter, action, name, label string) {
	h.raw(`<form method="post" class="inline"`)
	h.action(action)
	h.raw(`><button type="submit"`)
	h.attr("data-action", name)
	h.raw(`>`)
	h.text(label)
	h.raw(`</button></form>`)
}

func pager(h *htmlWriter, loc i18n.Localizer, view ResourceListView) {
	if view.TotalPages <= 1 {
		return
	}
	h.raw(`<nav class="pager">`)
	if view.PrevURL != "" {
		h.link(view.PrevURL, loc.T("pager.prev"))
	}
	h.raw(`<span>`)
	h.text(loc.T("pager.summary", view.Page, view.TotalPages))
	h.raw(`</span>`)
	if view.NextURL != "" {
		h.link(view.NextURL, loc.T("pager.next"))
	}
	h.raw(`</nav>`)
}

// FormField is one editable record attribute.
type FormField struct {
	Name  string
	Label string
	Value string
}

// ResourceFormView is a create or edit form.
type ResourceFormView struct {
	Title  string
	Action string
	Submit string
	Cancel string
	Fields []FormField
	Error  string
}

// ResourceFormPage renders a record form.
func ResourceFormPage(loc i18n.Localizer, view ResourceFormView) templ.Component {
	return render(func(h *htmlWriter) {
		h.raw(`<section class="resource-form"><h1>`)
		h.text(view.Title)
		h.raw(`</h1>`)
		h.alert(view.Error)
		h.raw(`<form method="post"`)
		h.action(view.Action)
		h.raw(`>`)
		for _, field := range view.Fields {
			h.input("text", field.Name, field.Label, field.Value, false)
		}
		h.raw(`<button type="submit">`)
		h.text(view.Submit)
		h.raw(`</button>`)
		if view.Cancel != "" {
			h.link(view.Cancel, loc.T("action.cancel"))
		}
		h.raw(`</form></section>`)
	})
}
