package resources

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/louisbranch/crmportal/internal/platform/filter"
	"github.com/louisbranch/crmportal/internal/services/portal/area"
	"github.com/louisbranch/crmportal/internal/services/portal/integration/crmapi"
	"github.com/louisbranch/crmportal/internal/services/portal/permission"
	"github.com/louisbranch/crmportal/internal/services/portal/platform/httpx"
	"github.com/louisbranch/crmportal/internal/services/portal/platform/i18n"
	"github.com/louisbranch/crmportal/internal/services/portal/platform/pagerender"
	"github.com/louisbranch/crmportal/internal/services/portal/platform/sessioncookie"
	"github.com/louisbranch/crmportal/internal/services/portal/principal"
	"github.com/louisbranch/crmportal/internal/services/portal/routepath"
	"github.com/louisbranch/crmportal/internal/services/portal/templates"

	apperrors "github.com/louisbranch/crmportal/internal/services/portal/platform/errors"
)

type handlers struct {
	area area.Area
	cfg  Config
}

func newHandlers(a area.Area, cfg Config) handlers {
	return handlers{area: a, cfg: cfg}
}

func (h handlers) viewer(r *http.Request) (principal.Principal, permission.Checker) {
	p := principal.FromContext(r.Context())
	return p, h.cfg.Table.For(string(p.Role))
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	p, can := h.viewer(r)
	if !h.area.CanView(can) {
		h.forbidden(w, r)
		return
	}
	loc := pagerender.Localizer(w, r)
	query := crmapi.ListQueryFromValues(r.URL.Query())
	if err := h.checkFilter(query); err != nil {
		view := h.listView(loc, can, query, crmapi.Page{Page: query.Page})
		view.Error = pagerender.PublicMessage(loc, err)
		h.write(w, r, loc, pagerender.Page{Title: view.Title, Status: http.StatusBadRequest, Body: templates.ResourceListPage(loc, view)})
		return
	}
	page, err := h.cfg.Lister.List(r.Context(), p.Token, h.area.Resource, query)
	if err != nil {
		h.writeError(w, r, "list", err)
		return
	}
	view := h.listView(loc, can, query, page)
	h.write(w, r, loc, pagerender.Page{Title: view.Title, Body: templates.ResourceListPage(loc, view)})
}

func (h handlers) handleNewForm(w http.ResponseWriter, r *http.Request) {
	_, can := h.viewer(r)
	if !h.area.CanCreate(can) {
		h.forbidden(w, r)
		return
	}
	loc := pagerender.Localizer(w, r)
	h.renderForm(w, r, loc, http.StatusOK, h.newFormView(loc, nil, ""))
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	p, can := h.viewer(r)
	if !h.area.CanCreate(can) {
		h.forbidden(w, r)
		return
	}
	loc := pagerender.Localizer(w, r)
	if err := r.ParseForm(); err != nil {
		h.renderForm(w, r, loc, http.StatusBadRequest, h.newFormView(loc, nil, loc.T("error.invalid_input")))
		return
	}
	fields := h.formRecord(r.PostForm)
	if _, err := h.cfg.Writer.Create(r.Context(), p.Token, h.area.Resource, fields); err != nil {
		if apperrors.KindOf(err) == apperrors.KindUnauthorized {
			h.writeError(w, r, "create", err)
			return
		}
		h.logFailure(r, "create", err)
		h.renderForm(w, r, loc, apperrors.HTTPStatus(err), h.newFormView(loc, fields, pagerender.PublicMessage(loc, err)))
		return
	}
	h.finishWrite(w, r, p)
}

func (h handlers) handleEditForm(w http.ResponseWriter, r *http.Request) {
	p, can := h.viewer(r)
	if !h.area.CanUpdate(can) {
		h.forbidden(w, r)
		return
	}
	loc := pagerender.Localizer(w, r)
	id := r.PathValue("id")
	record, err := h.cfg.Writer.Get(r.Context(), p.Token, h.area.Resource, id)
	if err != nil {
		h.writeError(w, r, "get", err)
		return
	}
	h.renderForm(w, r, loc, http.StatusOK, h.editFormView(loc, id, record, ""))
}

func (h handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	p, can := h.viewer(r)
	if !h.area.CanUpdate(can) {
		h.forbidden(w, r)
		return
	}
	loc := pagerender.Localizer(w, r)
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		h.renderForm(w, r, loc, http.StatusBadRequest, h.editFormView(loc, id, nil, loc.T("error.invalid_input")))
		return
	}
	fields := h.formRecord(r.PostForm)
	if _, err := h.cfg.Writer.Update(r.Context(), p.Token, h.area.Resource, id, fields); err != nil {
		if apperrors.KindOf(err) == apperrors.KindUnauthorized {
			h.writeError(w, r, "update", err)
			return
		}
		h.logFailure(r, "update", err)
		h.renderForm(w, r, loc, apperrors.HTTPStatus(err), h.editFormView(loc, id, fields, pagerender.PublicMessage(loc, err)))
		return
	}
	h.finishWrite(w, r, p)
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	p, can := h.viewer(r)
	if !h.area.CanDelete(can) {
		h.forbidden(w, r)
		return
	}
	if err := h.cfg.Writer.Delete(r.Context(), p.Token, h.area.Resource, r.PathValue("id")); err != nil {
		h.writeError(w, r, "delete", err)
		return
	}
	h.finishWrite(w, r, p)
}

func (h handlers) handleExecute(w http.ResponseWriter, r *http.Request) {
	p, can := h.viewer(r)
	if !h.area.CanExecute(can) {
		h.forbidden(w, r)
		return
	}
	if err := h.cfg.Writer.ExecuteCampaign(r.Context(), p.Token, r.PathValue("id")); err != nil {
		h.writeError(w, r, "execute", err)
		return
	}
	h.finishWrite(w, r, p)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	pagerender.WriteError(w, r, apperrors.EK(apperrors.KindNotFound, "error.not_found", "page not found"))
}

// finishWrite drops cached pages the write made stale and returns to the list.
func (h handlers) finishWrite(w http.ResponseWriter, r *http.Request, p principal.Principal) {
	if h.cfg.Invalidator != nil {
		h.cfg.Invalidator.Forget(r.Context(), p.Token)
	}
	httpx.WriteRedirect(w, r, h.area.Path)
}

func (h handlers) listView(loc i18n.Localizer, can permission.Checker, query crmapi.ListQuery, page crmapi.Page) templates.ResourceListView {
	view := templates.ResourceListView{
		Title:    loc.T(h.area.LabelKey()),
		BasePath: h.area.Path,
		Search:   query.Search,
		Filter:   query.Filter,
		Page:     page.Page,
		Actions: templates.ListActions{
			Create:  h.area.CanCreate(can),
			Edit:    h.area.CanUpdate(can),
			Delete:  h.area.CanDelete(can),
			Export:  h.area.CanExport(can),
			Execute: h.area.CanExecute(can),
		},
	}
	if view.Page < 1 {
		view.Page = query.Page
	}
	view.TotalPages = 1
	if page.PageSize > 0 && page.Total > page.PageSize {
		view.TotalPages = (page.Total + page.PageSize - 1) / page.PageSize
	}
	if page.HasPrev() {
		view.PrevURL = h.pageURL(query, view.Page-1)
	}
	if page.HasNext() {
		view.NextURL = h.pageURL(query, view.Page+1)
	}
	if view.Actions.Export {
		view.ExportURL = h.area.Path + "/export"
		exportQuery := url.Values{}
		if query.Search != "" {
			exportQuery.Set("search", query.Search)
		}
		if query.Filter != "" {
			exportQuery.Set("filter", query.Filter)
		}
		if len(exportQuery) > 0 {
			view.ExportURL += "?" + exportQuery.Encode()
		}
	}
	for _, column := range h.area.Columns {
		view.Columns = append(view.Columns, templates.Column{Key: column, Label: loc.T("field." + column)})
	}
	for _, item := range page.Items {
		row := templates.Row{ID: item.ID(), Cells: make([]string, 0, len(h.area.Columns))}
		for _, column := range h.area.Columns {
			row.Cells = append(row.Cells, item.Field(column))
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}

// checkFilter rejects filters that reference columns the area does not list
// or compare them with the wrong type.
func (h handlers) checkFilter(query crmapi.ListQuery) error {
	if _, err := filter.Parse(query.Filter, h.area.FilterFields()); err != nil {
		return apperrors.EK(apperrors.KindInvalidInput, "error.filter.invalid", err.Error())
	}
	return nil
}

func (h handlers) pageURL(query crmapi.ListQuery, page int) string {
	query.Page = page
	return h.area.Path + "?" + query.Values().Encode()
}

func (h handlers) newFormView(loc i18n.Localizer, values crmapi.Record, message string) templates.ResourceFormView {
	return templates.ResourceFormView{
		Title:  loc.T("form.new", loc.T(h.area.LabelKey())),
		Action: h.area.Path + "/new",
		Submit: loc.T("action.save"),
		Cancel: h.area.Path,
		Fields: h.formFields(loc, values),
		Error:  message,
	}
}

func (h handlers) editFormView(loc i18n.Localizer, id string, values crmapi.Record, message string) templates.ResourceFormView {
	return templates.ResourceFormView{
		Title:  loc.T("form.edit", loc.T(h.area.LabelKey())),
		Action: h.area.Path + "/" + url.PathEscape(id) + "/edit",
		Submit: loc.T("action.save"),
		Cancel: h.area.Path,
		Fields: h.formFields(loc, values),
		Error:  message,
	}
}

func (h handlers) formFields(loc i18n.Localizer, values crmapi.Record) []templates.FormField {
	fields := make([]templates.FormField, 0, len(h.area.Fields))
	for _, name := range h.area.Fields {
		fields = append(fields, templates.FormField{
			Name:  name,
			Label: loc.T("field." + name),
			Value: values.Field(name),
		})
	}
	return fields
}

func (h handlers) formRecord(values url.Values) crmapi.Record {
	record := make(crmapi.Record, len(h.area.Fields))
	for _, name := range h.area.Fields {
		record[name] = strings.TrimSpace(values.Get(name))
	}
	return record
}

func (h handlers) renderForm(w http.ResponseWriter, r *http.Request, loc i18n.Localizer, status int, view templates.ResourceFormView) {
	h.write(w, r, loc, pagerender.Page{Title: view.Title, Status: status, Body: templates.ResourceFormPage(loc, view)})
}

func (h handlers) write(w http.ResponseWriter, r *http.Request, loc i18n.Localizer, page pagerender.Page) {
	if err := pagerender.Write(w, r, loc, page); err != nil {
		h.cfg.Logger.Printf("render page failed path=%s err=%v", r.URL.Path, err)
		pagerender.WriteError(w, r, err)
	}
}

func (h handlers) forbidden(w http.ResponseWriter, r *http.Request) {
	pagerender.WriteError(w, r, apperrors.EK(apperrors.KindForbidden, "error.forbidden", "capability required"))
}

// writeError renders err. An expired session clears the cookie and sends the
// viewer back through login.
func (h handlers) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if apperrors.KindOf(err) == apperrors.KindUnauthorized {
		sessioncookie.Clear(w, r, h.cfg.SchemePolicy)
		httpx.WriteRedirect(w, r, routepath.LoginWithRedirect(r.URL.Path))
		return
	}
	h.logFailure(r, op, err)
	pagerender.WriteError(w, r, err)
}

func (h handlers) logFailure(r *http.Request, op string, err error) {
	h.cfg.Logger.Printf(
		"crm api call failed resource=%s op=%s kind=%s request_id=%s err=%v",
		h.area.Resource,
		op,
		apperrors.KindOf(err),
		r.Header.Get(httpx.RequestIDHeader),
		err,
	)
}
