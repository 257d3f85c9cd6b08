package dashboard

import (
	"log"
	"net/http"

	"github.com/louisbranch/crmportal/internal/services/portal/area"
	"github.com/louisbranch/crmportal/internal/services/portal/permission"
	"github.com/louisbranch/crmportal/internal/services/portal/platform/i18n"
	"github.com/louisbranch/crmportal/internal/services/portal/platform/pagerender"
	"github.com/louisbranch/crmportal/internal/services/portal/principal"
	"github.com/louisbranch/crmportal/internal/services/portal/templates"

	apperrors "github.com/louisbranch/crmportal/internal/services/portal/platform/errors"
)

type handlers struct {
	table  *permission.Table
	logger *log.Logger
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	loc := pagerender.Localizer(w, r)
	p := principal.FromContext(r.Context())
	view := buildView(loc, h.table, p)
	if err := pagerender.Write(w, r, loc, pagerender.Page{
		Title: loc.T("dashboard.title"),
		Body:  templates.DashboardPage(loc, view),
	}); err != nil {
		h.logger.Printf("render dashboard failed err=%v", err)
		pagerender.WriteError(w, r, err)
	}
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	pagerender.WriteError(w, r, apperrors.EK(apperrors.KindNotFound, "error.not_found", "page not found"))
}

func buildView(loc i18n.Localizer, table *permission.Table, p principal.Principal) templates.DashboardView {
	role := string(p.Role)
	checker := table.For(role)

	view := templates.DashboardView{RoleKnown: p.RoleKnown}
	if p.RoleKnown {
		view.RoleLabel = loc.T("role." + role)
	}
	for _, a := range area.Visible(checker) {
		view.Areas = append(view.Areas, templates.AreaLink{Label: loc.T(a.LabelKey()), Path: a.Path})
	}
	for _, capability := range table.Granted(role) {
		view.Capabilities = append(view.Capabilities, loc.T("capability."+string(capability)))
	}
	return view
}
