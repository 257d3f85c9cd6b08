package templates

import (
	"github.com/a-h/templ"

	"github.com/louisbranch/crmportal/internal/services/portal/platform/i18n"
)

// AreaLink points at one portal area.
type AreaLink struct {
	Label string
	Path  string
}

// DashboardView is the portal home state.
type DashboardView struct {
	RoleLabel    string
	RoleKnown    bool
	Areas        []AreaLink
	Capabilities []string
}

// DashboardPage renders the portal home.
func DashboardPage(loc i18n.Localizer, view DashboardView) templ.Component {
	return render(func(h *htmlWriter) {
		h.raw(`<section class="dashboard"><h1>`)
		h.text(loc.T("dashboard.title"))
		h.raw(`</h1>`)
		if view.RoleKnown {
			h.raw(`<p class="role">`)
			h.text(loc.T("dashboard.role", view.RoleLabel))
			h.raw(`</p>`)
		} else {
			h.alert(loc.T("dashboard.role_unknown"))
		}
		h.raw(`<h2>`)
		h.text(loc.T("dashboard.areas"))
		h.raw(`</h2><ul class="areas">`)
		for _, area := range view.Areas {
			h.raw(`<li>`)
			h.link(area.Path, area.Label)
			h.raw(`</li>`)
		}
		h.raw(`</ul>`)
		if len(view.Capabilities) > 0 {
			h.raw(`<h2>`)
			h.text(loc.T("dashboard.capabilities"))
			h.raw(`</h2><ul class="capabilities">`)
			for _, capability := range view.Capabilities {
				h.raw(`<li>`)
				h.text(capability)
				h.raw(`</li>`)
			}
			h.raw(`</ul>`)
		}
		h.raw(`</section>`)
	})
}
