// Package templates renders portal pages as templ components.
package templates

import (
	"github.com/a-h/templ"

	"github.com/louisbranch/crmportal/internal/services/portal/platform/i18n"
	"github.com/louisbranch/crmportal/internal/services/portal/routepath"
)

// Viewer describes who is looking at a page.
type Viewer struct {
	SignedIn bool
	Name     string
}

// PageContext carries the shared layout state.
type PageContext struct {
	Loc         i18n.Localizer
	CurrentPath string
	Viewer      Viewer
}

// Layout wraps the child component in the full document shell.
func Layout(title string, page PageContext) templ.Component {
	loc := page.Loc
	return render(func(h *htmlWriter) {
		h.raw(`<!doctype html><html`)
		h.attr("lang", loc.Tag().String())
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(PageTitle(title, loc))
		h.raw(`</title><link rel="stylesheet" href="/static/portal.css"></head><body>`)
		h.component(header(page))
		h.raw(`<main id="main">`)
		h.children()
		h.raw(`</main></body></html>`)
	})
}

// MainContent renders only the child component for HTMX swaps.
func MainContent() templ.Component {
	return render(func(h *htmlWriter) {
		h.children()
	})
}

// PageTitle appends the product name to title.
func PageTitle(title string, loc i18n.Localizer) string {
	app := loc.T("app.name")
	if title == "" {
		return app
	}
	return title + " | " + app
}

func header(page PageContext) templ.Component {
	loc := page.Loc
	return render(func(h *htmlWriter) {
		h.raw(`<header class="topbar"><nav>`)
		h.link(routepath.Root, loc.T("app.name"))
		h.link(routepath.FAQ, loc.T("nav.faq"))
		if page.Viewer.SignedIn {
			h.link(routepath.Portal, loc.T("nav.portal"))
		}
		h.raw(`</nav><div class="session">`)
		if page.Viewer.SignedIn {
			if page.Viewer.Name != "" {
				h.raw(`<span class="viewer">`)
				h.text(loc.T("nav.signed_in_as", page.Viewer.Name))
				h.raw(`</span>`)
			}
			h.raw(`<form method="post"`)
			h.action(routepath.Logout)
			h.raw(`><button type="submit">`)
			h.text(loc.T("nav.logout"))
			h.raw(`</button></form>`)
		} else {
			h.link(routepath.Login, loc.T("nav.login"))
			h.link(routepath.Signup, loc.T("nav.signup"))
		}
		h.raw(`</div></header>`)
	})
}
