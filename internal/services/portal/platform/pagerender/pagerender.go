// Package pagerender writes portal pages for full-page and HTMX requests.
package pagerender

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/crmportal/internal/services/portal/platform/httpx"
	"github.com/louisbranch/crmportal/internal/services/portal/platform/i18n"
	"github.com/louisbranch/crmportal/internal/services/portal/principal"
	"github.com/louisbranch/crmportal/internal/services/portal/templates"

	apperrors "github.com/louisbranch/crmportal/internal/services/portal/platform/errors"
)

// Page is one rendered response.
type Page struct {
	Title  string
	Status int
	Body   templ.Component
}

// Localizer resolves the request language, persisting an explicit choice.
func Localizer(w http.ResponseWriter, r *http.Request) i18n.Localizer {
	tag, persist := i18n.Resolve(r)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	return i18n.For(tag)
}

// Write renders page inside the layout, or alone for HTMX swaps.
func Write(w http.ResponseWriter, r *http.Request, loc i18n.Localizer, page Page) error {
	if w == nil {
		return nil
	}
	status := page.Status
	if status <= 0 {
		status = http.StatusOK
	}
	body := page.Body
	if body == nil {
		body = templ.NopComponent
	}

	shell := templates.MainContent()
	if !httpx.IsHTMXRequest(r) {
		shell = templates.Layout(page.Title, templates.PageContext{
			Loc:         loc,
			CurrentPath: currentPath(r),
			Viewer:      viewer(r),
		})
	}
	var buf bytes.Buffer
	if err := shell.Render(templ.WithChildren(httpx.RequestContext(r), body), &buf); err != nil {
		return err
	}
	return httpx.WriteHTML(w, status, buf.String())
}

// PublicMessage resolves a user-safe localized message for err.
func PublicMessage(loc i18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if key := apperrors.LocalizationKey(err); key != "" {
		if message := loc.T(key); message != key {
			return message
		}
	}
	return loc.T("error." + string(apperrors.KindOf(err)))
}

// WriteError renders err as a localized error page with its mapped status.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if w == nil {
		return
	}
	loc := Localizer(w, r)
	status := apperrors.HTTPStatus(err)
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	body := templates.ErrorPage(loc, templates.ErrorView{Status: status, Message: PublicMessage(loc, err)})
	if renderErr := Write(w, r, loc, Page{Title: loc.T("error.title"), Status: status, Body: body}); renderErr != nil {
		http.Error(w, http.StatusText(status), status)
	}
}

func viewer(r *http.Request) templates.Viewer {
	if r == nil {
		return templates.Viewer{}
	}
	p := principal.FromContext(r.Context())
	return templates.Viewer{SignedIn: p.Authenticated(), Name: p.Name()}
}

func currentPath(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return strings.TrimSpace(r.URL.Path)
}
