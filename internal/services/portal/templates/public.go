package templates

import (
	"github.com/a-h/templ"

	"github.com/louisbranch/crmportal/internal/services/portal/platform/i18n"
	"github.com/louisbranch/crmportal/internal/services/portal/routepath"
)

// LandingPage is the public home page.
func LandingPage(loc i18n.Localizer, signedIn bool) templ.Component {
	return render(func(h *htmlWriter) {
		h.raw(`<section class="hero"><h1>`)
		h.text(loc.T("landing.title"))
		h.raw(`</h1><p>`)
		h.text(loc.T("landing.tagline"))
		h.raw(`</p>`)
		if signedIn {
			h.link(routepath.Portal, loc.T("landing.cta"))
		} else {
			h.link(routepath.Login, loc.T("nav.login"))
		}
		h.raw(`</section>`)
	})
}

// FAQPage wraps pre-rendered FAQ HTML under the localized title.
func FAQPage(loc i18n.Localizer, bodyHTML string) templ.Component {
	return render(func(h *htmlWriter) {
		h.raw(`<section class="faq"><h1>`)
		h.text(loc.T("faq.title"))
		h.raw(`</h1>`)
		h.raw(bodyHTML)
		h.raw(`</section>`)
	})
}

// LoginView is the sign-in form state.
type LoginView struct {
	Email    string
	Redirect string
	Error    string
}

// LoginPage renders the sign-in form.
func LoginPage(loc i18n.Localizer, view LoginView) templ.Component {
	return render(func(h *htmlWriter) {
		h.raw(`<section class="auth"><h1>`)
		h.text(loc.T("login.title"))
		h.raw(`</h1>`)
		h.alert(view.Error)
		h.raw(`<form method="post"`)
		h.action(routepath.Login)
		h.raw(`>`)
		h.hidden(routepath.RedirectQueryKey, view.Redirect)
		h.input("email", "email", loc.T("login.email"), view.Email, true)
		h.input("password", "password", loc.T("login.password"), "", true)
		h.raw(`<button type="submit">`)
		h.text(loc.T("login.submit"))
		h.raw(`</button></form><p>`)
		h.text(loc.T("login.no_account"))
		h.raw(` `)
		h.link(routepath.Signup, loc.T("nav.signup"))
		h.raw(`</p></section>`)
	})
}

// SignupView is the registration form state.
type SignupView struct {
	Name     string
	Email    string
	Company  string
	Redirect string
	Error    string
}

// SignupPage renders the registration form.
func SignupPage(loc i18n.Localizer, view SignupView) templ.Component {
	return render(func(h *htmlWriter) {
		h.raw(`<section class="auth"><h1>`)
		h.text(loc.T("signup.title"))
		h.raw(`</h1>`)
		h.alert(view.Error)
		h.raw(`<form method="post"`)
		h.action(routepath.Signup)
		h.raw(`>`)
		h.hidden(routepath.RedirectQueryKey, view.Redirect)
		h.input("text", "name", loc.T("signup.name"), view.Name, true)
		h.input("email", "email", loc.T("login.email"), view.Email, true)
		h.input("text", "company", loc.T("signup.company"), view.Company, false)
		h.input("password", "password", loc.T("login.password"), "", true)
		h.raw(`<button type="submit">`)
		h.text(loc.T("signup.submit"))
		h.raw(`</button></form><p>`)
		h.text(loc.T("signup.have_account"))
		h.raw(` `)
		h.link(routepath.Login, loc.T("nav.login"))
		h.raw(`</p></section>`)
	})
}

// ErrorView describes a failed request.
type ErrorView struct {
	Status  int
	Message string
}

// ErrorPage renders a failure message with a way back.
func ErrorPage(loc i18n.Localizer, view ErrorView) templ.Component {
	return render(func(h *htmlWriter) {
		h.raw(`<section class="error"><h1>`)
		h.text(loc.T("error.title"))
		h.raw(`</h1><p>`)
		h.text(view.Message)
		h.raw(`</p>`)
		h.link(routepath.Root, loc.T("nav.home"))
		h.raw(`</section>`)
	})
}
