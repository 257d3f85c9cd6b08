package public

import (
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/crmportal/internal/services/portal/content"
	"github.com/louisbranch/crmportal/internal/services/portal/integration/crmapi"
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
	cfg    Config
	logger *log.Logger
}

func newHandlers(cfg Config) handlers {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return handlers{cfg: cfg, logger: logger}
}

func (h handlers) handleLanding(w http.ResponseWriter, r *http.Request) {
	loc := pagerender.Localizer(w, r)
	signedIn := principal.FromContext(r.Context()).Authenticated()
	h.write(w, r, loc, pagerender.Page{
		Title: loc.T("landing.title"),
		Body:  templates.LandingPage(loc, signedIn),
	})
}

func (h handlers) handleFAQ(w http.ResponseWriter, r *http.Request) {
	loc := pagerender.Localizer(w, r)
	body, err := content.FAQ(loc.Tag())
	if err != nil {
		h.logger.Printf("faq content failed lang=%s err=%v", loc.Tag(), err)
		pagerender.WriteError(w, r, err)
		return
	}
	h.write(w, r, loc, pagerender.Page{
		Title: loc.T("faq.title"),
		Body:  templates.FAQPage(loc, body),
	})
}

func (h handlers) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	loc := pagerender.Localizer(w, r)
	h.renderLogin(w, r, loc, http.StatusOK, templates.LoginView{
		Redirect: r.URL.Query().Get(routepath.RedirectQueryKey),
	})
}

func (h handlers) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	loc := pagerender.Localizer(w, r)
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, loc, http.StatusBadRequest, templates.LoginView{
			Error: loc.T("error.invalid_input"),
		})
		return
	}
	email := strings.TrimSpace(r.PostForm.Get("email"))
	redirect := r.PostForm.Get(routepath.RedirectQueryKey)

	session, err := h.cfg.Auth.Login(r.Context(), email, r.PostForm.Get("password"))
	if err != nil {
		h.renderLogin(w, r, loc, apperrors.HTTPStatus(err), templates.LoginView{
			Email:    email,
			Redirect: redirect,
			Error:    pagerender.PublicMessage(loc, err),
		})
		return
	}
	h.startSession(w, r, session, redirect)
}

func (h handlers) handleSignupForm(w http.ResponseWriter, r *http.Request) {
	loc := pagerender.Localizer(w, r)
	h.renderSignup(w, r, loc, http.StatusOK, templates.SignupView{
		Redirect: r.URL.Query().Get(routepath.RedirectQueryKey),
	})
}

func (h handlers) handleSignupSubmit(w http.ResponseWriter, r *http.Request) {
	loc := pagerender.Localizer(w, r)
	if err := r.ParseForm(); err != nil {
		h.renderSignup(w, r, loc, http.StatusBadRequest, templates.SignupView{
			Error: loc.T("error.invalid_input"),
		})
		return
	}
	input := crmapi.SignupInput{
		Name:     strings.TrimSpace(r.PostForm.Get("name")),
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Password: r.PostForm.Get("password"),
		Company:  strings.TrimSpace(r.PostForm.Get("company")),
	}
	redirect := r.PostForm.Get(routepath.RedirectQueryKey)

	session, err := h.cfg.Auth.Signup(r.Context(), input)
	if err != nil {
		h.renderSignup(w, r, loc, apperrors.HTTPStatus(err), templates.SignupView{
			Name:     input.Name,
			Email:    input.Email,
			Company:  input.Company,
			Redirect: redirect,
			Error:    pagerender.PublicMessage(loc, err),
		})
		return
	}
	h.startSession(w, r, session, redirect)
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token, ok := sessioncookie.Read(r); ok {
		if err := h.cfg.Auth.Logout(r.Context(), token); err != nil {
			h.logger.Printf("api logout failed request_id=%s err=%v", r.Header.Get(httpx.RequestIDHeader), err)
		}
		if h.cfg.Sessions != nil {
			h.cfg.Sessions.Forget(r.Context(), token)
		}
	}
	sessioncookie.Clear(w, r, h.cfg.SchemePolicy)
	httpx.WriteRedirect(w, r, routepath.Login)
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	pagerender.WriteError(w, r, apperrors.EK(apperrors.KindNotFound, "error.not_found", "page not found"))
}

func (h handlers) startSession(w http.ResponseWriter, r *http.Request, session crmapi.Session, redirect string) {
	token := strings.TrimSpace(session.AccessToken)
	if token == "" {
		pagerender.WriteError(w, r, apperrors.E(apperrors.KindUnavailable, "api returned no access token"))
		return
	}
	sessioncookie.Write(w, r, token, h.cfg.SchemePolicy)
	httpx.WriteRedirect(w, r, routepath.SafeRedirect(redirect))
}

func (h handlers) renderLogin(w http.ResponseWriter, r *http.Request, loc i18n.Localizer, status int, view templates.LoginView) {
	h.write(w, r, loc, pagerender.Page{
		Title:  loc.T("login.title"),
		Status: status,
		Body:   templates.LoginPage(loc, view),
	})
}

func (h handlers) renderSignup(w http.ResponseWriter, r *http.Request, loc i18n.Localizer, status int, view templates.SignupView) {
	h.write(w, r, loc, pagerender.Page{
		Title:  loc.T("signup.title"),
		Status: status,
		Body:   templates.SignupPage(loc, view),
	})
}

func (h handlers) write(w http.ResponseWriter, r *http.Request, loc i18n.Localizer, page pagerender.Page) {
	if err := pagerender.Write(w, r, loc, page); err != nil {
		h.logger.Printf("render page failed path=%s err=%v", r.URL.Path, err)
		pagerender.WriteError(w, r, err)
	}
}
