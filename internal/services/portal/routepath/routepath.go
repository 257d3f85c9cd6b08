// Package routepath stores canonical HTTP paths for portal modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root          = "/"
	Login         = "/login"
	Signup        = "/signup"
	FAQ           = "/faq"
	Logout        = "/logout"
	Health        = "/up"
	APIAuthPrefix = "/api/auth"

	Portal              = "/portal"
	PortalPrefix        = "/portal/"
	PortalCompanies     = "/portal/companies"
	PortalContacts      = "/portal/contacts"
	PortalContactGroups = "/portal/contact-groups"
	PortalCampaigns     = "/portal/campaigns"
	PortalSurveys       = "/portal/surveys"
	PortalTasks         = "/portal/tasks"
	PortalTemplates     = "/portal/templates"
	PortalAccounts      = "/portal/accounts"

	// RedirectQueryKey carries the originally requested path through login.
	RedirectQueryKey = "redirect"
)

// LoginWithRedirect returns the login route carrying the requested path.
func LoginWithRedirect(requested string) string {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return Login
	}
	query := url.Values{}
	query.Set(RedirectQueryKey, requested)
	return Login + "?" + query.Encode()
}

// SafeRedirect returns raw when it is a local absolute path and Portal otherwise.
func SafeRedirect(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return Portal
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return Portal
	}
	return raw
}

// IsPortalPath reports whether path is the portal root or sits beneath it.
func IsPortalPath(path string) bool {
	return path == Portal || strings.HasPrefix(path, PortalPrefix)
}
