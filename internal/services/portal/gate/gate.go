// Package gate decides, per navigation request, whether the portal lets the
// request through or redirects it based on access token presence.
//
// The gate only checks that a token exists. Token signature and expiry are
// enforced by the CRM API on every call the portal makes with it.
package gate

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/louisbranch/crmportal/internal/services/portal/platform/httpx"
	"github.com/louisbranch/crmportal/internal/services/portal/routepath"
)

// Class is the route classification of a request path.
type Class int

const (
	// Neutral paths are neither public entry pages nor protected areas.
	Neutral Class = iota
	// Public paths are reachable without a token.
	Public
	// Protected paths require a token.
	Protected
)

// String returns the class name used in logs and test output.
func (c Class) String() string {
	switch c {
	case Public:
		return "public"
	case Protected:
		return "protected"
	default:
		return "neutral"
	}
}

// Action is the outcome of a gate decision.
type Action int

const (
	// Allow lets the request proceed unmodified.
	Allow Action = iota
	// Redirect sends the browser to Decision.Location.
	Redirect
)

// Decision is the gate outcome for one request.
type Decision struct {
	Action   Action
	Location string
}

// Config holds the static route lists the gate evaluates.
type Config struct {
	// PublicPaths are matched exactly after normalization.
	PublicPaths []string
	// PublicPrefixes are matched as plain prefixes after normalization.
	PublicPrefixes []string
	// ProtectedRoot is the protected area root; it and everything beneath it
	// require a token.
	ProtectedRoot string
	LoginPath     string
	SignupPath    string
	// HomePath receives signed-in users who open the login or signup page.
	HomePath string
	Matcher  Matcher
}

// DefaultConfig returns the portal route lists.
func DefaultConfig() Config {
	return Config{
		PublicPaths:    []string{routepath.Login, routepath.Signup, routepath.FAQ, routepath.Root},
		PublicPrefixes: []string{routepath.APIAuthPrefix},
		ProtectedRoot:  routepath.Portal,
		LoginPath:      routepath.Login,
		SignupPath:     routepath.Signup,
		HomePath:       routepath.Portal,
		Matcher:        DefaultMatcher(),
	}
}

// Gate evaluates Config. A Gate is immutable after New and safe for
// concurrent use.
type Gate struct {
	public         map[string]struct{}
	publicPrefixes []string
	protectedRoot  string
	login          string
	signup         string
	home           string
	loginTarget    string
	matcher        Matcher
}

// New builds a gate from cfg. Blank route fields fall back to DefaultConfig;
// a zero Matcher excludes nothing.
func New(cfg Config) *Gate {
	defaults := DefaultConfig()
	if len(cfg.PublicPaths) == 0 {
		cfg.PublicPaths = defaults.PublicPaths
	}
	if len(cfg.PublicPrefixes) == 0 {
		cfg.PublicPrefixes = defaults.PublicPrefixes
	}
	if strings.TrimSpace(cfg.ProtectedRoot) == "" {
		cfg.ProtectedRoot = defaults.ProtectedRoot
	}
	if strings.TrimSpace(cfg.LoginPath) == "" {
		cfg.LoginPath = defaults.LoginPath
	}
	if strings.TrimSpace(cfg.SignupPath) == "" {
		cfg.SignupPath = defaults.SignupPath
	}
	if strings.TrimSpace(cfg.HomePath) == "" {
		cfg.HomePath = defaults.HomePath
	}

	g := &Gate{
		public:        make(map[string]struct{}, len(cfg.PublicPaths)),
		protectedRoot: normalize(cfg.ProtectedRoot),
		login:         normalize(cfg.LoginPath),
		signup:        normalize(cfg.SignupPath),
		home:          strings.TrimSpace(cfg.HomePath),
		loginTarget:   strings.TrimSpace(cfg.LoginPath),
		matcher:       cfg.Matcher,
	}
	for _, path := range cfg.PublicPaths {
		g.public[normalize(path)] = struct{}{}
	}
	for _, prefix := range cfg.PublicPrefixes {
		if prefix = strings.ToLower(strings.TrimSpace(prefix)); prefix != "" {
			g.publicPrefixes = append(g.publicPrefixes, prefix)
		}
	}
	return g
}

// Classify returns the route class of path.
func (g *Gate) Classify(path string) Class {
	normalized := normalize(path)
	if g.isPublic(normalized) {
		return Public
	}
	if g.isProtected(normalized) {
		return Protected
	}
	return Neutral
}

// Decide applies the gate rules, in order:
//  1. protected path without a token redirects to login carrying the path;
//  2. login or signup with a token redirects to the home path;
//  3. anything else is allowed.
func (g *Gate) Decide(path string, hasToken bool) Decision {
	normalized := normalize(path)
	if !hasToken && g.isProtected(normalized) && !g.isPublic(normalized) {
		return Decision{Action: Redirect, Location: g.loginRedirect(path)}
	}
	if hasToken && (normalized == g.login || normalized == g.signup) {
		return Decision{Action: Redirect, Location: g.home}
	}
	return Decision{Action: Allow}
}

// Middleware runs the gate in front of next. Paths excluded by the route
// matcher bypass the gate entirely.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	if next == nil {
		next = http.NotFoundHandler()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.matcher.Excluded(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		_, hasToken := ExtractToken(r)
		decision := g.Decide(r.URL.Path, hasToken)
		if decision.Action == Redirect {
			httpx.WriteRedirect(w, r, decision.Location)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (g *Gate) isPublic(normalized string) bool {
	if _, ok := g.public[normalized]; ok {
		return true
	}
	for _, prefix := range g.publicPrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return true
		}
	}
	return false
}

func (g *Gate) isProtected(normalized string) bool {
	return normalized == g.protectedRoot || strings.HasPrefix(normalized, g.protectedRoot+"/")
}

func (g *Gate) loginRedirect(requested string) string {
	query := url.Values{}
	query.Set(routepath.RedirectQueryKey, requested)
	return g.loginTarget + "?" + query.Encode()
}

// normalize lowercases path and drops trailing slashes so "/Login/" and
// "/login" classify the same way. The empty path is the root.
func normalize(path string) string {
	path = strings.ToLower(strings.TrimSpace(path))
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		return "/"
	}
	return trimmed
}
