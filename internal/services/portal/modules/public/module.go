// Package public serves the unauthenticated portal pages and the session
// entry and exit points.
package public

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/louisbranch/crmportal/internal/services/portal/integration/crmapi"
	"github.com/louisbranch/crmportal/internal/services/portal/module"
	"github.com/louisbranch/crmportal/internal/services/portal/platform/requestmeta"
	"github.com/louisbranch/crmportal/internal/services/portal/routepath"
)

// AuthGateway performs the CRM API calls behind the auth pages.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (crmapi.Session, error)
	Signup(ctx context.Context, input crmapi.SignupInput) (crmapi.Session, error)
	Logout(ctx context.Context, token string) error
}

// SessionForgetter drops state held for a token when it signs out.
type SessionForgetter interface {
	Forget(ctx context.Context, token string)
}

// Config carries public module dependencies.
type Config struct {
	Auth         AuthGateway
	Sessions     SessionForgetter
	SchemePolicy requestmeta.SchemePolicy
	Logger       *log.Logger
}

// Module provides public routes.
type Module struct {
	cfg Config
}

// New returns a public module.
func New(cfg Config) Module {
	return Module{cfg: cfg}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "public" }

// Mount wires public route handlers.
func (m Module) Mount() (module.Mount, error) {
	if m.cfg.Auth == nil {
		return module.Mount{}, errors.New("auth gateway is required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.cfg))
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
