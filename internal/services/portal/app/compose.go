// Package app assembles portal modules into one HTTP handler.
package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/louisbranch/crmportal/internal/services/portal/module"
	"github.com/louisbranch/crmportal/internal/services/portal/platform/httpx"
	"github.com/louisbranch/crmportal/internal/services/portal/platform/requestmeta"
	"github.com/louisbranch/crmportal/internal/services/portal/platform/sessioncookie"
	"github.com/louisbranch/crmportal/internal/services/portal/principal"
	"github.com/louisbranch/crmportal/internal/services/portal/routepath"
)

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	Principals          *principal.Resolver
	PublicModules       []module.Module
	ProtectedModules    []module.Module
	RequestSchemePolicy requestmeta.SchemePolicy
}

// Compose builds the root handler. Public modules must stay outside the
// portal area and protected modules must mount under it.
func Compose(input ComposeInput) (http.Handler, error) {
	if input.Principals == nil {
		input.Principals = principal.NewResolver()
	}
	root := http.NewServeMux()
	seen := make(map[string]string)

	for _, feature := range input.PublicModules {
		if feature == nil {
			return nil, fmt.Errorf("public module is nil")
		}
		if err := mountPublicModule(root, feature, seen); err != nil {
			return nil, err
		}
	}

	protect := wrapProtectedModule(input.Principals)
	for _, feature := range input.ProtectedModules {
		if feature == nil {
			return nil, fmt.Errorf("protected module is nil")
		}
		if err := mountProtectedModule(root, feature, seen, protect); err != nil {
			return nil, err
		}
	}

	return httpx.Chain(root,
		input.Principals.Middleware,
		requireCookieSessionSameOrigin(input.RequestSchemePolicy),
	), nil
}

func mountModule(root *http.ServeMux, feature module.Module, handler http.Handler, prefix string, seen map[string]string) error {
	if previous, ok := seen[prefix]; ok {
		return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
	}
	seen[prefix] = feature.ID()
	root.Handle(prefix, handler)
	return nil
}

func mountPublicModule(root *http.ServeMux, feature module.Module, seen map[string]string) error {
	mount, prefix, err := resolveMount(feature)
	if err != nil {
		return err
	}
	if isProtectedPrefix(prefix) {
		return fmt.Errorf("module %q has protected prefix %q in public group", feature.ID(), prefix)
	}
	return mountModule(root, feature, mount.Handler, prefix, seen)
}

func mountProtectedModule(root *http.ServeMux, feature module.Module, seen map[string]string, wrap httpx.Middleware) error {
	mount, prefix, err := resolveMount(feature)
	if err != nil {
		return err
	}
	if !isProtectedPrefix(prefix) {
		return fmt.Errorf("module %q must mount under %s, got %q", feature.ID(), routepath.PortalPrefix, prefix)
	}
	handler := wrap(mount.Handler)
	if err := mountModule(root, feature, handler, prefix, seen); err != nil {
		return err
	}
	// "/portal/contacts/" also answers "/portal/contacts".
	if alias := strings.TrimSuffix(prefix, "/"); alias != "" {
		if err := mountModule(root, feature, handler, alias, seen); err != nil {
			return err
		}
	}
	return nil
}

func isProtectedPrefix(prefix string) bool {
	return strings.HasPrefix(prefix, routepath.PortalPrefix)
}

func resolveMount(feature module.Module) (module.Mount, string, error) {
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if err := validatePrefix(mount.Prefix); err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
	}
	if mount.Handler == nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, mount.Prefix, nil
}

func validatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("prefix is required")
	case strings.TrimSpace(prefix) != prefix:
		return fmt.Errorf("prefix must not include surrounding whitespace")
	case !strings.HasPrefix(prefix, "/"):
		return fmt.Errorf("prefix must begin with /")
	case !strings.HasSuffix(prefix, "/"):
		return fmt.Errorf("prefix must end with /")
	}
	return nil
}

// wrapProtectedModule re-checks authentication behind the gate so a
// protected module never runs for an anonymous request.
func wrapProtectedModule(resolver *principal.Resolver) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !resolver.FromRequest(r).Authenticated() {
				httpx.WriteRedirect(w, r, routepath.LoginWithRedirect(r.URL.Path))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireCookieSessionSameOrigin rejects cookie-authenticated mutations
// that cannot prove they came from the portal's own origin.
func requireCookieSessionSameOrigin(policy requestmeta.SchemePolicy) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutationMethod(r) || !hasSessionCookie(r) {
				next.ServeHTTP(w, r)
				return
			}
			if !requestmeta.HasSameOriginProof(r, policy) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isMutationMethod(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func hasSessionCookie(r *http.Request) bool {
	_, ok := sessioncookie.Read(r)
	return ok
}
