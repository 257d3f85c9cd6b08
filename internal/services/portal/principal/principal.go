// Package principal reads the signed-in identity out of the portal access
// token so views can pick which actions to render.
//
// The resolved role only drives UI decisions. The CRM API enforces the real
// authorization on every call made with the token.
package principal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/louisbranch/crmportal/internal/services/portal/gate"
	"github.com/louisbranch/crmportal/internal/services/portal/permission"
)

// Principal is the identity carried by an access token.
type Principal struct {
	UserID      string
	DisplayName string
	Email       string
	// RawRole is the role claim exactly as issued.
	RawRole string
	// Role is set only when RoleKnown is true.
	Role      permission.Role
	RoleKnown bool
	Token     string
}

// Authenticated reports whether the principal came from a token.
func (p Principal) Authenticated() bool {
	return p.Token != ""
}

// Name returns the best display label for the principal.
func (p Principal) Name() string {
	for _, candidate := range []string{p.DisplayName, p.Email, p.UserID} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// ErrTokenMissing is returned when no token was supplied.
var ErrTokenMissing = errors.New("access token is required")

type accessClaims struct {
	jwt.RegisteredClaims
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Resolver turns access tokens into principals.
type Resolver struct {
	secret []byte
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHMACSecret makes the resolver verify HS256 signatures and standard
// time claims before trusting any claim.
func WithHMACSecret(secret string) Option {
	return func(r *Resolver) {
		if secret = strings.TrimSpace(secret); secret != "" {
			r.secret = []byte(secret)
		}
	}
}

// NewResolver builds a resolver. Without WithHMACSecret, claims are read
// without signature verification.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Verifies reports whether the resolver checks token signatures.
func (r *Resolver) Verifies() bool {
	return r != nil && len(r.secret) > 0
}

// Resolve parses token into a principal.
func (r *Resolver) Resolve(token string) (Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Principal{}, ErrTokenMissing
	}
	var claims accessClaims
	if r.Verifies() {
		_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
			return r.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			return Principal{}, fmt.Errorf("verify access token: %w", err)
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
			return Principal{}, fmt.Errorf("parse access token: %w", err)
		}
	}

	p := Principal{
		UserID:      strings.TrimSpace(claims.Subject),
		DisplayName: strings.TrimSpace(claims.Name),
		Email:       strings.TrimSpace(claims.Email),
		RawRole:     claims.Role,
		Token:       token,
	}
	p.Role, p.RoleKnown = permission.ParseRole(claims.Role)
	return p, nil
}

type contextKey struct{}

// WithPrincipal returns ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the principal stored in ctx, or the zero principal.
func FromContext(ctx context.Context) Principal {
	if ctx == nil {
		return Principal{}
	}
	p, _ := ctx.Value(contextKey{}).(Principal)
	return p
}

// FromRequest resolves the principal attached to r, falling back to the
// request token when no middleware ran.
func (r *Resolver) FromRequest(req *http.Request) Principal {
	if req == nil {
		return Principal{}
	}
	if p := FromContext(req.Context()); p.Authenticated() {
		return p
	}
	token, ok := gate.ExtractToken(req)
	if !ok {
		return Principal{}
	}
	p, err := r.Resolve(token)
	if err != nil {
		return Principal{Token: token}
	}
	return p
}

// Middleware attaches the request principal to the request context.
// Unreadable tokens still produce an authenticated principal without a
// role, so every capability check fails closed.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	if next == nil {
		next = http.NotFoundHandler()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		p := r.FromRequest(req)
		next.ServeHTTP(w, req.WithContext(WithPrincipal(req.Context(), p)))
	})
}
