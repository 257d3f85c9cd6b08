package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/crmportal/internal/services/portal/module"
	"github.com/louisbranch/crmportal/internal/services/portal/platform/sessioncookie"
	"github.com/louisbranch/crmportal/internal/services/portal/principal"
)

type stubModule struct {
	id     string
	prefix string
	err    error
	body   string
}

func (m stubModule) ID() string { return m.id }

func (m stubModule) Mount() (module.Mount, error) {
	if m.err != nil {
		return module.Mount{}, m.err
	}
	body := m.body
	return module.Mount{Prefix: m.prefix, Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := principal.FromContext(r.Context())
		_, _ = w.Write([]byte(body + " token=" + p.Token))
	})}, nil
}

func TestComposeMountsPublicAndProtected(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{
		PublicModules:    []module.Module{stubModule{id: "public", prefix: "/", body: "public"}},
		ProtectedModules: []module.Module{stubModule{id: "contacts", prefix: "/portal/contacts/", body: "contacts"}},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	for _, path := range []string{"/portal/contacts", "/portal/contacts/", "/portal/contacts/42"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "tok-1"})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if got := rr.Body.String(); got != "contacts token=tok-1" {
			t.Fatalf("%s body = %q, want %q", path, got, "contacts token=tok-1")
		}
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/faq", nil))
	if got := rr.Body.String(); got != "public token=" {
		t.Fatalf("public body = %q", got)
	}
}

func TestComposeProtectedRedirectsAnonymous(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{
		ProtectedModules: []module.Module{stubModule{id: "tasks", prefix: "/portal/tasks/"}},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/portal/tasks", nil))
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if got := rr.Header().Get("Location"); got != "/login?redirect=%2Fportal%2Ftasks" {
		t.Fatalf("Location = %q", got)
	}
}

func TestComposeRejectsBadMounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input ComposeInput
		want  string
	}{
		{
			name:  "protected prefix in public group",
			input: ComposeInput{PublicModules: []module.Module{stubModule{id: "x", prefix: "/portal/x/"}}},
			want:  "protected prefix",
		},
		{
			name:  "public prefix in protected group",
			input: ComposeInput{ProtectedModules: []module.Module{stubModule{id: "x", prefix: "/x/"}}},
			want:  "must mount under /portal/",
		},
		{
			name: "duplicate prefix",
			input: ComposeInput{ProtectedModules: []module.Module{
				stubModule{id: "a", prefix: "/portal/a/"},
				stubModule{id: "b", prefix: "/portal/a/"},
			}},
			want: "duplicates prefix",
		},
		{
			name:  "missing trailing slash",
			input: ComposeInput{PublicModules: []module.Module{stubModule{id: "x", prefix: "/faq"}}},
			want:  "must end with /",
		},
		{
			name:  "mount error",
			input: ComposeInput{PublicModules: []module.Module{stubModule{id: "x", err: errors.New("no deps")}}},
			want:  "no deps",
		},
		{
			name:  "nil module",
			input: ComposeInput{PublicModules: []module.Module{nil}},
			want:  "public module is nil",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Compose(tc.input)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Compose() error = %v, want containing %q", err, tc.want)
			}
		})
	}
}

func TestComposeRejectsCrossOriginCookieMutation(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{
		PublicModules: []module.Module{stubModule{id: "public", prefix: "/", body: "ok"}},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "http://portal.example/logout", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "tok-1"})
	req.Header.Set("Origin", "http://evil.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("cross-origin status = %d, want %d", rr.Code, http.StatusForbidden)
	}

	req = httptest.NewRequest(http.MethodPost, "http://portal.example/logout", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "tok-1"})
	req.Header.Set("Origin", "http://portal.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("same-origin status = %d, want %d", rr.Code, http.StatusOK)
	}

	req = httptest.NewRequest(http.MethodPost, "http://portal.example/login", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("cookieless status = %d, want %d", rr.Code, http.StatusOK)
	}
}
