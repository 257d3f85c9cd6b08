package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func TestResolvePrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		target    string
		cookie    string
		accept    string
		want      language.Tag
		persisted bool
	}{
		{name: "default", target: "/", want: language.AmericanEnglish},
		{name: "accept language", target: "/", accept: "pt-PT,pt;q=0.9", want: language.BrazilianPortuguese},
		{name: "cookie beats header", target: "/", cookie: "en-US", accept: "pt-BR", want: language.AmericanEnglish},
		{name: "query beats cookie", target: "/?lang=pt-BR", cookie: "en-US", want: language.BrazilianPortuguese, persisted: true},
		{name: "bad query ignored", target: "/?lang=%21%21", accept: "pt-BR", want: language.BrazilianPortuguese},
		{name: "unsupported header", target: "/", accept: "ja-JP", want: language.AmericanEnglish},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			got, persisted := Resolve(req)
			if got != tc.want || persisted != tc.persisted {
				t.Fatalf("Resolve() = (%s, %t), want (%s, %t)", got, persisted, tc.want, tc.persisted)
			}
		})
	}
}

func TestResolveNilRequest(t *testing.T) {
	t.Parallel()

	if got, _ := Resolve(nil); got != Default() {
		t.Fatalf("Resolve(nil) = %s, want %s", got, Default())
	}
}

func TestLocalizerTranslates(t *testing.T) {
	t.Parallel()

	en := For(language.AmericanEnglish)
	pt := For(language.BrazilianPortuguese)
	if got := en.T("nav.logout"); got != "Sign out" {
		t.Fatalf("en nav.logout = %q, want %q", got, "Sign out")
	}
	if got := pt.T("nav.logout"); got != "Sair" {
		t.Fatalf("pt nav.logout = %q, want %q", got, "Sair")
	}
	if got := pt.T("pager.summary", 2, 5); got != "Página 2 de 5" {
		t.Fatalf("pt pager.summary = %q, want %q", got, "Página 2 de 5")
	}
}

func TestLocalizerFallbacks(t *testing.T) {
	t.Parallel()

	if got := (Localizer{}).T("nav.faq"); got != "FAQ" {
		t.Fatalf("zero localizer nav.faq = %q, want %q", got, "FAQ")
	}
	if got := For(language.BrazilianPortuguese).T("missing.key"); got != "missing.key" {
		t.Fatalf("missing key = %q, want key echoed", got)
	}
}

func TestCatalogsCoverSameKeys(t *testing.T) {
	t.Parallel()

	for key := range english {
		if _, ok := portuguese[key]; !ok {
			t.Fatalf("pt-BR missing key %q", key)
		}
	}
	for key := range portuguese {
		if _, ok := english[key]; !ok {
			t.Fatalf("en-US missing key %q", key)
		}
	}
}

func TestSetLanguageCookie(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	SetLanguageCookie(rr, language.BrazilianPortuguese)
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != LangCookieName || cookies[0].Value != "pt-BR" {
		t.Fatalf("cookies = %+v", cookies)
	}
}
