// Package i18n resolves the request language and localizes portal copy.
package i18n

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam overrides the language for one request.
	LangParam = "lang"
	// LangCookieName remembers an explicit language choice.
	LangCookieName = "crm_lang"
)

var (
	supported = []language.Tag{language.AmericanEnglish, language.BrazilianPortuguese}
	matcher   = language.NewMatcher(supported)
)

// Default returns the fallback language.
func Default() language.Tag {
	return language.AmericanEnglish
}

// Supported returns the languages the portal ships copy for.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Match maps any tag onto a supported language.
func Match(tags ...language.Tag) language.Tag {
	if len(tags) == 0 {
		return Default()
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default()
	}
	return supported[idx]
}

// ParseTag parses raw and maps it onto a supported language.
func ParseTag(raw string) (language.Tag, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Default(), false
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return Default(), false
	}
	return Match(tag), true
}

// Resolve picks the language for r: the lang query parameter, then the
// language cookie, then Accept-Language. The boolean reports whether the
// choice came from the query and should be persisted.
func Resolve(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}
	if tag, ok := ParseTag(r.URL.Query().Get(LangParam)); ok {
		return tag, true
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return Match(tags...), false
		}
	}
	return Default(), false
}

// SetLanguageCookie persists tag for later requests.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// Localizer formats copy for one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// For builds a localizer for tag.
func For(tag language.Tag) Localizer {
	tag = Match(tag)
	return Localizer{tag: tag, printer: message.NewPrinter(tag)}
}

// Tag returns the localizer language.
func (l Localizer) Tag() language.Tag {
	if l.printer == nil {
		return Default()
	}
	return l.tag
}

// T returns the localized text for key. Keys missing from the language
// fall back to English, and unknown keys are returned as-is.
func (l Localizer) T(key string, args ...any) string {
	if l.printer != nil {
		if value := strings.TrimSpace(l.printer.Sprintf(key, args...)); value != "" && value != key {
			return value
		}
	}
	if fallback, ok := english[key]; ok {
		return fmt.Sprintf(fallback, args...)
	}
	return key
}
