// Package content renders the portal's long-form pages from embedded
// Markdown.
package content

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/language"
)

//go:embed faq/*.md
var faqFS embed.FS

const fallbackLocale = "en-US"

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

	faqMu    sync.Mutex
	faqCache = map[string]string{}
)

// FAQ returns the FAQ page body as HTML for tag. Languages without a
// translation get the English page.
func FAQ(tag language.Tag) (string, error) {
	locale := localeFor(tag)
	faqMu.Lock()
	defer faqMu.Unlock()
	if html, ok := faqCache[locale]; ok {
		return html, nil
	}
	source, err := faqFS.ReadFile("faq/" + locale + ".md")
	if err != nil {
		return "", fmt.Errorf("read faq %s: %w", locale, err)
	}
	var buf bytes.Buffer
	if err := markdown.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("render faq %s: %w", locale, err)
	}
	faqCache[locale] = buf.String()
	return faqCache[locale], nil
}

func localeFor(tag language.Tag) string {
	if base, _ := tag.Base(); base.String() == "pt" {
		return "pt-BR"
	}
	return fallbackLocale
}
