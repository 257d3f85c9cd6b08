package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// htmlWriter streams markup and keeps the first write error.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTMLWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

func (h *htmlWriter) raw(parts ...string) {
	for _, part := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, part)
	}
}

func (h *htmlWriter) text(value string) {
	h.raw(templ.EscapeString(value))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (h *htmlWriter) href(value string) {
	h.attr("href", string(templ.URL(value)))
}

func (h *htmlWriter) action(value string) {
	h.attr("action", string(templ.URL(value)))
}

func (h *htmlWriter) component(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func (h *htmlWriter) children() {
	h.component(templ.GetChildren(h.ctx))
}

func (h *htmlWriter) link(href, label string) {
	h.raw("<a")
	h.href(href)
	h.raw(">")
	h.text(label)
	h.raw("</a>")
}

func (h *htmlWriter) input(kind, name, label, value string, required bool) {
	h.raw(`<label class="field"><span>`)
	h.text(label)
	h.raw(`</span><input`)
	h.attr("type", kind)
	h.attr("name", name)
	if value != "" {
		h.attr("value", value)
	}
	if required {
		h.raw(" required")
	}
	h.raw("></label>")
}

func (h *htmlWriter) hidden(name, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	h.raw(`<input type="hidden"`)
	h.attr("name", name)
	h.attr("value", value)
	h.raw(">")
}

func (h *htmlWriter) alert(message string) {
	if strings.TrimSpace(message) == "" {
		return
	}
	h.raw(`<p class="alert" role="alert">`)
	h.text(message)
	h.raw("</p>")
}

func render(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		fn(h)
		return h.err
	})
}
