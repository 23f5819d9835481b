// Package render turns content documents into mount-point patches for the
// home, notes and research pages. Renderers are pure: they never touch a
// document, so a page is either fully patched or not at all.
//
// Text fields are inserted as authored markup (content files may carry
// inline links or emphasis); attribute values are escaped.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/folio/internal/content"
	"github.com/ziadkadry99/folio/internal/dom"
)

// Func renders the fetched bodies of a page, in resource order.
type Func func(bodies []json.RawMessage) ([]dom.Patch, error)

// Options tunes rendering.
type Options struct {
	// Markdown renders paragraph fields as Markdown instead of wrapping
	// them in <p> verbatim.
	Markdown bool
}

// Renderer holds the shared rendering setup.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer for opts.
func New(opts Options) *Renderer {
	r := &Renderer{}
	if opts.Markdown {
		r.md = goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithUnsafe(),
			),
		)
	}
	return r
}

// paragraphs renders one <p> per entry.
func (r *Renderer) paragraphs(items []content.Text) (string, error) {
	var b strings.Builder
	for _, p := range items {
		if r.md == nil {
			fmt.Fprintf(&b, "<p>%s</p>", p)
			continue
		}
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(p), &buf); err != nil {
			return "", fmt.Errorf("converting paragraph: %w", err)
		}
		b.WriteString(strings.TrimSpace(buf.String()))
	}
	return b.String(), nil
}

// attr escapes a value for use inside a double-quoted attribute.
func attr(t content.Text) string {
	return html.EscapeString(string(t))
}

func expectBodies(bodies []json.RawMessage, paths []string) error {
	if len(bodies) != len(paths) {
		return fmt.Errorf("render: got %d documents, want %d", len(bodies), len(paths))
	}
	return nil
}
