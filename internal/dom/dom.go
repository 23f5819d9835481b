// Package dom is a small mount-point document model over a parsed HTML
// shell. Renderers address elements by id; missing ids are ignored.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// AnimateAttr marks elements eligible for the scroll reveal.
const AnimateAttr = "data-animate"

// Patch is one pending write to a mount point.
type Patch struct {
	ID     string
	Markup string
	Text   bool // set Markup as text content instead of parsing it
}

// HTML returns a patch that replaces the children of id with markup.
func HTML(id, markup string) Patch { return Patch{ID: id, Markup: markup} }

// Text returns a patch that replaces the children of id with text.
func Text(id, text string) Patch { return Patch{ID: id, Markup: text, Text: true} }

// Document wraps a parsed HTML page.
type Document struct {
	root *html.Node
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString is Parse for an in-memory page.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ByID returns the first element with the given id, or nil.
func (d *Document) ByID(id string) *html.Node {
	var found *html.Node
	d.walk(func(n *html.Node) bool {
		if n.Type == html.ElementNode && Attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// SetHTML replaces the content of element id with the parsed markup. It
// reports whether the element exists.
func (d *Document) SetHTML(id, markup string) (bool, error) {
	el := d.ByID(id)
	if el == nil {
		return false, nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), el)
	if err != nil {
		return true, fmt.Errorf("parsing markup for #%s: %w", id, err)
	}
	removeChildren(el)
	for _, n := range nodes {
		el.AppendChild(n)
	}
	return true, nil
}

// Apply writes every patch in order. Patches whose mount point is absent
// are skipped. All markup is parsed before the first write, so a parse
// error leaves the document untouched.
func (d *Document) Apply(patches []Patch) error {
	type write struct {
		el    *html.Node
		nodes []*html.Node
	}
	writes := make([]write, 0, len(patches))
	for _, p := range patches {
		el := d.ByID(p.ID)
		if el == nil {
			continue
		}
		if p.Text {
			writes = append(writes, write{el: el, nodes: []*html.Node{{Type: html.TextNode, Data: p.Markup}}})
			continue
		}
		nodes, err := html.ParseFragment(strings.NewReader(p.Markup), el)
		if err != nil {
			return fmt.Errorf("parsing markup for #%s: %w", p.ID, err)
		}
		writes = append(writes, write{el: el, nodes: nodes})
	}
	for _, w := range writes {
		removeChildren(w.el)
		for _, n := range w.nodes {
			w.el.AppendChild(n)
		}
	}
	return nil
}

// Marked returns every element carrying attr, in document order.
func (d *Document) Marked(attr string) []*html.Node {
	var out []*html.Node
	d.walk(func(n *html.Node) bool {
		if n.Type == html.ElementNode && HasAttr(n, attr) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// AppendScript adds <script src=src defer> to the end of <body> unless a
// script with the same src is already present.
func (d *Document) AppendScript(src string) {
	for _, s := range d.elements(atom.Script) {
		if Attr(s, "src") == src {
			return
		}
	}
	body := d.first(atom.Body)
	if body == nil {
		return
	}
	body.AppendChild(&html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Script,
		Data:     "script",
		Attr: []html.Attribute{
			{Key: "src", Val: src},
			{Key: "defer"},
		},
	})
}

// AppendInlineScript adds an inline <script> with body js to <body>.
func (d *Document) AppendInlineScript(js string) {
	body := d.first(atom.Body)
	if body == nil {
		return
	}
	script := &html.Node{Type: html.ElementNode, DataAtom: atom.Script, Data: "script"}
	script.AppendChild(&html.Node{Type: html.TextNode, Data: js})
	body.AppendChild(script)
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, returning "" on error.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// InnerHTML renders the children of element id.
func (d *Document) InnerHTML(id string) string {
	el := d.ByID(id)
	if el == nil {
		return ""
	}
	var buf bytes.Buffer
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

func (d *Document) first(a atom.Atom) *html.Node {
	els := d.elements(a)
	if len(els) == 0 {
		return nil
	}
	return els[0]
}

func (d *Document) elements(a atom.Atom) []*html.Node {
	var out []*html.Node
	d.walk(func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == a {
			out = append(out, n)
		}
		return true
	})
	return out
}

// walk visits nodes depth-first in document order until fn returns false.
func (d *Document) walk(fn func(*html.Node) bool) {
	stack := []*html.Node{d.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			return
		}
		for c := n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}
