package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ziadkadry99/folio/internal/content"
	"github.com/ziadkadry99/folio/internal/dom"
)

const (
	defaultNoteIcon     = "📝"
	defaultDownloadName = "note.pdf"
)

// Notes returns the renderer for the notes page document at path.
func (r *Renderer) Notes(path string) Func {
	return func(bodies []json.RawMessage) ([]dom.Patch, error) {
		if err := expectBodies(bodies, []string{path}); err != nil {
			return nil, err
		}
		var notes content.Notes
		if err := content.Decode(path, bodies[0], &notes); err != nil {
			return nil, err
		}
		return NotesPage(notes), nil
	}
}

// NotesPage renders the incoming-notes list and the section grids.
func NotesPage(n content.Notes) []dom.Patch {
	var incoming strings.Builder
	for _, item := range n.IncomingNotes {
		fmt.Fprintf(&incoming, "<li>%s</li>", item)
	}

	var sections strings.Builder
	for _, section := range n.Sections {
		sections.WriteString(NoteSection(section))
	}

	return []dom.Patch{
		dom.HTML("incoming-notes-list", incoming.String()),
		dom.HTML("notes-sections", sections.String()),
	}
}

// NoteSection renders one titled grid of note cards.
func NoteSection(s content.NoteSection) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<section class="note-section" data-animate><h2 class="section-title">%s</h2><div class="note-grid">`, s.Title)
	for _, item := range s.Items {
		b.WriteString(NoteCard(item))
	}
	b.WriteString(`</div></section>`)
	return b.String()
}

// NoteCard renders a note as a download anchor when it has a file or URL,
// and as a plain block otherwise.
func NoteCard(n content.NoteItem) string {
	inner := fmt.Sprintf(`<div class="note-icon">%s</div>`+
		`<h3 class="note-subject">%s</h3>`+
		`<p class="note-language">%s</p>`,
		n.Icon.Or(defaultNoteIcon), n.Subject, n.Language)

	path := n.DownloadPath()
	if path == "" {
		return `<article class="note-card" data-animate>` + inner + `</article>`
	}
	return fmt.Sprintf(`<a class="note-card" href="%s" download="%s" data-animate>%s</a>`,
		attr(content.Text(path)), attr(content.Text(DownloadName(path))), inner)
}

// DownloadName is the suggested filename for path: the text after the last
// "/", or "note.pdf" when that is empty, with surrounding whitespace
// removed.
func DownloadName(path string) string {
	name := path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		name = path[i+1:]
	}
	if name == "" {
		name = defaultDownloadName
	}
	return strings.TrimSpace(name)
}
