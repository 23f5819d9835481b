package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ziadkadry99/folio/internal/content"
	"github.com/ziadkadry99/folio/internal/dom"
)

const metaSeparator = " | "

// Research returns the renderer for the research page document at path.
func (r *Renderer) Research(path string) Func {
	return func(bodies []json.RawMessage) ([]dom.Patch, error) {
		if err := expectBodies(bodies, []string{path}); err != nil {
			return nil, err
		}
		var doc content.Research
		if err := content.Decode(path, bodies[0], &doc); err != nil {
			return nil, err
		}
		return ResearchPage(doc), nil
	}
}

// ResearchPage renders all sections and sets the page footnote as text.
func ResearchPage(doc content.Research) []dom.Patch {
	var b strings.Builder
	for _, section := range doc.Sections {
		fmt.Fprintf(&b, `<section class="scholar-section" data-animate><h2 class="section-title">%s</h2><div class="scholar-entry-list">`, section.Title)
		for _, entry := range section.Entries {
			b.WriteString(ResearchEntry(entry))
		}
		b.WriteString(`</div></section>`)
	}
	return []dom.Patch{
		dom.HTML("scholar-sections", b.String()),
		dom.Text("scholar-page-footnote", string(doc.PageFootnote)),
	}
}

// ResearchEntry renders one publication or project.
func ResearchEntry(e content.ResearchEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<article class="scholar-entry" data-animate><h3 class="scholar-entry-title">%s</h3>`,
		linkOrText(e.Title, e.TitleURL))
	if meta := joinMeta(e.Authors, e.Period); meta != "" {
		fmt.Fprintf(&b, `<p class="scholar-meta">%s</p>`, meta)
	}
	if venue := joinMeta(e.Venue, e.Status); venue != "" {
		fmt.Fprintf(&b, `<p class="scholar-venue">%s</p>`, venue)
	}
	b.WriteString(BulletList(e.Bullets))
	if e.Footnote != "" {
		fmt.Fprintf(&b, `<p class="scholar-footnote">%s</p>`, e.Footnote)
	}
	b.WriteString(`</article>`)
	return b.String()
}

func linkOrText(title, url content.Text) string {
	if url == "" {
		return fmt.Sprintf("<span>%s</span>", title)
	}
	return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`, attr(url), title)
}

func joinMeta(parts ...content.Text) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, string(p))
		}
	}
	return strings.Join(kept, metaSeparator)
}
