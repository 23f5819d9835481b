package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ziadkadry99/folio/internal/content"
	"github.com/ziadkadry99/folio/internal/dom"
)

const (
	defaultNewsTitle   = "Recent News"
	defaultContactIcon = "•"
)

// HomePaths names the six documents of the home page.
type HomePaths struct {
	Hero     string
	About    string
	News     string
	Doing    string
	Research string
	Contact  string
}

// List returns the paths in fetch order, which is also the order Home
// expects its bodies in.
func (p HomePaths) List() []string {
	return []string{p.Hero, p.About, p.News, p.Doing, p.Research, p.Contact}
}

// Home returns the home page renderer. All six documents are decoded before
// any patch is produced.
func (r *Renderer) Home(paths HomePaths) Func {
	return func(bodies []json.RawMessage) ([]dom.Patch, error) {
		list := paths.List()
		if err := expectBodies(bodies, list); err != nil {
			return nil, err
		}

		var (
			hero     content.Hero
			about    content.About
			news     content.News
			doing    content.Doing
			research content.ResearchHome
			contact  content.Contact
		)
		targets := []any{&hero, &about, &news, &doing, &research, &contact}
		for i, target := range targets {
			if err := content.Decode(list[i], bodies[i], target); err != nil {
				return nil, err
			}
		}

		var patches []dom.Patch
		patches = append(patches, Hero(hero)...)
		aboutPatches, err := r.About(about)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", paths.About, err)
		}
		patches = append(patches, aboutPatches...)
		patches = append(patches, NewsItems(news)...)
		patches = append(patches, Doing(doing)...)
		researchPatches, err := r.ResearchHome(research)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", paths.Research, err)
		}
		patches = append(patches, researchPatches...)
		patches = append(patches, Contact(contact)...)
		return patches, nil
	}
}

// Hero renders the title line and the profile image.
func Hero(h content.Hero) []dom.Patch {
	title := fmt.Sprintf(`<p class="hero-title">%s <span>%s</span>, %s</p>`, h.Greeting, h.Name, h.Tagline)
	image := fmt.Sprintf(`<img src="%s" alt="%s" class="hero-image" />`, attr(h.ProfileImage), attr(h.Name))
	return []dom.Patch{
		dom.HTML("hero-text", title),
		dom.HTML("hero-image-wrap", image),
	}
}

// About renders the headline (localized name, mail link, affiliation) and
// the biography paragraphs.
func (r *Renderer) About(a content.About) ([]dom.Patch, error) {
	headline := fmt.Sprintf(`%s | <a href="mailto:%s">%s</a> | %s`,
		WrapCJK(a.NameZh), attr(a.Email), a.Email, a.Affiliation)
	paragraphs, err := r.paragraphs(a.Paragraphs)
	if err != nil {
		return nil, err
	}
	return []dom.Patch{
		dom.HTML("about-headline", headline),
		dom.HTML("about-paragraphs", paragraphs),
	}, nil
}

// Doing renders the current-work cards.
func Doing(d content.Doing) []dom.Patch {
	var b strings.Builder
	for _, item := range d.Items {
		fmt.Fprintf(&b, `<article class="work-card" data-animate>`+
			`<img src="%s" alt="%s" class="card-image" />`+
			`<h3>%s</h3><p>%s</p></article>`,
			attr(item.Image), attr(item.Title), item.Title, item.Description)
	}
	return []dom.Patch{
		dom.HTML("doing-title", string(d.Title)),
		dom.HTML("doing-cards", b.String()),
	}
}

// NewsItems renders the news list; the title defaults to "Recent News".
func NewsItems(n content.News) []dom.Patch {
	var b strings.Builder
	for _, item := range n.Items {
		fmt.Fprintf(&b, `<article class="news-item" data-animate>`+
			`<p class="news-meta">%s</p><p class="news-text">%s</p></article>`,
			item.Date, item.Text)
	}
	return []dom.Patch{
		dom.HTML("news-title", n.Title.Or(defaultNewsTitle)),
		dom.HTML("news-items", b.String()),
	}
}

// ResearchHome renders the home page research summary with a flat bullet
// list.
func (r *Renderer) ResearchHome(rh content.ResearchHome) ([]dom.Patch, error) {
	paragraphs, err := r.paragraphs(rh.Paragraphs)
	if err != nil {
		return nil, err
	}
	var bullets strings.Builder
	for _, bullet := range rh.Bullets {
		fmt.Fprintf(&bullets, "<li>%s</li>", bullet)
	}
	return []dom.Patch{
		dom.HTML("research-lead", string(rh.Lead)),
		dom.HTML("research-paragraphs", paragraphs),
		dom.HTML("research-bullets", bullets.String()),
	}, nil
}

// Contact renders the contact links. Links open in a new tab without
// referrer or opener.
func Contact(c content.Contact) []dom.Patch {
	var b strings.Builder
	for _, item := range c.Items {
		fmt.Fprintf(&b, `<li><span class="contact-icon">%s</span>`+
			`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a></li>`,
			item.Icon.Or(defaultContactIcon), attr(item.URL), item.Label)
	}
	return []dom.Patch{
		dom.HTML("contact-title", string(c.Title)),
		dom.HTML("contact-links", b.String()),
	}
}
