package bootstrap

import (
	"github.com/ziadkadry99/folio/internal/render"
)

// Primary mount points and fallback classes of the three pages.
const (
	HomeMount     = "hero-text"
	NotesMount    = "notes-sections"
	ResearchMount = "scholar-sections"

	homeFallbackClass = "hero-title"
	pageFallbackClass = "scholar-page-subtitle"
)

// HomePage describes the home page for the given document paths.
func HomePage(r *render.Renderer, paths render.HomePaths) Page {
	resources := paths.List()
	return Page{
		Name:         "home",
		Resources:    resources,
		Render:       r.Home(paths),
		PrimaryMount: HomeMount,
		Fallback:     FallbackMessage(homeFallbackClass, Hint(resources)),
	}
}

// NotesPage describes the notes page backed by the document at path.
func NotesPage(r *render.Renderer, path string) Page {
	return Page{
		Name:         "notes",
		Resources:    []string{path},
		Render:       r.Notes(path),
		PrimaryMount: NotesMount,
		Fallback:     FallbackMessage(pageFallbackClass, path),
	}
}

// ResearchPage describes the research page backed by the document at path.
func ResearchPage(r *render.Renderer, path string) Page {
	return Page{
		Name:         "research",
		Resources:    []string{path},
		Render:       r.Research(path),
		PrimaryMount: ResearchMount,
		Fallback:     FallbackMessage(pageFallbackClass, path),
	}
}
