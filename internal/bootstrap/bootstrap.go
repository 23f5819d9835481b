// Package bootstrap runs the fetch, render and animate sequence shared by
// every page, and its single failure boundary.
package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ziadkadry99/folio/internal/dom"
	"github.com/ziadkadry99/folio/internal/render"
	"github.com/ziadkadry99/folio/internal/reveal"
)

// Fetcher loads one JSON document.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (json.RawMessage, error)
}

// Page is everything the bootstrap needs to know about one page.
type Page struct {
	Name         string
	Resources    []string
	Render       render.Func
	PrimaryMount string
	Fallback     string // markup written to PrimaryMount on failure
}

// Report summarizes a successful run.
type Report struct {
	Observed int  // elements left for the client-side observer
	Revealed int  // elements revealed immediately
	Script   bool // whether the reveal script was linked
}

// Runner executes pages. It holds no per-page state and may be shared.
type Runner struct {
	Fetcher      Fetcher
	Capabilities reveal.Capabilities
	Threshold    float64
	ScriptPath   string
	Logger       zerolog.Logger
}

// Run fetches every resource of page concurrently, renders once all have
// arrived, applies the result to doc and engages the reveal animator. On
// any failure nothing from the renderer reaches doc: the error is logged,
// every marked element is revealed, PrimaryMount receives the fallback and
// the error is returned.
func (r *Runner) Run(ctx context.Context, page Page, doc *dom.Document) (Report, error) {
	err := r.load(ctx, page, doc)
	if err == nil {
		return r.animate(doc), nil
	}

	r.Logger.Error().
		Err(err).
		Str("page", page.Name).
		Strs("resources", page.Resources).
		Msg("failed to load page content")

	reveal.RevealAll(doc)
	if _, ferr := doc.SetHTML(page.PrimaryMount, page.Fallback); ferr != nil {
		return Report{}, errors.Join(err, ferr)
	}
	return Report{}, err
}

func (r *Runner) load(ctx context.Context, page Page, doc *dom.Document) error {
	if page.Render == nil {
		return fmt.Errorf("page %s has no renderer", page.Name)
	}
	bodies, err := FetchAll(ctx, r.Fetcher, page.Resources)
	if err != nil {
		return err
	}
	patches, err := page.Render(bodies)
	if err != nil {
		return err
	}
	return doc.Apply(patches)
}

func (r *Runner) animate(doc *dom.Document) Report {
	a := reveal.NewAnimator(r.Threshold)
	var rep Report
	if a.Setup(doc, r.Capabilities) {
		rep.Observed = a.Pending()
		if r.ScriptPath != "" {
			doc.AppendScript(r.ScriptPath)
			rep.Script = true
		}
		return rep
	}
	if !r.Capabilities.IntersectionObserver {
		rep.Revealed = len(doc.Marked(dom.AnimateAttr))
	}
	return rep
}

// FetchAll fetches every path concurrently and waits for all of them. The
// bodies are returned in path order only if every fetch succeeded; the
// error joins every failure.
func FetchAll(ctx context.Context, f Fetcher, paths []string) ([]json.RawMessage, error) {
	bodies := make([]json.RawMessage, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()
			bodies[i], errs[i] = f.Fetch(ctx, p)
		}(i, p)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return bodies, nil
}

// FallbackMessage is the failure notice written to a page's primary mount.
func FallbackMessage(class, hint string) string {
	return fmt.Sprintf(`<p class="%s">Content failed to load. Please check <code>%s</code>.</p>`, class, hint)
}

// Hint names the data files a page expects: the single path, or
// "dir/*.json" when several files share a directory, or the full list.
func Hint(resources []string) string {
	switch len(resources) {
	case 0:
		return ""
	case 1:
		return resources[0]
	}
	dir := path.Dir(resources[0])
	for _, r := range resources[1:] {
		if path.Dir(r) != dir {
			return strings.Join(resources, ", ")
		}
	}
	return dir + "/*.json"
}
