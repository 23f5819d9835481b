package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ziadkadry99/folio/internal/bootstrap"
	"github.com/ziadkadry99/folio/internal/config"
	"github.com/ziadkadry99/folio/internal/dom"
	"github.com/ziadkadry99/folio/internal/render"
)

// PageSpec binds a page to the shell file it is rendered into. The output
// file has the same relative path as the shell.
type PageSpec struct {
	Shell string
	Page  bootstrap.Page
}

// Pages returns the home, notes and research pages described by cfg.
func Pages(cfg *config.Config) []PageSpec {
	r := render.New(render.Options{Markdown: cfg.Markdown})
	home := cfg.Pages.Home
	return []PageSpec{
		{
			Shell: home.Shell,
			Page: bootstrap.HomePage(r, render.HomePaths{
				Hero:     home.Hero,
				About:    home.About,
				News:     home.News,
				Doing:    home.Doing,
				Research: home.Research,
				Contact:  home.Contact,
			}),
		},
		{
			Shell: cfg.Pages.Notes.Shell,
			Page:  bootstrap.NotesPage(r, cfg.Pages.Notes.Data),
		},
		{
			Shell: cfg.Pages.Research.Shell,
			Page:  bootstrap.ResearchPage(r, cfg.Pages.Research.Data),
		},
	}
}

// PageResult is the outcome of rendering one page.
type PageResult struct {
	Name     string `json:"name"`
	Output   string `json:"output"`
	Fallback bool   `json:"fallback"`
	Error    string `json:"error,omitempty"`
	Observed int    `json:"observed"`
	Revealed int    `json:"revealed"`
}

// renderShell loads the shell of spec from siteDir and runs the page
// bootstrap over it. A content failure is not an error here: the document
// carries the fallback and the result records it. Errors are reserved for
// a shell that cannot be read.
func renderShell(ctx context.Context, runner *bootstrap.Runner, siteDir string, spec PageSpec) (*dom.Document, PageResult, error) {
	res := PageResult{Name: spec.Page.Name, Output: filepath.ToSlash(spec.Shell)}

	f, err := os.Open(filepath.Join(siteDir, filepath.FromSlash(spec.Shell)))
	if err != nil {
		return nil, res, fmt.Errorf("opening shell for %s: %w", spec.Page.Name, err)
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return nil, res, fmt.Errorf("shell %s: %w", spec.Shell, err)
	}

	rep, runErr := runner.Run(ctx, spec.Page, doc)
	if runErr != nil {
		res.Fallback = true
		res.Error = runErr.Error()
	}
	res.Observed = rep.Observed
	res.Revealed = rep.Revealed
	return doc, res, nil
}
