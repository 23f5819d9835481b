package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ziadkadry99/folio/internal/bootstrap"
	"github.com/ziadkadry99/folio/internal/progress"
	"github.com/ziadkadry99/folio/internal/reveal"
)

// SiteGenerator renders the page shells of SiteDir into OutputDir.
type SiteGenerator struct {
	SiteDir   string
	OutputDir string
	Static    []string // glob patterns copied verbatim
	Exclude   []string // glob patterns never copied
	Pages     []PageSpec
	Runner    *bootstrap.Runner
	Reporter  progress.Reporter
}

// NewSiteGenerator creates a SiteGenerator for the given directories.
func NewSiteGenerator(siteDir, outputDir string, pages []PageSpec, runner *bootstrap.Runner) *SiteGenerator {
	return &SiteGenerator{
		SiteDir:   siteDir,
		OutputDir: outputDir,
		Pages:     pages,
		Runner:    runner,
		Reporter:  progress.Nop{},
	}
}

// Generate builds the full static site: static assets, the reveal script,
// every page and the build manifest. A page whose content fails to load is
// still written (with its fallback) and recorded in the manifest.
func (g *SiteGenerator) Generate(ctx context.Context) (*Manifest, error) {
	if len(g.Pages) == 0 {
		return nil, fmt.Errorf("no pages configured")
	}
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return nil, err
	}

	// Static assets, minus the shells which are rendered below.
	shells := make([]string, 0, len(g.Pages))
	for _, p := range g.Pages {
		shells = append(shells, p.Shell)
	}
	assets, err := CopyStatic(g.SiteDir, g.OutputDir, g.Static, g.Exclude, shells)
	if err != nil {
		return nil, fmt.Errorf("copying static assets: %w", err)
	}

	if g.Runner.Capabilities.IntersectionObserver && g.Runner.ScriptPath != "" {
		scriptPath := filepath.Join(g.OutputDir, filepath.FromSlash(strings.TrimPrefix(g.Runner.ScriptPath, "/")))
		if err := os.MkdirAll(filepath.Dir(scriptPath), 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(scriptPath, []byte(reveal.Script(g.Runner.Threshold)), 0o644); err != nil {
			return nil, err
		}
	}

	manifest := NewManifest()
	manifest.Assets = assets

	g.Reporter.Start(len(g.Pages))
	for i, spec := range g.Pages {
		res, err := g.renderPage(ctx, spec)
		if err != nil {
			g.Reporter.Finish()
			return nil, fmt.Errorf("rendering %s: %w", spec.Shell, err)
		}
		manifest.Pages = append(manifest.Pages, res)
		g.Reporter.Update(i+1, spec.Shell)
	}
	g.Reporter.Finish()

	if err := manifest.Write(filepath.Join(g.OutputDir, ManifestFile)); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}
	return manifest, nil
}

// renderPage renders a single shell to its output file.
func (g *SiteGenerator) renderPage(ctx context.Context, spec PageSpec) (PageResult, error) {
	doc, res, err := renderShell(ctx, g.Runner, g.SiteDir, spec)
	if err != nil {
		return res, err
	}

	outPath := filepath.Join(g.OutputDir, filepath.FromSlash(spec.Shell))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return res, err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return res, err
	}
	defer f.Close()

	return res, doc.Render(f)
}
