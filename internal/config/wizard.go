package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
)

// shellCandidates are directories commonly holding a hand-written site.
var shellCandidates = []string{"site", "docs", "public_html", "www", "."}

// detectSiteDir returns the first candidate directory that holds an
// index.html shell.
func detectSiteDir() string {
	for _, dir := range shellCandidates {
		if _, err := os.Stat(filepath.Join(dir, "index.html")); err == nil {
			return dir
		}
	}
	return "site"
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to folio! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Site shell directory.
	sitePrompt := promptui.Prompt{
		Label:   "Directory holding the HTML shell (index.html, notes.html, research.html)",
		Default: detectSiteDir(),
	}
	siteDir, err := sitePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site dir: %w", err)
	}
	cfg.SiteDir = siteDir

	// 2. Data source.
	dataPrompt := promptui.Prompt{
		Label:   "Data source (directory or http(s) URL containing data/)",
		Default: siteDir,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("data source is required")
			}
			return nil
		},
	}
	dataSource, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data source: %w", err)
	}
	cfg.DataSource = strings.TrimSpace(dataSource)

	// 3. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the built site",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = outputDir

	// 4. Reveal mode.
	revealPrompt := promptui.Select{
		Label: "Scroll reveal",
		Items: []string{
			"observer — animate elements as they scroll into view",
			"static   — show everything immediately (no script)",
		},
	}
	revealIdx, _, err := revealPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("reveal mode: %w", err)
	}
	cfg.Reveal.Observer = revealIdx == 0

	// 5. Markdown paragraphs.
	mdPrompt := promptui.Select{
		Label: "Paragraph format in content files",
		Items: []string{"html", "markdown"},
	}
	_, mdStr, err := mdPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("paragraph format: %w", err)
	}
	cfg.Markdown = mdStr == "markdown"

	// 6. Static assets.
	staticPrompt := promptui.Prompt{
		Label:   "Static asset patterns copied to the output (comma-separated globs)",
		Default: strings.Join(DefaultStatic, ","),
	}
	staticStr, err := staticPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("static patterns: %w", err)
	}
	cfg.Static = splitAndTrim(staticStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
