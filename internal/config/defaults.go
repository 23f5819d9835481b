package config

import (
	"slices"

	"github.com/ziadkadry99/folio/internal/logger"
	"github.com/ziadkadry99/folio/internal/reveal"
)

// DefaultStatic are glob patterns, relative to the site dir, copied verbatim
// into the build output.
var DefaultStatic = []string{
	"assets/**",
	"data/**",
	"images/**",
	"*.css",
	"*.ico",
}

// DefaultExcludes are never copied.
var DefaultExcludes = []string{
	".git/**",
	"**/.DS_Store",
	"*.md",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteDir:    "site",
		DataSource: "site",
		OutputDir:  "public",
		Static:     slices.Clone(DefaultStatic),
		Exclude:    slices.Clone(DefaultExcludes),
		Reveal: RevealConfig{
			Observer:  true,
			Threshold: reveal.DefaultThreshold,
			Script:    reveal.DefaultScriptPath,
		},
		Pages: PagesConfig{
			Home: HomePage{
				Shell:    "index.html",
				Hero:     "data/home/hero.json",
				About:    "data/home/about.json",
				News:     "data/home/news.json",
				Doing:    "data/home/doing.json",
				Research: "data/home/research.json",
				Contact:  "data/home/contact.json",
			},
			Notes: DocumentPage{
				Shell: "notes.html",
				Data:  "data/notes/sections.json",
			},
			Research: DocumentPage{
				Shell: "research.html",
				Data:  "data/research/sections.json",
			},
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Log: logger.Config{
			Level:  "info",
			Format: "pretty",
		},
	}
}
