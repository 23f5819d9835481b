package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nested keys: FOLIO_REVEAL__OBSERVER -> reveal.observer.
const EnvPrefix = "FOLIO_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (FOLIO_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validLogFormats is the set of recognized log.format values.
var validLogFormats = map[string]bool{
	"pretty": true,
	"json":   true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.SiteDir == "" {
		return fmt.Errorf("site_dir is required")
	}
	if c.DataSource == "" {
		return fmt.Errorf("data_source is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	if c.Reveal.Threshold <= 0 || c.Reveal.Threshold > 1 {
		return fmt.Errorf("reveal.threshold must be in (0, 1], got %v", c.Reveal.Threshold)
	}
	if c.Reveal.Observer && c.Reveal.Script == "" {
		return fmt.Errorf("reveal.script is required when reveal.observer is enabled")
	}

	home := c.Pages.Home
	for key, v := range map[string]string{
		"pages.home.shell":     home.Shell,
		"pages.home.hero":      home.Hero,
		"pages.home.about":     home.About,
		"pages.home.news":      home.News,
		"pages.home.doing":     home.Doing,
		"pages.home.research":  home.Research,
		"pages.home.contact":   home.Contact,
		"pages.notes.shell":    c.Pages.Notes.Shell,
		"pages.notes.data":     c.Pages.Notes.Data,
		"pages.research.shell": c.Pages.Research.Shell,
		"pages.research.data":  c.Pages.Research.Data,
	} {
		if v == "" {
			return fmt.Errorf("%s is required", key)
		}
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535")
	}

	if c.Log.Format != "" && !validLogFormats[c.Log.Format] {
		return fmt.Errorf("invalid log.format %q: must be one of pretty, json", c.Log.Format)
	}

	return nil
}
