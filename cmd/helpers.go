package cmd

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ziadkadry99/folio/internal/bootstrap"
	"github.com/ziadkadry99/folio/internal/config"
	"github.com/ziadkadry99/folio/internal/fetch"
	"github.com/ziadkadry99/folio/internal/logger"
	"github.com/ziadkadry99/folio/internal/reveal"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `folio init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger initializes the global logger; --verbose forces debug level.
func newLogger(cfg *config.Config) zerolog.Logger {
	lc := cfg.Log
	if verbose {
		lc.Level = "debug"
	}
	return logger.Init(lc)
}

// newRunner builds the page runner for cfg.
func newRunner(cfg *config.Config, log zerolog.Logger) (*bootstrap.Runner, error) {
	f, err := fetch.New(cfg.DataSource)
	if err != nil {
		return nil, err
	}
	return &bootstrap.Runner{
		Fetcher:      f,
		Capabilities: reveal.Capabilities{IntersectionObserver: cfg.Reveal.Observer},
		Threshold:    cfg.Reveal.Threshold,
		ScriptPath:   cfg.Reveal.Script,
		Logger:       log,
	}, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
