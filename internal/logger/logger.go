// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config selects level and output format.
type Config struct {
	Level  string `yaml:"level" koanf:"level"`   // debug, info, warn, error
	Format string `yaml:"format" koanf:"format"` // pretty or json
}

// Init builds a logger from cfg and installs it as zerolog's global logger.
// Unknown levels fall back to info.
func Init(cfg Config) zerolog.Logger {
	return InitWriter(cfg, os.Stderr)
}

// InitWriter is Init with an explicit destination.
func InitWriter(cfg Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger { return zerolog.Nop() }
