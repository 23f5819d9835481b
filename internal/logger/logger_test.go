package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	l := InitWriter(Config{Level: "warn", Format: "json"}, &buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	l.Info().Msg("hidden")
	l.Error().Str("page", "home").Msg("failed")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if entry["page"] != "home" || entry["message"] != "failed" || entry["level"] != "error" {
		t.Errorf("entry = %v", entry)
	}
}

func TestInitUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := InitWriter(Config{Level: "chatty", Format: "json"}, &buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	if l.GetLevel() != zerolog.InfoLevel {
		t.Errorf("level = %v, want info", l.GetLevel())
	}
}

func TestInitInstallsGlobalLogger(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	})

	var buf bytes.Buffer
	InitWriter(Config{Level: "info", Format: "json"}, &buf)
	log.Info().Msg("from global")

	if !bytes.Contains(buf.Bytes(), []byte(`"message":"from global"`)) {
		t.Errorf("global logger not installed, output = %s", buf.String())
	}
}
