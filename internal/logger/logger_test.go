package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kidandcat/projectview/internal/config"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		env  string
		want zerolog.Level
	}{
		{config.EnvLocal, zerolog.TraceLevel},
		{config.EnvDev, zerolog.DebugLevel},
		{config.EnvProd, zerolog.InfoLevel},
	}
	for _, tt := range tests {
		got, err := Level(tt.env)
		if err != nil {
			t.Fatalf("Level(%q): %v", tt.env, err)
		}
		if got != tt.want {
			t.Fatalf("Level(%q) = %v, want %v", tt.env, got, tt.want)
		}
	}
	if _, err := Level("staging"); err == nil {
		t.Fatal("expected error for unknown env")
	}
}

func TestNewProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.EnvProd, &buf)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug().Msg("hidden")
	log.Info().Str("component", "api").Msg("started")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if record["message"] != "started" || record["component"] != "api" {
		t.Fatalf("unexpected record: %v", record)
	}
	if _, ok := record["timestamp"]; !ok {
		t.Fatalf("missing timestamp: %v", record)
	}
}

func TestNewLocalUsesConsoleWriter(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.EnvLocal, &buf)
	if err != nil {
		t.Fatal(err)
	}
	log.Trace().Msg("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("trace message missing: %q", buf.String())
	}
	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Fatalf("expected console output, got JSON: %q", buf.String())
	}
}
