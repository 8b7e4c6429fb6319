package web

import "testing"

func TestParseSettings(t *testing.T) {
	s, err := ParseSettings("http://localhost:8000", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.APIOrigin != "http://localhost:8000" || s.ProjectID != 1 {
		t.Fatalf("unexpected settings: %+v", s)
	}

	env := s.env()
	if env[envAPIOrigin] != "http://localhost:8000" || env[envProjectID] != "1" || env[envMarkdown] != "false" {
		t.Fatalf("env round trip: %v", env)
	}

	tests := []struct{ origin, id string }{
		{"", "1"},
		{"http://localhost:8000", ""},
		{"http://localhost:8000", "x"},
		{"http://localhost:8000", "-2"},
	}
	for _, tt := range tests {
		if _, err := ParseSettings(tt.origin, tt.id); err == nil {
			t.Fatalf("ParseSettings(%q, %q): expected error", tt.origin, tt.id)
		}
	}
}

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv(envAPIOrigin, "http://localhost:8000")
	t.Setenv(envProjectID, "2")
	t.Setenv(envMarkdown, "true")

	s, err := SettingsFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != (Settings{APIOrigin: "http://localhost:8000", ProjectID: 2, Markdown: true}) {
		t.Fatalf("unexpected settings: %+v", s)
	}

	t.Setenv(envMarkdown, "sometimes")
	if _, err := SettingsFromEnv(); err == nil {
		t.Fatal("expected error for invalid markdown flag")
	}
}
