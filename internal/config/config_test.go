package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if cfg.PollInterval == "" {
		t.Error("expected poll_interval to be set")
	}
	if cfg.Feed.Language == "" || cfg.Feed.Country == "" || cfg.Feed.Edition == "" {
		t.Errorf("expected feed locale defaults, got %+v", cfg.Feed)
	}
}

func TestPollDuration(t *testing.T) {
	cfg := &Config{PollInterval: "30s"}
	if d := cfg.PollDuration(); d != 30*time.Second {
		t.Errorf("expected 30s, got %v", d)
	}

	cfg.PollInterval = "invalid"
	if d := cfg.PollDuration(); d != time.Minute {
		t.Errorf("expected 1m default for invalid interval, got %v", d)
	}

	cfg.PollInterval = "-5s"
	if d := cfg.PollDuration(); d != time.Minute {
		t.Errorf("expected 1m default for negative interval, got %v", d)
	}
}

func TestFetchTimeoutDuration(t *testing.T) {
	cfg := &Config{FetchTimeout: "5s"}
	if d := cfg.FetchTimeoutDuration(); d != 5*time.Second {
		t.Errorf("expected 5s, got %v", d)
	}

	cfg.FetchTimeout = ""
	if d := cfg.FetchTimeoutDuration(); d != 20*time.Second {
		t.Errorf("expected 20s default, got %v", d)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
poll_interval: 90s
feed:
  language: en-GB
  country: GB
  edition: "GB:en"
terms:
  - rust
  - golang
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PollDuration() != 90*time.Second {
		t.Errorf("expected 90s interval, got %v", cfg.PollDuration())
	}
	if cfg.Feed.Country != "GB" {
		t.Errorf("expected GB, got %q", cfg.Feed.Country)
	}
	if len(cfg.Terms) != 2 {
		t.Errorf("expected 2 terms, got %d", len(cfg.Terms))
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PollDuration() != time.Minute {
		t.Errorf("expected default 1m interval, got %v", cfg.PollDuration())
	}

	// Defaults should have been written for next run
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected defaults written to %s: %v", path, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		err  bool
	}{
		{"empty", Config{}, false},
		{"bad interval", Config{PollInterval: "soon"}, true},
		{"bad timeout", Config{FetchTimeout: "later"}, true},
		{"too many terms", Config{Terms: []string{"a", "b", "c", "d"}}, true},
		{"blank term", Config{Terms: []string{"a", "  "}}, true},
		{"three terms", Config{Terms: []string{"a", "b", "c"}}, false},
	}
	for _, tt := range tests {
		err := validate(&tt.cfg)
		if tt.err && err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
		if !tt.err && err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
		}
	}
}
