package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.URL != "http://localhost:8000" {
		t.Errorf("unexpected default server url: %q", cfg.Server.URL)
	}
	if cfg.PollInterval() != 3*time.Second {
		t.Errorf("unexpected default poll interval: %v", cfg.PollInterval())
	}
	if cfg.Download.Dir == "" {
		t.Error("default download dir should not be empty")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
url = "https://odm.example.com"
username = "alice"
request_timeout_seconds = 60
poll_interval_seconds = 5

[download]
dir = "/data/surveys"

[processing.default_options]
dsm = "true"
pc-quality = "high"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.URL != "https://odm.example.com" {
		t.Errorf("unexpected server url: %q", cfg.Server.URL)
	}
	if cfg.Server.Username != "alice" {
		t.Errorf("unexpected username: %q", cfg.Server.Username)
	}
	if cfg.RequestTimeout() != time.Minute {
		t.Errorf("unexpected timeout: %v", cfg.RequestTimeout())
	}
	if cfg.Download.Dir != "/data/surveys" {
		t.Errorf("unexpected download dir: %q", cfg.Download.Dir)
	}
	if cfg.Processing.DefaultOptions["pc-quality"] != "high" {
		t.Errorf("unexpected default options: %v", cfg.Processing.DefaultOptions)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad url", "[server]\nurl = \"not a url\"\npoll_interval_seconds = 3\n"},
		{"empty url", "[server]\nurl = \"\"\npoll_interval_seconds = 3\n"},
		{"zero poll interval", "[server]\nurl = \"http://x:8000\"\npoll_interval_seconds = 0\n"},
		{"malformed toml", "[server\nurl ="},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(test.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
