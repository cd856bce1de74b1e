package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Server contains the connection settings for the WebODM server.
type Server struct {
	URL                 string `toml:"url"`
	Username            string `toml:"username"`
	RequestTimeoutSecs  int    `toml:"request_timeout_seconds"`
	PollIntervalSeconds int    `toml:"poll_interval_seconds"`
}

// Download contains settings for asset retrieval.
type Download struct {
	Dir string `toml:"dir"`
}

// Processing contains default task options applied when the caller
// supplies none.
type Processing struct {
	DefaultOptions map[string]string `toml:"default_options"`
}

// Config is the full settings file.
type Config struct {
	Server     Server     `toml:"server"`
	Download   Download   `toml:"download"`
	Processing Processing `toml:"processing"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	downloadDir := "webodm-downloads"
	if home, err := os.UserHomeDir(); err == nil {
		downloadDir = filepath.Join(home, "Downloads", "webodm")
	}
	return Config{
		Server: Server{
			URL:                 "http://localhost:8000",
			RequestTimeoutSecs:  30,
			PollIntervalSeconds: 3,
		},
		Download: Download{Dir: downloadDir},
	}
}

// DefaultPath returns the standard location of the settings file.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(configDir, "webodm", "config.toml"), nil
}

// Load reads the settings file at path. A missing file yields defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks field-level constraints.
func (c *Config) Validate() error {
	serverURL := strings.TrimSpace(c.Server.URL)
	if serverURL == "" {
		return errors.New("server.url must not be empty")
	}
	parsed, err := url.Parse(serverURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("server.url %q is not a valid URL", c.Server.URL)
	}
	if c.Server.RequestTimeoutSecs < 0 {
		return errors.New("server.request_timeout_seconds must not be negative")
	}
	if c.Server.PollIntervalSeconds < 1 {
		return errors.New("server.poll_interval_seconds must be at least 1")
	}
	return nil
}

// RequestTimeout returns the HTTP timeout as a duration; zero disables it.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSecs) * time.Second
}

// PollInterval returns the completion-poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Server.PollIntervalSeconds) * time.Second
}
