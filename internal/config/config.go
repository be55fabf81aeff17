package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// MaxTerms is the most terms a single tracking session may follow.
const MaxTerms = 3

// Feed holds the Google News locale parameters (the hl, gl and ceid query
// values of the RSS search endpoint).
type Feed struct {
	Language string `yaml:"language"`
	Country  string `yaml:"country"`
	Edition  string `yaml:"edition"`
}

type Config struct {
	PollInterval string   `yaml:"poll_interval"`
	FetchTimeout string   `yaml:"fetch_timeout"`
	Feed         Feed     `yaml:"feed"`
	Terms        []string `yaml:"terms,omitempty"`
}

func (c *Config) PollDuration() time.Duration {
	d, err := time.ParseDuration(c.PollInterval)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

func (c *Config) FetchTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil || d <= 0 {
		return 20 * time.Second
	}
	return d
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newstracker", "config.yaml")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if cfg.PollInterval != "" {
		if _, err := time.ParseDuration(cfg.PollInterval); err != nil {
			return fmt.Errorf("invalid poll_interval %q: %w", cfg.PollInterval, err)
		}
	}
	if cfg.FetchTimeout != "" {
		if _, err := time.ParseDuration(cfg.FetchTimeout); err != nil {
			return fmt.Errorf("invalid fetch_timeout %q: %w", cfg.FetchTimeout, err)
		}
	}
	if len(cfg.Terms) > MaxTerms {
		return fmt.Errorf("at most %d terms may be configured, got %d", MaxTerms, len(cfg.Terms))
	}
	for i, t := range cfg.Terms {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("term %d: must not be blank", i)
		}
	}
	return nil
}
