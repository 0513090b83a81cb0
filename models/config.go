package models

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ScrapeConfig holds runtime configuration for a scrape run.
// Values come from an optional YAML file and are overridden by CLI flags.
type ScrapeConfig struct {
	BaseURL        string    `yaml:"base_url"`
	OutputPath     string    `yaml:"output"`
	DBPath         string    `yaml:"db,omitempty"`
	CacheDir       string    `yaml:"cache_dir,omitempty"`
	MaxAge         string    `yaml:"max_age,omitempty"` // time.ParseDuration format
	UserAgent      string    `yaml:"user_agent,omitempty"`
	DetectLanguage bool      `yaml:"detect_language,omitempty"`
	Selectors      Selectors `yaml:"selectors,omitempty"`
}

// Selectors names the CSS selectors used to find quote markup.
// Empty fields fall back to the parser defaults.
type Selectors struct {
	Quote  string `yaml:"quote,omitempty"`
	Text   string `yaml:"text,omitempty"`
	Author string `yaml:"author,omitempty"`
	Tag    string `yaml:"tag,omitempty"`
	Next   string `yaml:"next,omitempty"`
}

// LoadConfig reads a ScrapeConfig from a YAML file.
func LoadConfig(path string) (*ScrapeConfig, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg ScrapeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}
