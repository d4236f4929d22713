package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultSourceTimeout = 30 * time.Second

// SourceConfig holds the static per-retailer settings.
type SourceConfig struct {
	Enabled        bool   `yaml:"enabled"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout is the adapter's self-imposed fetch deadline.
func (s SourceConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return defaultSourceTimeout
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Sources is the static source and category routing configuration.
// The category mapping is fixed for the life of the process.
type Sources struct {
	Sources    map[string]SourceConfig `yaml:"sources"`
	Categories map[string][]string     `yaml:"categories"`
}

func LoadSources(path string) (*Sources, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources config: %w", err)
	}

	var cfg Sources
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse sources config: %w", err)
	}

	if len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("sources config %s defines no categories", path)
	}
	for category, names := range cfg.Categories {
		if len(names) == 0 {
			return nil, fmt.Errorf("category %q defines no sources", category)
		}
		for _, name := range names {
			if _, ok := cfg.Sources[name]; !ok {
				return nil, fmt.Errorf("category %q references undefined source %q", category, name)
			}
		}
	}

	return &cfg, nil
}
