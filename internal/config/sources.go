package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source describes one open-data feed to map.
type Source struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind,omitempty"` // "adoptable" or "found"
	URL   string `yaml:"url"`
	Limit int    `yaml:"limit,omitempty"`
}

type catalog struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads the YAML feed catalog at path. Sources without a URL
// are rejected; a missing limit falls back to defaultLimit.
func LoadSources(path string, defaultLimit int) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cat catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("config: parse sources catalog: %w", err)
	}

	for i := range cat.Sources {
		src := &cat.Sources[i]
		if src.URL == "" {
			return nil, fmt.Errorf("config: source %q has no url", src.Name)
		}
		if src.Name == "" {
			src.Name = fmt.Sprintf("source-%d", i+1)
		}
		if src.Limit <= 0 {
			src.Limit = defaultLimit
		}
	}

	return cat.Sources, nil
}
