// Package config loads the observer configuration file: a default
// observing site plus named presets, in YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	kosmorrolib "github.com/Kosmorro/lib"
)

// Site is one observing location.
type Site struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Timezone  float64 `yaml:"timezone"`
}

// Position returns the site as a library position.
func (s Site) Position() kosmorrolib.Position {
	return kosmorrolib.Position{Latitude: s.Latitude, Longitude: s.Longitude}
}

// Config is the full configuration file.
type Config struct {
	Default Site   `yaml:"default"`
	Sites   []Site `yaml:"sites"`
}

// Default returns the configuration used when no file exists: the
// Greenwich observatory at UTC.
func Default() *Config {
	return &Config{
		Default: Site{Name: "greenwich", Latitude: 51.4769, Longitude: 0},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "kosmorro.yml"
	}
	return filepath.Join(dir, "kosmorro", "config.yml")
}

// Load reads and validates a configuration file. A missing file is not
// an error: the defaults apply.
func Load(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	return Parse(buf)
}

// Parse decodes and validates configuration bytes.
func Parse(buf []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if err := c.Default.Position().Validate(); err != nil {
		return fmt.Errorf("config: default site: %w", err)
	}
	for _, s := range c.Sites {
		if s.Name == "" {
			return fmt.Errorf("config: every site needs a name")
		}
		if err := s.Position().Validate(); err != nil {
			return fmt.Errorf("config: site %s: %w", s.Name, err)
		}
	}
	return nil
}

// Site resolves a named preset. The empty name resolves to the default
// site.
func (c *Config) Site(name string) (Site, error) {
	if name == "" {
		return c.Default, nil
	}
	for _, s := range c.Sites {
		if s.Name == name {
			return s, nil
		}
	}
	return Site{}, fmt.Errorf("config: unknown site %q", name)
}
