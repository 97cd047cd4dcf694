// Package config loads inkwell.yaml with environment overrides.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory
const DefaultFile = "inkwell.yaml"

// EnvPrefix prefixes environment overrides: INKWELL_SERVER_PORT -> server.port
const EnvPrefix = "INKWELL_"

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Title:   "CyberInsights",
			Tagline: "We Love You Sir Eli!",
			Owner:   "5B's CyberInsights",
			Logo:    "/logo.svg",
			Links: []LinkConfig{
				{Label: "Home", Href: "/"},
				{Label: "About", Href: "/about"},
			},
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CacheTTL:        5 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
			StaticDir:       "public",
		},
		Content: ContentConfig{
			Posts:          []string{"posts/**/*.md"},
			Pages:          []string{"pages/*.md"},
			HighlightStyle: "github",
		},
		Reading: ReadingConfig{
			SpyThreshold:       0.3,
			BackToTopThreshold: 300,
			Placeholder:        "/images/placeholder.jpg",
			ImageWidth:         500,
			ImageHeight:        500,
			ZoomWidth:          800,
			ZoomHeight:         800,
		},
		Dev: DevConfig{
			Debounce:   100 * time.Millisecond,
			LiveReload: true,
		},
		Build: BuildConfig{
			OutputDir: "dist",
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (INKWELL_*). A missing file yields defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// The first underscore after the prefix separates section from key
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.Replace(key, "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Site.Title == "" {
		return fmt.Errorf("site.title is required")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.CacheTTL < 0 {
		return fmt.Errorf("server.cache_ttl must be non-negative")
	}

	r := c.Reading
	if r.SpyThreshold <= 0 || r.SpyThreshold > 1 {
		return fmt.Errorf("reading.spy_threshold %v must be in (0,1]", r.SpyThreshold)
	}
	if r.BackToTopThreshold < 0 {
		return fmt.Errorf("reading.back_to_top_threshold must be non-negative")
	}
	for name, v := range map[string]int{
		"image_width":  r.ImageWidth,
		"image_height": r.ImageHeight,
		"zoom_width":   r.ZoomWidth,
		"zoom_height":  r.ZoomHeight,
	} {
		if v < 0 {
			return fmt.Errorf("reading.%s must be non-negative", name)
		}
	}

	if len(c.Content.Posts) == 0 {
		return fmt.Errorf("content.posts needs at least one pattern")
	}
	if c.Build.OutputDir == "" {
		return fmt.Errorf("build.output_dir is required")
	}
	return nil
}

// Addr is the listen address
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
