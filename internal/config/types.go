package config

import "time"

// Config is the top-level inkwell configuration, corresponding to inkwell.yaml.
type Config struct {
	Site    SiteConfig    `yaml:"site" koanf:"site"`
	Server  ServerConfig  `yaml:"server" koanf:"server"`
	Content ContentConfig `yaml:"content" koanf:"content"`
	Reading ReadingConfig `yaml:"reading" koanf:"reading"`
	Dev     DevConfig     `yaml:"dev" koanf:"dev"`
	Build   BuildConfig   `yaml:"build" koanf:"build"`
}

// SiteConfig is the chrome shown on every page
type SiteConfig struct {
	Title   string `yaml:"title" koanf:"title"`
	Tagline string `yaml:"tagline" koanf:"tagline"`
	// Owner appears in the footer copyright line
	Owner string       `yaml:"owner" koanf:"owner"`
	Logo  string       `yaml:"logo" koanf:"logo"`
	Links []LinkConfig `yaml:"links" koanf:"links"`
}

// LinkConfig is a navbar entry
type LinkConfig struct {
	Label string `yaml:"label" koanf:"label"`
	Href  string `yaml:"href" koanf:"href"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host string `yaml:"host" koanf:"host"`
	Port int    `yaml:"port" koanf:"port"`
	// CacheTTL is how long rendered pages are reused; 0 disables caching
	CacheTTL        time.Duration `yaml:"cache_ttl" koanf:"cache_ttl"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" koanf:"shutdown_timeout"`
	// StaticDir holds images, styles and the WASM client
	StaticDir string `yaml:"static_dir" koanf:"static_dir"`
}

// ContentConfig controls where articles come from
type ContentConfig struct {
	// Dir is a content root on disk; empty uses the articles compiled into the binary
	Dir            string   `yaml:"dir" koanf:"dir"`
	Posts          []string `yaml:"posts" koanf:"posts"`
	Pages          []string `yaml:"pages" koanf:"pages"`
	Drafts         bool     `yaml:"drafts" koanf:"drafts"`
	HighlightStyle string   `yaml:"highlight_style" koanf:"highlight_style"`
}

// ReadingConfig parameterizes the reading behaviors
type ReadingConfig struct {
	SpyThreshold       float64 `yaml:"spy_threshold" koanf:"spy_threshold"`
	BackToTopThreshold float64 `yaml:"back_to_top_threshold" koanf:"back_to_top_threshold"`
	Placeholder        string  `yaml:"placeholder" koanf:"placeholder"`
	ImageWidth         int     `yaml:"image_width" koanf:"image_width"`
	ImageHeight        int     `yaml:"image_height" koanf:"image_height"`
	ZoomWidth          int     `yaml:"zoom_width" koanf:"zoom_width"`
	ZoomHeight         int     `yaml:"zoom_height" koanf:"zoom_height"`
}

// DevConfig contains development server configuration
type DevConfig struct {
	// Debounce coalesces bursts of file events into one reload
	Debounce   time.Duration `yaml:"debounce" koanf:"debounce"`
	LiveReload bool          `yaml:"live_reload" koanf:"live_reload"`
}

// BuildConfig contains static export configuration
type BuildConfig struct {
	OutputDir string `yaml:"output_dir" koanf:"output_dir"`
}
