// Package config provides configuration loading and defaults for the designer
// server.
//
// Configuration is read from a TOML file. Missing keys keep their defaults and
// a missing file yields [DefaultConfig]. A few environment variables override
// file values; see [Config.ApplyEnv].
package config

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/suprajagandikota3-max/designer-app/internal/fonts"
	imagepkg "github.com/suprajagandikota3-max/designer-app/internal/image"
	"github.com/suprajagandikota3-max/designer-app/internal/layout"
	"github.com/suprajagandikota3-max/designer-app/internal/suggest"
	"github.com/suprajagandikota3-max/designer-app/internal/util"
)

// ///////////////////////////////////////////////
// Configuration Types
// ///////////////////////////////////////////////

// Config represents the top-level application configuration.
type Config struct {
	// Server holds HTTP listener and session settings.
	Server ServerConfig `toml:"server"`
	// Canvas holds form defaults and allowed ranges for renders.
	Canvas CanvasConfig `toml:"canvas"`
	// Fonts holds font discovery settings.
	Fonts FontsConfig `toml:"fonts"`
	// Suggest holds text suggestion service settings.
	Suggest SuggestConfig `toml:"suggest"`
	// Output holds optional on-disk output of the last design.
	Output OutputConfig `toml:"output"`
	// Log holds logging settings.
	Log LogConfig `toml:"log"`
}

// ServerConfig holds HTTP listener and session settings.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`
	// SessionTTL is how long an idle session is kept (e.g. "2h").
	SessionTTL Duration `toml:"session_ttl"`
}

// Range is an inclusive integer range.
type Range struct {
	Min int `toml:"min"`
	Max int `toml:"max"`
}

// Contains reports whether v lies in the range.
func (r Range) Contains(v int) bool { return v >= r.Min && v <= r.Max }

// CanvasConfig holds render defaults and bounds.
type CanvasConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	FontSize   int    `toml:"font_size"`
	Padding    int    `toml:"padding"`
	Alignment  string `toml:"alignment"`
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	// Font is the default font name; empty uses the built-in font.
	Font string `toml:"font"`

	WidthRange    Range `toml:"width_range"`
	HeightRange   Range `toml:"height_range"`
	FontSizeRange Range `toml:"font_size_range"`
	// MaxPadding bounds the padding field. Padding above half the canvas
	// width is allowed and places Left/Right text partly off-canvas.
	MaxPadding int `toml:"max_padding"`
}

// FontsConfig holds font discovery settings.
type FontsConfig struct {
	// Dir is scanned for font files; empty disables named fonts.
	Dir string `toml:"dir"`
	// Pattern is a doublestar glob relative to Dir.
	Pattern string `toml:"pattern"`
	// Watch reloads fonts when Dir changes.
	Watch bool `toml:"watch"`
}

// SuggestConfig holds text suggestion service settings.
type SuggestConfig struct {
	// APIKey enables the hosted service. OPENAI_API_KEY is used when empty.
	APIKey   string   `toml:"api_key"`
	Endpoint string   `toml:"endpoint"`
	Model    string   `toml:"model"`
	Timeout  Duration `toml:"timeout"`
	RetryMax int      `toml:"retry_max"`
	// TableFile replaces the built-in fallback table with a CSV file.
	TableFile string `toml:"table_file"`
}

// OutputConfig holds optional on-disk output of the last design.
type OutputConfig struct {
	// Dir receives design.png after every render when set.
	Dir string `toml:"dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `toml:"level"`
	// File is the log file path; empty logs to stderr.
	File string `toml:"file"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation.
	MaxSizeMB int `toml:"max_size_mb"`
}

// Duration wraps time.Duration for TOML strings such as "8s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// ///////////////////////////////////////////////
// Defaults
// ///////////////////////////////////////////////

// DefaultConfig returns a Config with all default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:       ":8080",
			SessionTTL: Duration{2 * time.Hour},
		},
		Canvas: CanvasConfig{
			Width:         800,
			Height:        500,
			FontSize:      40,
			Padding:       20,
			Alignment:     "center",
			Background:    "#000000",
			Foreground:    "#FFFFFF",
			WidthRange:    Range{Min: 400, Max: 1200},
			HeightRange:   Range{Min: 300, Max: 800},
			FontSizeRange: Range{Min: 20, Max: 100},
			MaxPadding:    600,
		},
		Fonts: FontsConfig{
			Dir:     "fonts",
			Pattern: fonts.DefaultPattern,
			Watch:   true,
		},
		Suggest: SuggestConfig{
			Endpoint: suggest.DefaultEndpoint,
			Model:    suggest.DefaultModel,
			Timeout:  Duration{8 * time.Second},
			RetryMax: 1,
		},
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 10,
		},
	}
}

// ///////////////////////////////////////////////
// Loading and Saving
// ///////////////////////////////////////////////

// Load reads and parses the configuration file at path.
// If the file doesn't exist, returns DefaultConfig.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("parse config: unknown keys %s", strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to disk as TOML using atomic file write.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return util.WriteFileAtomic(path, buf.Bytes(), 0o644)
}

// ApplyEnv overlays environment overrides: OPENAI_API_KEY fills an empty
// api_key and PORT replaces the port of server.addr.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if c.Suggest.APIKey == "" {
		c.Suggest.APIKey = getenv("OPENAI_API_KEY")
	}
	if port := getenv("PORT"); port != "" {
		host, _, err := net.SplitHostPort(c.Server.Addr)
		if err != nil {
			host = ""
		}
		c.Server.Addr = net.JoinHostPort(host, port)
	}
}

// ///////////////////////////////////////////////
// Validation
// ///////////////////////////////////////////////

// validLogLevels is the set of accepted log level strings.
var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks that all configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}

	cv := c.Canvas
	for _, r := range []struct {
		name string
		rng  Range
	}{
		{"width_range", cv.WidthRange},
		{"height_range", cv.HeightRange},
		{"font_size_range", cv.FontSizeRange},
	} {
		if r.rng.Min <= 0 || r.rng.Max < r.rng.Min {
			return fmt.Errorf("invalid canvas.%s [%d, %d]", r.name, r.rng.Min, r.rng.Max)
		}
	}
	if !cv.WidthRange.Contains(cv.Width) {
		return fmt.Errorf("canvas.width %d outside [%d, %d]", cv.Width, cv.WidthRange.Min, cv.WidthRange.Max)
	}
	if !cv.HeightRange.Contains(cv.Height) {
		return fmt.Errorf("canvas.height %d outside [%d, %d]", cv.Height, cv.HeightRange.Min, cv.HeightRange.Max)
	}
	if !cv.FontSizeRange.Contains(cv.FontSize) {
		return fmt.Errorf("canvas.font_size %d outside [%d, %d]", cv.FontSize, cv.FontSizeRange.Min, cv.FontSizeRange.Max)
	}
	if cv.MaxPadding < 0 || cv.Padding < 0 || cv.Padding > cv.MaxPadding {
		return fmt.Errorf("canvas.padding %d outside [0, %d]", cv.Padding, cv.MaxPadding)
	}
	if _, err := layout.ParseAlignment(cv.Alignment); err != nil {
		return fmt.Errorf("canvas.alignment: %w", err)
	}
	if _, err := imagepkg.ParseHexColor(cv.Background); err != nil {
		return fmt.Errorf("canvas.background: %w", err)
	}
	if _, err := imagepkg.ParseHexColor(cv.Foreground); err != nil {
		return fmt.Errorf("canvas.foreground: %w", err)
	}

	if c.Suggest.Timeout.Duration <= 0 {
		return fmt.Errorf("suggest.timeout must be positive")
	}
	if c.Suggest.RetryMax < 0 {
		return fmt.Errorf("suggest.retry_max must not be negative")
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level %q: must be trace, debug, info, warn, or error", c.Log.Level)
	}
	if c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be positive")
	}
	return nil
}
