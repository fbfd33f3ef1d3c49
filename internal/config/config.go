// Package config loads pane-relay configuration from file and environment.
//
// Precedence (highest to lowest):
//  1. Environment variables (PANE_RELAY_*)
//  2. Config file
//  3. Built-in defaults
//
// Config file search order:
//  1. .pane-relay.yaml in current directory
//  2. ~/.config/pane-relay/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all pane-relay configuration.
type Config struct {
	// Session boundary
	Mux        string `yaml:"mux"`        // multiplexer name (empty: auto-detect)
	Session    string `yaml:"session"`    // tmux target: session name or session:window.pane
	Scrollback int    `yaml:"scrollback"` // history lines included in each capture

	// Mirror and injection timing
	Poll        string `yaml:"poll"`         // Go duration string, e.g. "400ms"
	SendTimeout string `yaml:"send_timeout"` // Go duration string, e.g. "5s"

	// HTTP server
	Addr string `yaml:"addr"` // listen address (empty: all interfaces)
	Port int    `yaml:"port"`

	// Command catalog sources
	SkillsDir      string `yaml:"skills_dir"`
	PluginCacheDir string `yaml:"plugin_cache_dir"`

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"` // Comma-separated key=value pairs

	// Parsed durations (not from YAML, set after loading)
	PollInterval        time.Duration `yaml:"-"`
	SendTimeoutDuration time.Duration `yaml:"-"`

	// ConfigFile is the path to the config file that was loaded (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		Session:        "claude",
		Scrollback:     200,
		Poll:           "400ms",
		SendTimeout:    "5s",
		Port:           8888,
		SkillsDir:      filepath.Join(homeDir(), ".claude", "skills"),
		PluginCacheDir: filepath.Join(homeDir(), ".claude", "plugins", "cache"),
	}
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	// Try to load config file
	if path, data, err := findConfigFile(); err == nil {
		var file fileConfig
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		mergeFile(cfg, &file)
	}

	// Environment variables override everything
	mergeEnv(cfg)

	// Parse durations
	var err error
	cfg.PollInterval, err = parseDuration(cfg.Poll, 400*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("invalid poll interval %q: %w", cfg.Poll, err)
	}
	cfg.SendTimeoutDuration, err = parseDuration(cfg.SendTimeout, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid send timeout %q: %w", cfg.SendTimeout, err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	// 1. Current directory
	if data, err := os.ReadFile(".pane-relay.yaml"); err == nil {
		return ".pane-relay.yaml", data, nil
	}

	// 2. XDG config dir / ~/.config
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "pane-relay", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}

	return "", nil, fmt.Errorf("no config file found")
}

// fileConfig mirrors the YAML config file. Scrollback is a pointer so an
// explicit "scrollback: 0" (visible region only) is distinguishable from
// the field being absent.
type fileConfig struct {
	Mux            string `yaml:"mux"`
	Session        string `yaml:"session"`
	Scrollback     *int   `yaml:"scrollback"`
	Poll           string `yaml:"poll"`
	SendTimeout    string `yaml:"send_timeout"`
	Addr           string `yaml:"addr"`
	Port           int    `yaml:"port"`
	SkillsDir      string `yaml:"skills_dir"`
	PluginCacheDir string `yaml:"plugin_cache_dir"`
	OTELEndpoint   string `yaml:"otel_endpoint"`
	OTELHeaders    string `yaml:"otel_headers"`
}

// mergeFile applies set file values onto cfg.
func mergeFile(cfg *Config, file *fileConfig) {
	if file.Mux != "" {
		cfg.Mux = file.Mux
	}
	if file.Session != "" {
		cfg.Session = file.Session
	}
	if file.Scrollback != nil && *file.Scrollback >= 0 {
		cfg.Scrollback = *file.Scrollback
	}
	if file.Poll != "" {
		cfg.Poll = file.Poll
	}
	if file.SendTimeout != "" {
		cfg.SendTimeout = file.SendTimeout
	}
	if file.Addr != "" {
		cfg.Addr = file.Addr
	}
	if file.Port > 0 {
		cfg.Port = file.Port
	}
	if file.SkillsDir != "" {
		cfg.SkillsDir = file.SkillsDir
	}
	if file.PluginCacheDir != "" {
		cfg.PluginCacheDir = file.PluginCacheDir
	}
	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config) {
	if v := os.Getenv("PANE_RELAY_MUX"); v != "" {
		cfg.Mux = v
	}
	if v := os.Getenv("PANE_RELAY_SESSION"); v != "" {
		cfg.Session = v
	}
	if v := os.Getenv("PANE_RELAY_SCROLLBACK"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Scrollback = n
		}
	}
	if v := os.Getenv("PANE_RELAY_POLL"); v != "" {
		cfg.Poll = v
	}
	if v := os.Getenv("PANE_RELAY_SEND_TIMEOUT"); v != "" {
		cfg.SendTimeout = v
	}
	if v := os.Getenv("PANE_RELAY_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("PANE_RELAY_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Port = n
		}
	}
	if v := os.Getenv("PANE_RELAY_SKILLS_DIR"); v != "" {
		cfg.SkillsDir = v
	}
	if v := os.Getenv("PANE_RELAY_PLUGIN_CACHE_DIR"); v != "" {
		cfg.PluginCacheDir = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}
}

// parseDuration parses a duration string. Empty string returns the fallback.
func parseDuration(s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return d, nil
}

// homeDir returns the user home directory, or "." if it cannot be resolved.
// Catalog scans on a bogus directory simply find nothing, matching the
// swallow-and-continue contract of the catalog builder.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
