package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultRefreshInterval is how often the UI rediscovers sessions when no
// hook event arrives.
const DefaultRefreshInterval = 2 * time.Second

// Config holds sessioner configuration.
type Config struct {
	// IncludeNewSessionEntry puts a "New session" entry at the top of the list.
	IncludeNewSessionEntry bool          `yaml:"include_new_session_entry"`
	RefreshInterval        time.Duration `yaml:"refresh_interval"`
	DatabasePath           string        `yaml:"database_path"`
	EventsDir              string        `yaml:"events_dir"`
	LogPath                string        `yaml:"log_path"`
	LogLevel               string        `yaml:"log_level"` // "debug", "info", "warn", "error"
	// TmuxConf is where `sessioner install --persist` writes hook registrations.
	TmuxConf string `yaml:"tmux_conf"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		IncludeNewSessionEntry: true,
		RefreshInterval:        DefaultRefreshInterval,
		DatabasePath:           "~/.sessioner/sessioner.db",
		EventsDir:              "~/.sessioner/events",
		LogPath:                "~/.sessioner/sessioner.log",
		LogLevel:               "info",
		TmuxConf:               "~/.tmux.conf",
	}
}

// Path returns the default path of the config file.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".sessioner", "config.yaml")
}

// LoadFrom reads the config from the given path, or returns defaults if not
// found or invalid. Fields missing from the file keep their defaults.
func LoadFrom(path string) Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	loaded := DefaultConfig()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return cfg
	}
	return loaded.normalize()
}

// normalize replaces out-of-range values with their defaults.
func (c Config) normalize() Config {
	def := DefaultConfig()
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = def.RefreshInterval
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		c.LogLevel = def.LogLevel
	}
	if c.DatabasePath == "" {
		c.DatabasePath = def.DatabasePath
	}
	if c.EventsDir == "" {
		c.EventsDir = def.EventsDir
	}
	if c.LogPath == "" {
		c.LogPath = def.LogPath
	}
	if c.TmuxConf == "" {
		c.TmuxConf = def.TmuxConf
	}
	return c
}

// SaveTo writes the config to the given path.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Load reads the config from disk, or returns defaults if not found.
func Load() Config {
	return LoadFrom(Path())
}

// Expand expands a leading ~ to the home directory.
func Expand(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, p[1:])
	}
	return p
}

// DatabaseFile returns the expanded registry database path.
func (c Config) DatabaseFile() string { return Expand(c.DatabasePath) }

// EventsDirectory returns the expanded hook events directory.
func (c Config) EventsDirectory() string { return Expand(c.EventsDir) }

// LogFile returns the expanded log file path.
func (c Config) LogFile() string { return Expand(c.LogPath) }

// TmuxConfFile returns the expanded tmux config path.
func (c Config) TmuxConfFile() string { return Expand(c.TmuxConf) }
