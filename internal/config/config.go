package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
// It controls listing behavior, preview budgets, history retention,
// and the UI theme.
type Config struct {
	Listing struct {
		ShowHidden     bool     `yaml:"show_hidden"`     // Include dotfiles in listings
		IgnorePatterns []string `yaml:"ignore_patterns"` // Glob patterns to hide (e.g. "*.pyc")
	} `yaml:"listing"`
	Preview struct {
		MaxLines      int   `yaml:"max_lines"`       // Line cap for text and document previews
		MaxDirEntries int   `yaml:"max_dir_entries"` // Child cap for directory previews
		MaxFileBytes  int64 `yaml:"max_file_bytes"`  // Never read more than this many bytes
	} `yaml:"preview"`
	History struct {
		MaxEntries int `yaml:"max_entries"` // Bounded recency list size
	} `yaml:"history"`
	Theme struct {
		Name      string `yaml:"name"`      // Theme name (default, dark, light, ...)
		Primary   string `yaml:"primary"`   // Directory names, borders
		Emphasis  string `yaml:"emphasis"`  // Selection highlight
		Muted     string `yaml:"muted"`     // Line numbers, truncation markers
		Highlight string `yaml:"highlight"` // Search match highlight
		Warning   string `yaml:"warning"`   // Status line errors
	} `yaml:"theme"`
}

// LoadConfig loads configuration from the default location
// (~/.config/quickswitch/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "quickswitch", "config.yaml")
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	cfg.Listing.ShowHidden = tempCfg.Listing.ShowHidden
	if len(tempCfg.Listing.IgnorePatterns) > 0 {
		cfg.Listing.IgnorePatterns = tempCfg.Listing.IgnorePatterns
	}
	if tempCfg.Preview.MaxLines > 0 {
		cfg.Preview.MaxLines = tempCfg.Preview.MaxLines
	}
	if tempCfg.Preview.MaxDirEntries > 0 {
		cfg.Preview.MaxDirEntries = tempCfg.Preview.MaxDirEntries
	}
	if tempCfg.Preview.MaxFileBytes > 0 {
		cfg.Preview.MaxFileBytes = tempCfg.Preview.MaxFileBytes
	}
	if tempCfg.History.MaxEntries > 0 {
		cfg.History.MaxEntries = tempCfg.History.MaxEntries
	}
	if tempCfg.Theme.Name != "" {
		cfg.ApplyTheme(tempCfg.Theme.Name)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Listing.ShowHidden = false
	cfg.Listing.IgnorePatterns = []string{}

	cfg.Preview.MaxLines = 100
	cfg.Preview.MaxDirEntries = 100
	cfg.Preview.MaxFileBytes = 5 * 1024 * 1024

	cfg.History.MaxEntries = 100

	cfg.ApplyTheme("default")

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
// Returns error if any settings are invalid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	if c.Preview.MaxLines < 1 {
		return fmt.Errorf("preview max_lines must be >= 1")
	}
	if c.Preview.MaxDirEntries < 1 {
		return fmt.Errorf("preview max_dir_entries must be >= 1")
	}
	if c.Preview.MaxFileBytes < 1 {
		return fmt.Errorf("preview max_file_bytes must be >= 1")
	}
	if c.History.MaxEntries < 1 {
		return fmt.Errorf("history max_entries must be >= 1")
	}

	for i, pattern := range c.Listing.IgnorePatterns {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("ignore pattern %d (%q): %w", i, pattern, err)
		}
	}

	return nil
}

// CompiledIgnores compiles the configured ignore patterns. Validate
// guarantees they compile, so errors here only occur on hand-built configs.
func (c *Config) CompiledIgnores() ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(c.Listing.IgnorePatterns))
	for _, pattern := range c.Listing.IgnorePatterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile ignore pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// DataDir returns the per-user data directory for quickswitch, creating
// it if necessary. The QS_DATA_DIR environment variable overrides the
// platform default (~/.local/share/quickswitch on Unix-like systems).
func DataDir() (string, error) {
	if dir := os.Getenv("QS_DATA_DIR"); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
		return dir, nil
	}

	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return os.TempDir(), nil
		}
		base = filepath.Join(home, ".local", "share")
	}

	dir := filepath.Join(base, "quickswitch")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// HistoryPath returns the location of the persisted history database.
func HistoryPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "quickswitch.history.db"), nil
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary":   "39",  // Blue
			"emphasis":  "213", // Purple
			"muted":     "243", // Grey
			"highlight": "220", // Yellow
			"warning":   "196", // Red
		},
		"dark": {
			"primary":   "33",  // Dark Blue
			"emphasis":  "105", // Violet
			"muted":     "240", // Dark Grey
			"highlight": "214", // Dark Yellow
			"warning":   "160", // Dark Red
		},
		"light": {
			"primary":   "117", // Light Blue
			"emphasis":  "135", // Light Purple
			"muted":     "248", // Light Grey
			"highlight": "222", // Light Yellow
			"warning":   "210", // Light Red
		},
		"monochrome": {
			"primary":   "252",
			"emphasis":  "255",
			"muted":     "241",
			"highlight": "248",
			"warning":   "232",
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}

	return themes["default"]
}

// ApplyTheme sets the theme in the configuration.
// It updates the theme colors based on the theme name.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Muted = theme["muted"]
	c.Theme.Highlight = theme["highlight"]
	c.Theme.Warning = theme["warning"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
