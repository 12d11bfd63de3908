package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Hide behaviours
const (
	HideQuit    = "quit"
	HideSuspend = "suspend"
)

// Config represents the application configuration
type Config struct {
	Version int             `toml:"version"`
	Backend BackendSettings `toml:"backend"`
	UI      UISettings      `toml:"ui"`
	Log     LogSettings     `toml:"log"`
}

// BackendSettings points the launcher at the search service
type BackendSettings struct {
	URL     string `toml:"url"`
	Timeout string `toml:"timeout"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Debounce       string `toml:"debounce"`
	ScrollSuppress string `toml:"scroll_suppress"`
	WheelLines     int    `toml:"wheel_lines"`
	OnHide         string `toml:"on_hide"`
}

// LogSettings controls where diagnostics go
type LogSettings struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Defaults
const (
	DefaultBackendURL     = "http://127.0.0.1:7878"
	DefaultTimeout        = 5 * time.Second
	DefaultDebounce       = 100 * time.Millisecond
	DefaultScrollSuppress = 150 * time.Millisecond
	DefaultWheelLines     = 3
)

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service rooted in the user config dir
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "quickbar", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service for an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, falling back to defaults when the file is missing
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Backend: BackendSettings{
			URL:     DefaultBackendURL,
			Timeout: DefaultTimeout.String(),
		},
		UI: UISettings{
			Debounce:       DefaultDebounce.String(),
			ScrollSuppress: DefaultScrollSuppress.String(),
			WheelLines:     DefaultWheelLines,
			OnHide:         HideQuit,
		},
		Log: LogSettings{
			File:  defaultLogFile(),
			Level: "info",
		},
	}
}

func (c *Config) applyDefaults() {
	if c.Backend.URL == "" {
		c.Backend.URL = DefaultBackendURL
	}
	if c.UI.WheelLines <= 0 {
		c.UI.WheelLines = DefaultWheelLines
	}
	if c.UI.OnHide != HideSuspend {
		c.UI.OnHide = HideQuit
	}
	if c.Log.File == "" {
		c.Log.File = defaultLogFile()
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// BackendTimeout returns the per-request timeout
func (c *Config) BackendTimeout() time.Duration {
	return parseDuration(c.Backend.Timeout, DefaultTimeout)
}

// DebounceDelay returns the quiet period of the query dispatcher
func (c *Config) DebounceDelay() time.Duration {
	return parseDuration(c.UI.Debounce, DefaultDebounce)
}

// ScrollSuppressWindow returns how long hover selection stays disabled after a wheel event
func (c *Config) ScrollSuppressWindow() time.Duration {
	return parseDuration(c.UI.ScrollSuppress, DefaultScrollSuppress)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "quickbar.log"
	}
	return filepath.Join(dir, "quickbar", "quickbar.log")
}
