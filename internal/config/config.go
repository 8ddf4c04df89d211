package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds application configuration
type Config struct {
	Layers   LayerConfig       `toml:"layers"`
	Canvas   CanvasConfig      `toml:"canvas"`
	Share    ShareConfig       `toml:"share"`
	Replay   ReplayConfig      `toml:"replay"`
	Settings map[string]string `toml:"settings"`

	// Session settings (not persisted to TOML, overrides persisted settings)
	sessionSettings map[string]string
}

// LayerConfig holds the attributes given to newly added layers
type LayerConfig struct {
	DefaultOpacity float64 `toml:"default_opacity"`
	DefaultX       float64 `toml:"default_x"`
	DefaultY       float64 `toml:"default_y"`
}

// CanvasConfig is the canvas size used when a session does not set one
type CanvasConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// ShareConfig controls share link creation
type ShareConfig struct {
	Origin string `toml:"origin"`
}

// ReplayConfig controls replay timing
type ReplayConfig struct {
	BaseSpeed float64 `toml:"base_speed"` // pixels per second at speed 1
}

// Load loads the config file from the standard location
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil // Return default if can't find config path
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file
func LoadFromFile(filePath string) (*Config, error) {
	// If file doesn't exist, return default config
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from the defaults so missing keys keep their default value
	config := defaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	if config.Settings == nil {
		config.Settings = make(map[string]string)
	}
	config.sessionSettings = make(map[string]string)

	return config, nil
}

func (c *Config) validate() error {
	if c.Layers.DefaultOpacity < 0 || c.Layers.DefaultOpacity > 100 {
		return fmt.Errorf("layers.default_opacity must be between 0 and 100, got %v", c.Layers.DefaultOpacity)
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Replay.BaseSpeed <= 0 {
		return fmt.Errorf("replay.base_speed must be positive, got %v", c.Replay.BaseSpeed)
	}
	for key, value := range c.Settings {
		if IsKnownKey(key) {
			if err := CheckSetting(key, value); err != nil {
				return fmt.Errorf("settings: %w", err)
			}
		}
	}
	return nil
}

// DefaultPath returns the path of the config file in the standard location
func DefaultPath() (string, error) {
	return getConfigPath()
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		Layers: LayerConfig{
			DefaultOpacity: 50,
			DefaultX:       100,
			DefaultY:       100,
		},
		Canvas: CanvasConfig{
			Width:  800,
			Height: 600,
		},
		Share: ShareConfig{
			Origin: "http://localhost:3333",
		},
		Replay: ReplayConfig{
			BaseSpeed: 500,
		},
		Settings:        make(map[string]string),
		sessionSettings: make(map[string]string),
	}
}

// Default returns a fresh copy of the default configuration
func Default() *Config {
	return defaultConfig()
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(home, ".config", "sketchboard")
	return configDir, nil
}

// Save persists the configuration to the standard location
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the configuration to filePath.
// Note: session settings are not persisted
func (c *Config) SaveTo(filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
