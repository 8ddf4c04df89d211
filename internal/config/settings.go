package config

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Setting keys. Each one overrides the typed field of the same name, first
// from the session (--set) and then from the [settings] table.
const (
	KeyShareOrigin     = "share.origin"
	KeyReplayBaseSpeed = "replay.base_speed"
	KeyCanvasWidth     = "canvas.width"
	KeyCanvasHeight    = "canvas.height"
	KeyLayerOpacity    = "layers.default_opacity"
	KeyLayerX          = "layers.default_x"
	KeyLayerY          = "layers.default_y"
)

// ErrUnknownSetting is returned for keys that are not one of the Key constants
var ErrUnknownSetting = errors.New("unknown setting")

var knownKeys = map[string]bool{
	KeyShareOrigin:     true,
	KeyReplayBaseSpeed: true,
	KeyCanvasWidth:     true,
	KeyCanvasHeight:    true,
	KeyLayerOpacity:    true,
	KeyLayerX:          true,
	KeyLayerY:          true,
}

// Keys returns the known setting keys, sorted
func Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKnownKey reports whether key is one of the Key constants
func IsKnownKey(key string) bool {
	return knownKeys[key]
}

// CheckSetting validates value for key
func CheckSetting(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}

	switch key {
	case KeyShareOrigin:
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
		return nil
	case KeyCanvasWidth, KeyCanvasHeight:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer, got %q", key, value)
		}
		return nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%s must be a number, got %q", key, value)
	}
	switch key {
	case KeyReplayBaseSpeed:
		if f <= 0 {
			return fmt.Errorf("%s must be positive, got %v", key, f)
		}
	case KeyLayerOpacity:
		if f < 0 || f > 100 {
			return fmt.Errorf("%s must be between 0 and 100, got %v", key, f)
		}
	}
	return nil
}

// ParseAssignment splits and validates a "key=value" setting
func ParseAssignment(s string) (key, value string, err error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return "", "", fmt.Errorf("setting %q is not of the form key=value", s)
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if err := CheckSetting(key, value); err != nil {
		return "", "", err
	}
	return key, value, nil
}

// Set sets a session configuration value
func (c *Config) Set(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
	c.sessionSettings[key] = value
}

// Get retrieves a configuration value, checking session settings first, then
// persisted settings, then the typed field for known keys.
// Returns empty string if not found
func (c *Config) Get(key string) string {
	if c.sessionSettings != nil {
		if val, ok := c.sessionSettings[key]; ok {
			return val
		}
	}

	if c.Settings != nil {
		if val, ok := c.Settings[key]; ok {
			return val
		}
	}

	return c.typedValue(key)
}

func (c *Config) typedValue(key string) string {
	formatFloat := func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

	switch key {
	case KeyShareOrigin:
		return c.Share.Origin
	case KeyReplayBaseSpeed:
		return formatFloat(c.Replay.BaseSpeed)
	case KeyCanvasWidth:
		return strconv.Itoa(c.Canvas.Width)
	case KeyCanvasHeight:
		return strconv.Itoa(c.Canvas.Height)
	case KeyLayerOpacity:
		return formatFloat(c.Layers.DefaultOpacity)
	case KeyLayerX:
		return formatFloat(c.Layers.DefaultX)
	case KeyLayerY:
		return formatFloat(c.Layers.DefaultY)
	}
	return ""
}

// GetAll returns the effective value of every known key plus any other
// persisted or session settings. Session settings win.
func (c *Config) GetAll() map[string]string {
	result := make(map[string]string)

	for _, k := range Keys() {
		result[k] = c.typedValue(k)
	}
	for k, v := range c.Settings {
		result[k] = v
	}
	for k, v := range c.sessionSettings {
		result[k] = v
	}

	return result
}

// getFloat returns the setting for key, or fallback when it is not a valid value
func (c *Config) getFloat(key string, fallback float64) float64 {
	value := c.Get(key)
	if err := CheckSetting(key, value); err != nil {
		log.Printf("Ignoring setting: %v", err)
		return fallback
	}
	f, _ := strconv.ParseFloat(value, 64)
	return f
}

func (c *Config) getInt(key string, fallback int) int {
	value := c.Get(key)
	if err := CheckSetting(key, value); err != nil {
		log.Printf("Ignoring setting: %v", err)
		return fallback
	}
	n, _ := strconv.Atoi(value)
	return n
}

// ShareOrigin returns the origin share links are created under
func (c *Config) ShareOrigin() string {
	if origin := c.Get(KeyShareOrigin); strings.TrimSpace(origin) != "" {
		return origin
	}
	return c.Share.Origin
}

// ReplayBaseSpeed returns the pen speed in pixels per second at speed 1
func (c *Config) ReplayBaseSpeed() float64 {
	return c.getFloat(KeyReplayBaseSpeed, c.Replay.BaseSpeed)
}

// CanvasSize returns the canvas size used when a session does not set one
func (c *Config) CanvasSize() (width, height int) {
	return c.getInt(KeyCanvasWidth, c.Canvas.Width), c.getInt(KeyCanvasHeight, c.Canvas.Height)
}

// LayerDefaults returns the opacity and position of newly added layers
func (c *Config) LayerDefaults() (opacity, x, y float64) {
	return c.getFloat(KeyLayerOpacity, c.Layers.DefaultOpacity),
		c.getFloat(KeyLayerX, c.Layers.DefaultX),
		c.getFloat(KeyLayerY, c.Layers.DefaultY)
}
