package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetOverridesTypedField(t *testing.T) {
	cfg := defaultConfig()

	if got := cfg.Get(KeyShareOrigin); got != "http://localhost:3333" {
		t.Errorf("Get(%s) = %q, want the typed default", KeyShareOrigin, got)
	}

	cfg.Set(KeyShareOrigin, "https://draw.example.com")
	if got := cfg.ShareOrigin(); got != "https://draw.example.com" {
		t.Errorf("ShareOrigin() = %q, want https://draw.example.com", got)
	}
	if cfg.Share.Origin != "http://localhost:3333" {
		t.Errorf("Set must not touch the persisted field, got %q", cfg.Share.Origin)
	}
}

func TestSettingPrecedence(t *testing.T) {
	cfg := defaultConfig()
	cfg.Settings[KeyReplayBaseSpeed] = "250"

	if got := cfg.ReplayBaseSpeed(); got != 250 {
		t.Errorf("ReplayBaseSpeed() = %v, want 250 from [settings]", got)
	}

	cfg.Set(KeyReplayBaseSpeed, "1000")
	if got := cfg.ReplayBaseSpeed(); got != 1000 {
		t.Errorf("ReplayBaseSpeed() = %v, want 1000 from the session", got)
	}
}

func TestTypedAccessors(t *testing.T) {
	cfg := defaultConfig()
	cfg.Set(KeyCanvasWidth, "1024")
	cfg.Set(KeyLayerOpacity, "75")
	cfg.Set(KeyLayerY, "-20")

	if w, h := cfg.CanvasSize(); w != 1024 || h != 600 {
		t.Errorf("CanvasSize() = %dx%d, want 1024x600", w, h)
	}
	if o, x, y := cfg.LayerDefaults(); o != 75 || x != 100 || y != -20 {
		t.Errorf("LayerDefaults() = (%v, %v, %v), want (75, 100, -20)", o, x, y)
	}
}

func TestInvalidSessionValueFallsBack(t *testing.T) {
	cfg := defaultConfig()
	cfg.Set(KeyReplayBaseSpeed, "fast")
	cfg.Set(KeyCanvasHeight, "-1")

	if got := cfg.ReplayBaseSpeed(); got != 500 {
		t.Errorf("ReplayBaseSpeed() = %v, want fallback 500", got)
	}
	if _, h := cfg.CanvasSize(); h != 600 {
		t.Errorf("canvas height = %d, want fallback 600", h)
	}
}

func TestGetAll(t *testing.T) {
	cfg := defaultConfig()
	cfg.Settings["theme"] = "dark"
	cfg.Set(KeyLayerX, "5")

	all := cfg.GetAll()
	if len(all) != len(Keys())+1 {
		t.Errorf("Expected %d settings, got %d: %v", len(Keys())+1, len(all), all)
	}
	if all[KeyLayerX] != "5" {
		t.Errorf("%s = %q, want 5", KeyLayerX, all[KeyLayerX])
	}
	if all[KeyCanvasWidth] != "800" {
		t.Errorf("%s = %q, want 800", KeyCanvasWidth, all[KeyCanvasWidth])
	}
	if all["theme"] != "dark" {
		t.Errorf("theme = %q, want dark", all["theme"])
	}
}

func TestGetAllReturnsACopy(t *testing.T) {
	cfg := defaultConfig()
	cfg.Set(KeyShareOrigin, "https://a.example.com")

	all := cfg.GetAll()
	all[KeyShareOrigin] = "modified"

	if cfg.Get(KeyShareOrigin) != "https://a.example.com" {
		t.Errorf("GetAll() should return a copy, not a reference")
	}
}

func TestNilSessionSettings(t *testing.T) {
	cfg := &Config{}

	cfg.Set(KeyShareOrigin, "https://a.example.com")
	if cfg.Get(KeyShareOrigin) != "https://a.example.com" {
		t.Errorf("Set should initialize nil sessionSettings")
	}

	cfg2 := &Config{}
	if cfg2.Get("unknown") != "" {
		t.Errorf("Get should return empty string for unknown keys")
	}
}

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		input   string
		key     string
		value   string
		wantErr bool
	}{
		{"share.origin=https://draw.example.com", KeyShareOrigin, "https://draw.example.com", false},
		{" replay.base_speed = 250 ", KeyReplayBaseSpeed, "250", false},
		{"layers.default_x=-5.5", KeyLayerX, "-5.5", false},
		{"canvas.width=1024", KeyCanvasWidth, "1024", false},
		{"share.origin", "", "", true},
		{"theme=dark", "", "", true},
		{"share.origin=", "", "", true},
		{"replay.base_speed=0", "", "", true},
		{"replay.base_speed=NaN", "", "", true},
		{"layers.default_opacity=101", "", "", true},
		{"canvas.height=1.5", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			key, value, err := ParseAssignment(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAssignment(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if key != tt.key || value != tt.value {
				t.Errorf("ParseAssignment(%q) = (%q, %q), want (%q, %q)", tt.input, key, value, tt.key, tt.value)
			}
		})
	}

	if _, _, err := ParseAssignment("theme=dark"); !errors.Is(err, ErrUnknownSetting) {
		t.Errorf("unknown key error = %v, want ErrUnknownSetting", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Layers.DefaultOpacity != 50 {
		t.Errorf("Expected default opacity 50, got %v", cfg.Layers.DefaultOpacity)
	}
	if cfg.Layers.DefaultX != 100 || cfg.Layers.DefaultY != 100 {
		t.Errorf("Expected default position (100,100), got (%v,%v)", cfg.Layers.DefaultX, cfg.Layers.DefaultY)
	}
	if cfg.Canvas.Width != 800 || cfg.Canvas.Height != 600 {
		t.Errorf("Expected default canvas 800x600, got %dx%d", cfg.Canvas.Width, cfg.Canvas.Height)
	}

	if cfg.sessionSettings == nil {
		t.Errorf("defaultConfig should initialize sessionSettings")
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Run("missing file gives defaults", func(t *testing.T) {
		cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Share.Origin != "http://localhost:3333" {
			t.Errorf("Expected default origin, got %q", cfg.Share.Origin)
		}
	})

	t.Run("partial file keeps other defaults", func(t *testing.T) {
		path := writeTempConfig(t, "[share]\norigin = \"https://draw.example.com\"\n\n[layers]\ndefault_opacity = 80.0\n\n[settings]\ntheme = \"dark\"\n")
		cfg, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Share.Origin != "https://draw.example.com" {
			t.Errorf("origin = %q", cfg.Share.Origin)
		}
		if cfg.Layers.DefaultOpacity != 80 {
			t.Errorf("opacity = %v, want 80", cfg.Layers.DefaultOpacity)
		}
		if cfg.Layers.DefaultX != 100 || cfg.Canvas.Width != 800 || cfg.Replay.BaseSpeed != 500 {
			t.Errorf("defaults lost: %+v", cfg)
		}
		if cfg.Get("theme") != "dark" {
			t.Errorf("Get(theme) = %q, want dark", cfg.Get("theme"))
		}
	})

	t.Run("invalid toml", func(t *testing.T) {
		path := writeTempConfig(t, "[share\norigin = ")
		if _, err := LoadFromFile(path); err == nil || !strings.Contains(err.Error(), "failed to parse") {
			t.Fatalf("expected parse error, got %v", err)
		}
	})

	t.Run("opacity out of range", func(t *testing.T) {
		path := writeTempConfig(t, "[layers]\ndefault_opacity = 150.0\n")
		if _, err := LoadFromFile(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("zero canvas", func(t *testing.T) {
		path := writeTempConfig(t, "[canvas]\nwidth = 0\n")
		if _, err := LoadFromFile(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("invalid known setting", func(t *testing.T) {
		path := writeTempConfig(t, "[settings]\n\"replay.base_speed\" = \"fast\"\n")
		if _, err := LoadFromFile(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("negative base speed", func(t *testing.T) {
		path := writeTempConfig(t, "[replay]\nbase_speed = -1.0\n")
		if _, err := LoadFromFile(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := defaultConfig()
	cfg.Share.Origin = "https://saved.example.com"
	cfg.Settings["keep"] = "me"
	cfg.Set("session-only", "gone")

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if loaded.Share.Origin != "https://saved.example.com" {
		t.Errorf("origin = %q", loaded.Share.Origin)
	}
	if loaded.Get("keep") != "me" {
		t.Errorf("persisted setting lost")
	}
	if loaded.Get("session-only") != "" {
		t.Errorf("session setting should not be persisted")
	}
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}
