package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pstuifzand/sketchboard/internal/config"
	"github.com/pstuifzand/sketchboard/internal/model"
	"github.com/pstuifzand/sketchboard/internal/share"
)

// loadSession reads a drawing session from a JSON or YAML file ("-" reads JSON from stdin)
func loadSession(path string, stdin io.Reader) (*model.SharedInfo, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var info model.SharedInfo
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &info); err != nil {
			return nil, fmt.Errorf("failed to parse YAML session: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &info); err != nil {
			return nil, fmt.Errorf("failed to parse JSON session: %w", err)
		}
	}
	return &info, nil
}

// writeSession prints a session as JSON or YAML
func writeSession(w io.Writer, info *model.SharedInfo, format string) error {
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(info); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	case "json", "":
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

// applyCanvasDefaults fills in a missing canvas size from the config
func applyCanvasDefaults(info *model.SharedInfo, cfg *config.Config) {
	width, height := cfg.CanvasSize()
	if info.Options.Width <= 0 {
		info.Options.Width = float64(width)
	}
	if info.Options.Height <= 0 {
		info.Options.Height = float64(height)
	}
}

// tokenFromArg accepts either a full share link or a bare token
func tokenFromArg(arg string) string {
	arg = strings.TrimSpace(arg)
	if strings.Contains(arg, "?") {
		if u, err := url.Parse(arg); err == nil {
			return u.Query().Get(share.Key)
		}
	}
	return arg
}
