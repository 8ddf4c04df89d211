// Package palette parses the colours used by draw options
package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pstuifzand/sketchboard/internal/model"
)

// ErrInvalidColor is returned for strings that are not a supported colour
var ErrInvalidColor = errors.New("invalid color")

// Parse handles #RRGGBB, #RGB and rgb(r,g,b)
func Parse(colorStr string) (colorful.Color, error) {
	colorStr = strings.TrimSpace(colorStr)

	if hex, ok := strings.CutPrefix(colorStr, "#"); ok {
		// Expand short form (#RGB)
		if len(hex) == 3 {
			hex = string(hex[0]) + string(hex[0]) +
				string(hex[1]) + string(hex[1]) +
				string(hex[2]) + string(hex[2])
		}
		if len(hex) != 6 {
			return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, colorStr)
		}
		c, err := colorful.Hex("#" + hex)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, colorStr)
		}
		return c, nil
	}

	if inner, ok := strings.CutPrefix(colorStr, "rgb("); ok && strings.HasSuffix(inner, ")") {
		parts := strings.Split(strings.TrimSuffix(inner, ")"), ",")
		if len(parts) != 3 {
			return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, colorStr)
		}
		var rgb [3]uint8
		for i, part := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || v < 0 || v > 255 {
				return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, colorStr)
			}
			rgb[i] = uint8(v)
		}
		return colorful.Color{R: float64(rgb[0]) / 255, G: float64(rgb[1]) / 255, B: float64(rgb[2]) / 255}, nil
	}

	return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, colorStr)
}

// Normalize returns the colour as lowercase #rrggbb
func Normalize(colorStr string) (string, error) {
	c, err := Parse(colorStr)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

// NormalizeOptions rewrites the colours set in opts as #rrggbb
func NormalizeOptions(opts *model.DrawOptions) error {
	for _, field := range []**string{&opts.Color, &opts.Background} {
		if *field == nil {
			continue
		}
		hex, err := Normalize(**field)
		if err != nil {
			return err
		}
		*field = &hex
	}
	return nil
}

// Validate checks the colours set in draw options
func Validate(opts model.DrawOptions) error {
	var errs []error
	if opts.Color != nil {
		if _, err := Parse(*opts.Color); err != nil {
			errs = append(errs, fmt.Errorf("color: %w", err))
		}
	}
	if opts.Background != nil {
		if _, err := Parse(*opts.Background); err != nil {
			errs = append(errs, fmt.Errorf("background: %w", err))
		}
	}
	return errors.Join(errs...)
}

// TerminalColor converts a colour string to a tcell colour.
// Unparsable colours give tcell.ColorDefault.
func TerminalColor(colorStr string) tcell.Color {
	c, err := Parse(colorStr)
	if err != nil {
		return tcell.ColorDefault
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
