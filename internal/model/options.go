package model

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// DrawOptions controls stroke appearance. It has no replay semantics.
type DrawOptions struct {
	Color       *string  `json:"color,omitempty" yaml:"color,omitempty"`
	Background  *string  `json:"background,omitempty" yaml:"background,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty" yaml:"strokeWidth,omitempty"`
}

// ReplayOptions controls the animated replay of a drawing.
// LoopInterval is the pause between loop iterations in milliseconds.
type ReplayOptions struct {
	Speed        *float64 `json:"speed,omitempty" yaml:"speed,omitempty"`
	Loop         *bool    `json:"loop,omitempty" yaml:"loop,omitempty"`
	Easing       *string  `json:"easing,omitempty" yaml:"easing,omitempty"`
	Wipe         *float64 `json:"wipe,omitempty" yaml:"wipe,omitempty"`
	LoopInterval *float64 `json:"loopInterval,omitempty" yaml:"loopInterval,omitempty"`
}

// EffectiveSpeed returns the speed multiplier, defaulting to 1
func (o ReplayOptions) EffectiveSpeed() float64 {
	if o.Speed == nil || *o.Speed <= 0 {
		return 1
	}
	return *o.Speed
}

// Looping reports whether replay restarts after completion
func (o ReplayOptions) Looping() bool {
	return o.Loop != nil && *o.Loop
}

// EasingName returns the easing curve name, or "" when unset
func (o ReplayOptions) EasingName() string {
	if o.Easing == nil {
		return ""
	}
	return *o.Easing
}

// BrushOptions are the stroke-to-outline parameters handed to the renderer.
// The editor core stores them without interpreting them. Members this type
// does not model are kept in Extra.
type BrushOptions struct {
	// Version is bumped when the renderer changes the meaning of a field
	Version          *int          `json:"version,omitempty" yaml:"version,omitempty"`
	Size             *float64      `json:"size,omitempty" yaml:"size,omitempty"`
	Thinning         *float64      `json:"thinning,omitempty" yaml:"thinning,omitempty"`
	Smoothing        *float64      `json:"smoothing,omitempty" yaml:"smoothing,omitempty"`
	Streamline       *float64      `json:"streamline,omitempty" yaml:"streamline,omitempty"`
	SimulatePressure *bool         `json:"simulatePressure,omitempty" yaml:"simulatePressure,omitempty"`
	Last             *bool         `json:"last,omitempty" yaml:"last,omitempty"`
	Start            *TaperOptions `json:"start,omitempty" yaml:"start,omitempty"`
	End              *TaperOptions `json:"end,omitempty" yaml:"end,omitempty"`
	// Disable renders raw polylines and skips outline synthesis
	Disable *bool `json:"disable,omitempty" yaml:"disable,omitempty"`

	Extra Extra `json:"-" yaml:"-"`
}

type brushFields BrushOptions

var brushKeys = jsonKeys(reflect.TypeOf(brushFields{}))

func (o BrushOptions) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(brushFields(o))
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, o.Extra)
}

func (o *BrushOptions) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	var fields brushFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra, err := splitExtra(data, brushKeys)
	if err != nil {
		return err
	}
	fields.Extra = extra
	*o = BrushOptions(fields)
	return nil
}

// TaperOptions describe one end of a stroke. Members this type does not
// model (such as a per-end easing) are kept in Extra.
type TaperOptions struct {
	Cap   *bool  `json:"cap,omitempty" yaml:"cap,omitempty"`
	Taper *Taper `json:"taper,omitempty" yaml:"taper,omitempty"`

	Extra Extra `json:"-" yaml:"-"`
}

type taperFields TaperOptions

var taperKeys = jsonKeys(reflect.TypeOf(taperFields{}))

func (o TaperOptions) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(taperFields(o))
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, o.Extra)
}

func (o *TaperOptions) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	var fields taperFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra, err := splitExtra(data, taperKeys)
	if err != nil {
		return err
	}
	fields.Extra = extra
	*o = TaperOptions(fields)
	return nil
}
