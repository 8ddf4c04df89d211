package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Taper is the taper at one end of a stroke. The web client accepts either
// a length in pixels or a boolean (true tapers over the whole stroke), so
// both forms are kept exactly as given.
type Taper struct {
	length *float64
	flag   *bool
}

// TaperLength returns a taper of the given length
func TaperLength(v float64) *Taper {
	return &Taper{length: &v}
}

// TaperFlag returns a boolean taper
func TaperFlag(v bool) *Taper {
	return &Taper{flag: &v}
}

// Length returns the taper length when the taper is numeric
func (t Taper) Length() (float64, bool) {
	if t.length == nil {
		return 0, false
	}
	return *t.length, true
}

// Flag returns the taper flag when the taper is boolean
func (t Taper) Flag() (bool, bool) {
	if t.flag == nil {
		return false, false
	}
	return *t.flag, true
}

func (t Taper) String() string {
	if v, ok := t.Flag(); ok {
		return fmt.Sprint(v)
	}
	if v, ok := t.Length(); ok {
		return fmt.Sprint(v)
	}
	return "<unset>"
}

func (t Taper) MarshalJSON() ([]byte, error) {
	switch {
	case t.flag != nil:
		return json.Marshal(*t.flag)
	case t.length != nil:
		return json.Marshal(*t.length)
	default:
		return []byte("null"), nil
	}
}

func (t *Taper) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null":
		*t = Taper{}
		return nil
	case "true", "false":
		*t = *TaperFlag(string(data) == "true")
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("taper must be a number or a boolean, got %s", data)
	}
	*t = *TaperLength(v)
	return nil
}

func (t Taper) MarshalYAML() (interface{}, error) {
	switch {
	case t.flag != nil:
		return *t.flag, nil
	case t.length != nil:
		return *t.length, nil
	default:
		return nil, nil
	}
}

func (t *Taper) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("taper must be a number or a boolean (line %d)", value.Line)
	}
	switch value.Tag {
	case "!!bool":
		var b bool
		if err := value.Decode(&b); err != nil {
			return err
		}
		*t = *TaperFlag(b)
	case "!!null":
		*t = Taper{}
	default:
		var v float64
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("taper must be a number or a boolean (line %d): %w", value.Line, err)
		}
		*t = *TaperLength(v)
	}
	return nil
}
