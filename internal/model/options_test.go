package model

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestTaperJSON(t *testing.T) {
	tests := []struct {
		input string
		want  string
		str   string
	}{
		{`{"taper":true}`, `{"taper":true}`, "true"},
		{`{"taper":false}`, `{"taper":false}`, "false"},
		{`{"taper":0}`, `{"taper":0}`, "0"},
		{`{"taper":12.5}`, `{"taper":12.5}`, "12.5"},
		{`{"taper":null}`, `{}`, ""},
		{`{}`, `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var opts TaperOptions
			if err := json.Unmarshal([]byte(tt.input), &opts); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.input, err)
			}
			if tt.str == "" {
				if opts.Taper != nil {
					t.Errorf("Taper = %v, want nil", opts.Taper)
				}
			} else if opts.Taper == nil || opts.Taper.String() != tt.str {
				t.Errorf("Taper = %v, want %s", opts.Taper, tt.str)
			}

			out, err := json.Marshal(opts)
			if err != nil {
				t.Fatalf("Marshal error: %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("Marshal = %s, want %s", out, tt.want)
			}
		})
	}
}

func TestTaperRejectsOtherTypes(t *testing.T) {
	for _, input := range []string{`{"taper":"yes"}`, `{"taper":[1]}`, `{"taper":{}}`} {
		var opts TaperOptions
		if err := json.Unmarshal([]byte(input), &opts); err == nil {
			t.Errorf("Unmarshal(%s) should fail", input)
		}
	}
}

func TestTaperYAML(t *testing.T) {
	input := "start:\n  taper: true\nend:\n  taper: 20\n  cap: false\n"

	var brush BrushOptions
	if err := yaml.Unmarshal([]byte(input), &brush); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if v, ok := brush.Start.Taper.Flag(); !ok || !v {
		t.Errorf("start taper = %v, want true", brush.Start.Taper)
	}
	if v, ok := brush.End.Taper.Length(); !ok || v != 20 {
		t.Errorf("end taper = %v, want 20", brush.End.Taper)
	}

	out, err := yaml.Marshal(brush)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if !strings.Contains(string(out), "taper: true") || !strings.Contains(string(out), "taper: 20") {
		t.Errorf("Marshal = %s", out)
	}

	if err := yaml.Unmarshal([]byte("start:\n  taper: [1]\n"), &brush); err == nil {
		t.Error("a list taper should fail")
	}
}

func TestBrushOptionsKeepUnknownMembers(t *testing.T) {
	input := `{"size":8,"easing":"easeOutCubic","start":{"cap":true,"easing":"linear"}}`

	var brush BrushOptions
	if err := json.Unmarshal([]byte(input), &brush); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if got := string(brush.Extra["easing"]); got != `"easeOutCubic"` {
		t.Errorf("Extra[easing] = %s", got)
	}
	if _, ok := brush.Extra["size"]; ok {
		t.Error("modelled members must not land in Extra")
	}
	if got := string(brush.Start.Extra["easing"]); got != `"linear"` {
		t.Errorf("Start.Extra[easing] = %s", got)
	}

	out, err := json.Marshal(brush)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if want := `{"easing":"easeOutCubic","size":8,"start":{"cap":true,"easing":"linear"}}`; string(out) != want {
		t.Errorf("Marshal = %s, want %s", out, want)
	}

	var plain BrushOptions
	if err := json.Unmarshal([]byte(`{"size":8}`), &plain); err != nil {
		t.Fatal(err)
	}
	if plain.Extra != nil {
		t.Errorf("Extra = %v, want nil", plain.Extra)
	}
}
