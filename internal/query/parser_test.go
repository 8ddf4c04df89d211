package query

import (
	"testing"

	"github.com/pstuifzand/sketchboard/internal/model"
)

func TestTokenizer(t *testing.T) {
	tests := []struct {
		input  string
		tokens []TokenType
	}{
		{"sketch", []TokenType{TokenText, TokenEOF}},
		{"sketch background", []TokenType{TokenText, TokenText, TokenEOF}},
		{"sketch | background", []TokenType{TokenText, TokenOr, TokenText, TokenEOF}},
		{"sketch +background", []TokenType{TokenText, TokenAnd, TokenText, TokenEOF}},
		{"-sketch", []TokenType{TokenNot, TokenText, TokenEOF}},
		{"opacity:>50", []TokenType{TokenFilter, TokenEOF}},
		{"x:<=-10 w:100", []TokenType{TokenFilter, TokenFilter, TokenEOF}},
		{"(a | b)", []TokenType{TokenLParen, TokenText, TokenOr, TokenText, TokenRParen, TokenEOF}},
		{`"multi word"`, []TokenType{TokenText, TokenEOF}},
		{"~skt", []TokenType{TokenFuzzy, TokenEOF}},
		{"~", []TokenType{TokenText, TokenEOF}},
		{"/^bg-[0-9]+/", []TokenType{TokenRegex, TokenEOF}},
		{"my-layer", []TokenType{TokenText, TokenEOF}},
		{"12:30", []TokenType{TokenText, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := NewTokenizer(tt.input).AllTokens()

			if len(tokens) != len(tt.tokens) {
				t.Fatalf("expected %d tokens, got %d: %v", len(tt.tokens), len(tokens), tokens)
			}
			for i, expectedType := range tt.tokens {
				if tokens[i].Type != expectedType {
					t.Errorf("token %d: expected %d, got %d", i, expectedType, tokens[i].Type)
				}
			}
		})
	}
}

func TestParser(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "always-match"},
		{"Sketch", `text("sketch")`},
		{"a b", `(and text("a") text("b"))`},
		{"a + b", `(and text("a") text("b"))`},
		{"a | b c", `(or text("a") (and text("b") text("c")))`},
		{"(a | b) c", `(and (or text("a") text("b")) text("c"))`},
		{"--a", `(not (not text("a")))`},
		{"opacity:>50", "opacity(>50)"},
		{"o:50", "opacity(=50)"},
		{"width:!=1.5", "w(!=1.5)"},
		{"x:<=-10", "x(<=-10)"},
		{"id:layer-1", "id(layer-1)"},
		{"name:bg", `text("bg")`},
		{"~skt", `fuzzy("skt")`},
		{"/^bg/", "regex(/^bg/)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got := expr.String(); got != tt.expected {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParserErrors(t *testing.T) {
	tests := []string{
		"(a",
		"a)",
		"-",
		"opacity:",
		"opacity:>",
		"opacity:high",
		"colour:red",
		"id:",
		"/[/",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); err == nil {
				t.Errorf("Parse(%q) should fail", input)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	layer := &model.ImageLayer{
		ID:      "layer-1",
		Name:    "Reference Sketch.png",
		Opacity: 50,
		X:       -20,
		Y:       100,
		Width:   640,
		Height:  480,
		Scale:   1,
		ZIndex:  2,
	}

	tests := []struct {
		query string
		want  bool
	}{
		{"sketch", true},
		{"background", false},
		{"-background", true},
		{"~rsk", true},
		{"opacity:50", true},
		{"opacity:>50", false},
		{"opacity:>=50 w:640 h:<500", true},
		{"x:<0", true},
		{"z:2 scale:1 rot:0", true},
		{"id:layer-1", true},
		{"id:layer-2 | sketch", true},
		{"-(sketch | ~bg)", false},
		{"/\\.png$/", true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			expr, err := Parse(tt.query)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.query, err)
			}
			if got := expr.Matches(layer); got != tt.want {
				t.Errorf("%q matches = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
