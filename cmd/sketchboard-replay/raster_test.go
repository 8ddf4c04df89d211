package main

import (
	"testing"

	"github.com/pstuifzand/sketchboard/internal/geom"
)

func TestProject(t *testing.T) {
	p := newProjector(800, 600, 80, 30)

	tests := []struct {
		pt   geom.Point
		want cell
	}{
		{geom.Pt(0, 0), cell{0, 0}},
		{geom.Pt(799, 599), cell{79, 29}},
		{geom.Pt(400, 300), cell{40, 15}},
		{geom.Pt(-5, 10), cell{-1, 0}},
	}

	for _, tt := range tests {
		if got := p.project(tt.pt); got != tt.want {
			t.Errorf("project(%v) = %v, want %v", tt.pt, got, tt.want)
		}
	}
}

func TestRasterizeHorizontal(t *testing.T) {
	p := newProjector(10, 10, 10, 10)
	cells := rasterize([]geom.Line{{geom.Pt(0, 2), geom.Pt(5, 2)}}, p)

	if len(cells) != 6 {
		t.Fatalf("expected 6 cells, got %d: %v", len(cells), cells)
	}
	for x := 0; x <= 5; x++ {
		if _, ok := cells[cell{x, 2}]; !ok {
			t.Errorf("missing cell (%d,2)", x)
		}
	}
}

func TestRasterizeDiagonalAndClip(t *testing.T) {
	p := newProjector(4, 4, 4, 4)
	cells := rasterize([]geom.Line{{geom.Pt(-2, -2), geom.Pt(10, 10)}}, p)

	if len(cells) != 4 {
		t.Fatalf("expected the 4 on-grid diagonal cells, got %v", cells)
	}
	for i := 0; i < 4; i++ {
		if _, ok := cells[cell{i, i}]; !ok {
			t.Errorf("missing cell (%d,%d)", i, i)
		}
	}
}

func TestRasterizeDotAndEmpty(t *testing.T) {
	p := newProjector(10, 10, 10, 10)
	cells := rasterize([]geom.Line{{}, {geom.Pt(3, 4)}}, p)
	if len(cells) != 1 {
		t.Fatalf("expected a single cell, got %v", cells)
	}
	if _, ok := cells[cell{3, 4}]; !ok {
		t.Errorf("missing dot cell")
	}
}

func TestProjectorZeroCanvas(t *testing.T) {
	p := newProjector(0, 0, 10, 10)
	if got := p.project(geom.Pt(0, 0)); got != (cell{0, 0}) {
		t.Errorf("project on zero canvas = %v", got)
	}
}

func TestProjectClampsFarPoints(t *testing.T) {
	p := newProjector(10, 10, 10, 10)
	if got := p.project(geom.Pt(1e12, -1e12)); got != (cell{20, -10}) {
		t.Errorf("project(far) = %v, want {20 -10}", got)
	}
}
