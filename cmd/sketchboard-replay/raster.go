package main

import (
	"math"

	"github.com/pstuifzand/sketchboard/internal/geom"
)

type cell struct {
	X, Y int
}

// projector maps canvas coordinates onto a cols x rows terminal grid
type projector struct {
	sx, sy     float64
	cols, rows int
}

func newProjector(width, height float64, cols, rows int) projector {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return projector{
		sx:   float64(cols) / width,
		sy:   float64(rows) / height,
		cols: cols,
		rows: rows,
	}
}

// project keeps far off-canvas points within one screen of the grid so
// rasterizing a stray point stays cheap
func (p projector) project(pt geom.Point) cell {
	return cell{
		X: clamp(math.Floor(pt.X()*p.sx), -p.cols, 2*p.cols),
		Y: clamp(math.Floor(pt.Y()*p.sy), -p.rows, 2*p.rows),
	}
}

func clamp(v float64, lo, hi int) int {
	return int(math.Max(float64(lo), math.Min(float64(hi), v)))
}

func (p projector) inside(c cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < p.cols && c.Y < p.rows
}

// rasterize returns the cells covered by the lines, clipped to the grid
func rasterize(lines []geom.Line, p projector) map[cell]struct{} {
	cells := make(map[cell]struct{})
	plot := func(c cell) {
		if p.inside(c) {
			cells[c] = struct{}{}
		}
	}

	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		prev := p.project(line[0])
		plot(prev)
		for _, pt := range line[1:] {
			next := p.project(pt)
			bresenham(prev, next, plot)
			prev = next
		}
	}
	return cells
}

func bresenham(from, to cell, plot func(cell)) {
	dx := abs(to.X - from.X)
	dy := -abs(to.Y - from.Y)
	sx, sy := 1, 1
	if from.X > to.X {
		sx = -1
	}
	if from.Y > to.Y {
		sy = -1
	}

	err := dx + dy
	c := from
	for {
		plot(c)
		if c == to {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			c.X += sx
		}
		if e2 <= dx {
			err += dx
			c.Y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
