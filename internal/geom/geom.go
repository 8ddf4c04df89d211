// Package geom contains the point and line primitives used by strokes
package geom

import "math"

// Point is a sampled stroke coordinate: [x, y, ...extra].
// Extra channels (pressure and the like) are carried but never interpreted.
type Point []float64

// Line is one freehand stroke. Point order is the drawn order.
type Line []Point

// Pt creates a point from its coordinates and optional extra channels
func Pt(x, y float64, extra ...float64) Point {
	p := make(Point, 0, 2+len(extra))
	p = append(p, x, y)
	return append(p, extra...)
}

// X returns the first coordinate, or 0 when the point has none
func (p Point) X() float64 {
	if len(p) < 1 {
		return 0
	}
	return p[0]
}

// Y returns the second coordinate, or 0 when the point has none
func (p Point) Y() float64 {
	if len(p) < 2 {
		return 0
	}
	return p[1]
}

// Distance returns the Euclidean distance between the x/y components of two points.
func Distance(p1, p2 Point) float64 {
	return math.Hypot(p1.X()-p2.X(), p1.Y()-p2.Y())
}

// LineLength sums the distance between consecutive points.
// Lines with fewer than two points have length 0.
func LineLength(line Line) float64 {
	total := 0.0
	for i := 1; i < len(line); i++ {
		total += Distance(line[i-1], line[i])
	}
	return total
}

// Length is a method form of LineLength
func (l Line) Length() float64 {
	return LineLength(l)
}

// Lerp interpolates between p and q. t=0 returns p, t=1 returns q.
// Extra channels present in both points are interpolated as well; the
// result has the channel count of q.
func Lerp(p, q Point, t float64) Point {
	out := make(Point, len(q))
	for i := range q {
		from := q[i]
		if i < len(p) {
			from = p[i]
		}
		out[i] = from + (q[i]-from)*t
	}
	return out
}

// Rect is an axis-aligned bounding box
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width of the box
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height of the box
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Bounds returns the bounding box over every point of the given lines.
// ok is false when there are no points.
func Bounds(lines ...Line) (r Rect, ok bool) {
	for _, line := range lines {
		for _, p := range line {
			x, y := p.X(), p.Y()
			if !ok {
				r = Rect{MinX: x, MinY: y, MaxX: x, MaxY: y}
				ok = true
				continue
			}
			r.MinX = math.Min(r.MinX, x)
			r.MinY = math.Min(r.MinY, y)
			r.MaxX = math.Max(r.MaxX, x)
			r.MaxY = math.Max(r.MaxY, y)
		}
	}
	return r, ok
}
