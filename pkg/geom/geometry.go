// Package geom provides the 2D primitives shared by the floor-plan editor:
// points, rectangles and point-to-segment distance for hit testing.
package geom

import "math"

// Point represents a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Scale returns p multiplied by k on both axes.
func (p Point) Scale(k float64) Point {
	return Point{p.X * k, p.Y * k}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceToSegment returns the distance from p to the closest point of the
// finite segment a-b. A zero-length segment degrades to the distance to a.
func DistanceToSegment(p, a, b Point) float64 {
	cx := b.X - a.X
	cy := b.Y - a.Y

	lenSq := cx*cx + cy*cy
	if lenSq == 0 {
		return p.Dist(a)
	}

	// Project onto the segment's parametric line and clamp to [0, 1]
	t := ((p.X-a.X)*cx + (p.Y-a.Y)*cy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closest := Point{a.X + t*cx, a.Y + t*cy}
	return p.Dist(closest)
}

// Rect is an axis-aligned rectangle given by its min and max corners.
type Rect struct {
	Min, Max Point
}

// R is shorthand for a Rect spanning (x0,y0)-(x1,y1).
func R(x0, y0, x1, y1 float64) Rect {
	return Rect{Min: Point{x0, y0}, Max: Point{x1, y1}}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Clamp returns p with each axis clamped independently into r.
func (r Rect) Clamp(p Point) Point {
	return Point{
		X: clamp(p.X, r.Min.X, r.Max.X),
		Y: clamp(p.Y, r.Min.Y, r.Max.Y),
	}
}

// Inset returns r shrunk by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{
		Min: Point{r.Min.X + d, r.Min.Y + d},
		Max: Point{r.Max.X - d, r.Max.Y - d},
	}
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
