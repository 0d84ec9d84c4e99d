package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Segment is a 2d line segment from A to B.
type Segment struct {
	A, B r2.Vec
}

// Bounds returns the bounding box of the segment.
func (s Segment) Bounds() Box {
	return Box{Min: MinElem(s.A, s.B), Max: MaxElem(s.A, s.B)}
}

// Closest returns the point on the segment closest to p.
func (s Segment) Closest(p r2.Vec) r2.Vec {
	ab := r2.Sub(s.B, s.A)
	l2 := r2.Norm2(ab)
	if l2 == 0 {
		return s.A
	}
	t := r2.Dot(r2.Sub(p, s.A), ab) / l2
	t = math.Max(0, math.Min(1, t))
	return r2.Add(s.A, r2.Scale(t, ab))
}

// Distance2 returns the squared distance from p to the segment.
func (s Segment) Distance2(p r2.Vec) float64 {
	return r2.Norm2(r2.Sub(p, s.Closest(p)))
}

// Intersects reports whether segments s and t cross. Segments that only
// touch within tol of a shared endpoint are not considered crossing.
func (s Segment) Intersects(t Segment, tol float64) bool {
	d1 := orient(t.A, t.B, s.A)
	d2 := orient(t.A, t.B, s.B)
	d3 := orient(s.A, s.B, t.A)
	d4 := orient(s.A, s.B, t.B)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		// Proper crossing. Ignore crossings that land on a shared endpoint.
		return !sharesEndpoint(s, t, tol)
	}
	if sharesEndpoint(s, t, tol) {
		return false
	}
	// Touching and collinear cases.
	return (d1 == 0 && onSegment(t, s.A)) || (d2 == 0 && onSegment(t, s.B)) ||
		(d3 == 0 && onSegment(s, t.A)) || (d4 == 0 && onSegment(s, t.B))
}

func orient(a, b, c r2.Vec) float64 {
	return Cross(r2.Sub(b, a), r2.Sub(c, a))
}

func onSegment(s Segment, p r2.Vec) bool {
	return s.Bounds().Contains(p)
}

func sharesEndpoint(s, t Segment, tol float64) bool {
	return EqualWithin(s.A, t.A, tol) || EqualWithin(s.A, t.B, tol) ||
		EqualWithin(s.B, t.A, tol) || EqualWithin(s.B, t.B, tol)
}
