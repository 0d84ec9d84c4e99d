package bend

import (
	"math"

	"github.com/soypat/spectacle"
	"gonum.org/v1/gonum/spatial/r3"
)

// Warp wraps flat space around two cylinders with axes parallel to Y, one
// per side of the midline. Points within Flat of the midline are not bent.
// The flat face of the band lies at z=0 and the viewer at +Z.
type Warp struct {
	// Mid is the x coordinate of the symmetry midline.
	Mid float64
	// Flat is the half width of the unbent bridge region.
	Flat float64
	// Curvature is the inverse of the cylinder radius. Zero means no bend.
	Curvature float64
	// Protrusion is how far the bridge is pushed toward the viewer at the midline.
	Protrusion float64
}

// Radius returns the bend radius, infinite when there is no bend.
func (w Warp) Radius() float64 {
	if w.Curvature == 0 {
		return math.Inf(1)
	}
	return 1 / w.Curvature
}

// Angle returns the bend angle in radians at flat x coordinate x.
// It is a non-decreasing function of |x-Mid|.
func (w Warp) Angle(x float64) float64 {
	return w.Curvature * math.Max(0, math.Abs(x-w.Mid)-w.Flat)
}

// Normal returns the unit normal of the bent z=0 face at flat x coordinate x.
func (w Warp) Normal(x float64) r3.Vec {
	theta := w.Angle(x)
	if theta == 0 {
		return r3.Vec{Z: 1}
	}
	s := spectacle.Sign(x - w.Mid)
	return r3.Vec{X: s * math.Sin(theta), Z: math.Cos(theta)}
}

// Apply maps a flat point into bent space.
func (w Warp) Apply(p r3.Vec) r3.Vec {
	d := p.X - w.Mid
	e := math.Abs(d) - w.Flat
	if w.Curvature != 0 && e > 0 {
		R := 1 / w.Curvature
		theta := w.Curvature * e
		r := R + p.Z
		p.X = w.Mid + spectacle.Sign(d)*(w.Flat+r*math.Sin(theta))
		p.Z = -R + r*math.Cos(theta)
	}
	p.Z += w.protrusion(p.X)
	return p
}

// Invert maps a bent point back to flat space. stretch is the ratio by which
// lengths along X in flat space grow when bent at the point, and is 1 in the
// unbent region. Points on or near the bend axis have no meaningful inverse and
// return stretch 0.
func (w Warp) Invert(q r3.Vec) (p r3.Vec, stretch float64) {
	q.Z -= w.protrusion(q.X)
	d := q.X - w.Mid
	u := math.Abs(d) - w.Flat
	if w.Curvature == 0 || u <= 0 {
		return q, 1
	}
	R := 1 / w.Curvature
	v := q.Z + R
	r := math.Hypot(u, v)
	if r == 0 {
		return q, 0
	}
	phi := math.Atan2(u, v)
	q.X = w.Mid + spectacle.Sign(d)*(w.Flat+phi*R)
	q.Z = r - R
	return q, r / R
}

// AxisDistance returns the distance from bent point q to the nearest bend axis,
// or +Inf if q lies in the unbent region or there is no bend.
func (w Warp) AxisDistance(q r3.Vec) float64 {
	q.Z -= w.protrusion(q.X)
	u := math.Abs(q.X-w.Mid) - w.Flat
	if w.Curvature == 0 || u <= 0 {
		return math.Inf(1)
	}
	return math.Hypot(u, q.Z+1/w.Curvature)
}

// protrusion is a raised cosine bump over the bridge region.
func (w Warp) protrusion(x float64) float64 {
	if w.Protrusion == 0 || w.Flat <= 0 {
		return 0
	}
	a := math.Abs(x-w.Mid) / w.Flat
	if a >= 1 {
		return 0
	}
	return w.Protrusion * 0.5 * (1 + math.Cos(math.Pi*a))
}
