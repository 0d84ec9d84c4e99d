// Package outline normalizes the flat silhouette of a pair of glasses and
// derives the landmarks the rest of the pipeline relies on: the symmetry
// midline, the bridge center and the two lens regions.
package outline

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/soypat/spectacle"
	"github.com/soypat/spectacle/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// bridgeSpanFactor is the bridge half span as a fraction of the half width.
	bridgeSpanFactor = 0.15
	// midlineCandidates is the number of candidates tried on each side of
	// the bounding box center.
	midlineCandidates = 8
	// midlineStep is the candidate spacing as a fraction of bounding box width.
	midlineStep = 1. / 64
)

// Outline is an immutable, counter clockwise, symmetric closed loop.
// The closing point is not stored.
type Outline struct {
	pts    []r2.Vec
	tol    float64
	bounds d2.Box

	mid        float64
	halfWidth  float64
	bridgeSpan float64
	bridge     int
	lens       [2]Span
	lensGap    float64
}

// Normalize validates raw and returns the Outline it describes. The first and
// last point of raw must coincide within tol. tol also bounds the allowed
// asymmetry about the midline.
func Normalize(raw []r2.Vec, tol float64) (*Outline, error) {
	if !(tol > 0) || math.IsInf(tol, 1) {
		return nil, spectacle.InvalidParameter("tolerance", "must be positive and finite, got %g", tol)
	}
	pts := dedupe(raw, tol)
	if len(pts) < 3 {
		return nil, spectacle.MalformedOutline(-1, "need at least 3 distinct points, got %d", len(pts))
	}
	if gap := r2.Norm(r2.Sub(raw[0], raw[len(raw)-1])); gap > tol {
		return nil, spectacle.MalformedOutline(len(raw)-1, "loop not closed: gap %.3g exceeds tolerance %g", gap, tol)
	}
	for len(pts) > 1 && r2.Norm(r2.Sub(pts[len(pts)-1], pts[0])) <= tol {
		pts = pts[:len(pts)-1] // Drop closing point.
	}
	if len(pts) < 3 {
		return nil, spectacle.MalformedOutline(-1, "need at least 3 distinct points, got %d", len(pts))
	}
	for i, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil, spectacle.MalformedOutline(i, "non finite coordinate")
		}
	}

	switch toRing(pts).Orientation() {
	case orb.CCW:
	case orb.CW:
		pts = d2.Set(pts).Reverse()
	default:
		return nil, spectacle.MalformedOutline(-1, "outline encloses no area")
	}
	pts = canonicalStart(pts)

	mid, cost := findMidline(pts)
	if dev := math.Sqrt(cost); dev > tol {
		return nil, spectacle.MalformedOutline(-1, "no symmetric midline: best deviation %.3g exceeds tolerance %g", dev, tol)
	}
	return build(pts, tol, mid)
}

// build computes the landmarks of a normalized point loop with known midline.
func build(pts []r2.Vec, tol, mid float64) (*Outline, error) {
	o := &Outline{
		pts:    pts,
		tol:    tol,
		mid:    mid,
		bounds: d2.Set(pts).Bounds(),
	}
	for _, p := range pts {
		o.halfWidth = math.Max(o.halfWidth, math.Abs(p.X-mid))
	}
	o.bridgeSpan = bridgeSpanFactor * o.halfWidth

	var err error
	o.lens[0], err = singleRun(len(pts), func(i int) bool { return o.SignedDistance(i) < -o.bridgeSpan })
	if err != nil {
		return nil, spectacle.MalformedOutline(-1, "left lens region: %s", err)
	}
	o.lens[1], err = singleRun(len(pts), func(i int) bool { return o.SignedDistance(i) > o.bridgeSpan })
	if err != nil {
		return nil, spectacle.MalformedOutline(-1, "right lens region: %s", err)
	}

	nearest := math.Inf(1)
	for _, p := range pts {
		nearest = math.Min(nearest, math.Abs(p.X-mid))
	}
	o.bridge = -1
	for i, p := range pts {
		if math.Abs(p.X-mid) > nearest+tol {
			continue
		}
		if o.bridge < 0 || p.Y < pts[o.bridge].Y {
			o.bridge = i
		}
	}

	o.lensGap = math.Inf(1)
	for _, i := range o.lens[0].Indices(len(pts)) {
		for _, j := range o.lens[1].Indices(len(pts)) {
			o.lensGap = math.Min(o.lensGap, r2.Norm(r2.Sub(pts[i], pts[j])))
		}
	}
	return o, nil
}

// Scale returns the outline scaled by k about the point on the midline at
// the vertical center of its bounding box.
func (o *Outline) Scale(k float64) (*Outline, error) {
	if !(k > 0) || math.IsInf(k, 1) {
		return nil, spectacle.InvalidParameter("scale", "must be positive and finite, got %g", k)
	}
	if k == 1 {
		return o, nil
	}
	c := r2.Vec{X: o.mid, Y: o.bounds.Center().Y}
	pts := make([]r2.Vec, len(o.pts))
	for i, p := range o.pts {
		pts[i] = r2.Add(c, r2.Scale(k, r2.Sub(p, c)))
	}
	return build(pts, o.tol, o.mid)
}

// Len returns the number of vertices in the outline.
func (o *Outline) Len() int { return len(o.pts) }

// At returns the i'th vertex.
func (o *Outline) At(i int) r2.Vec { return o.pts[i] }

// Points returns a copy of the outline vertices without closing point.
func (o *Outline) Points() []r2.Vec {
	return append([]r2.Vec(nil), o.pts...)
}

// Closed returns the outline vertices with the first vertex repeated at the
// end. The result is accepted by Normalize.
func (o *Outline) Closed() []r2.Vec {
	return append(o.Points(), o.pts[0])
}

func (o *Outline) Tolerance() float64 { return o.tol }
func (o *Outline) Bounds() d2.Box     { return o.bounds }
func (o *Outline) MidlineX() float64  { return o.mid }

// HalfWidth is the largest distance from the midline to any vertex.
func (o *Outline) HalfWidth() float64 { return o.halfWidth }

// BridgeHalfSpan is the distance from the midline under which vertices belong
// to the bridge and not to a lens region.
func (o *Outline) BridgeHalfSpan() float64 { return o.bridgeSpan }

// BridgeCenter returns the vertex nearest the midline on the nose side.
func (o *Outline) BridgeCenter() r2.Vec { return o.pts[o.bridge] }
func (o *Outline) BridgeIndex() int     { return o.bridge }

// LensRegions returns the left and right lens vertex ranges.
func (o *Outline) LensRegions() [2]Span { return o.lens }

// LensGap is the shortest distance between a left and a right lens vertex.
func (o *Outline) LensGap() float64 { return o.lensGap }

// SignedDistance returns the distance of vertex i from the midline,
// negative on the left.
func (o *Outline) SignedDistance(i int) float64 { return o.pts[i].X - o.mid }

// Side returns -1 if vertex i is in the left lens region, 1 if in the right
// lens region and 0 for bridge vertices.
func (o *Outline) Side(i int) int {
	switch d := o.SignedDistance(i); {
	case d < -o.bridgeSpan:
		return -1
	case d > o.bridgeSpan:
		return 1
	}
	return 0
}

// dedupe collapses runs of consecutive points closer than tol.
func dedupe(raw []r2.Vec, tol float64) []r2.Vec {
	pts := make([]r2.Vec, 0, len(raw))
	for _, p := range raw {
		if len(pts) > 0 && r2.Norm(r2.Sub(p, pts[len(pts)-1])) < tol {
			continue
		}
		pts = append(pts, p)
	}
	return pts
}

// canonicalStart rotates the loop so it starts at the lowest, then leftmost vertex.
func canonicalStart(pts []r2.Vec) []r2.Vec {
	start := 0
	for i, p := range pts {
		s := pts[start]
		if p.Y < s.Y || (p.Y == s.Y && p.X < s.X) {
			start = i
		}
	}
	return append(append(make([]r2.Vec, 0, len(pts)), pts[start:]...), pts[:start]...)
}

func toRing(pts []r2.Vec) orb.Ring {
	ring := make(orb.Ring, len(pts)+1)
	for i, p := range pts {
		ring[i] = orb.Point{p.X, p.Y}
	}
	ring[len(pts)] = ring[0]
	return ring
}
