package kernel

import (
	"math"

	"github.com/soypat/spectacle"
	"github.com/soypat/spectacle/bend"
	"github.com/soypat/spectacle/internal/d2"
	"github.com/soypat/spectacle/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// bandSolid is the flat band profile extruded over z in [0,depth] and then
// wrapped by the band's Warp. round is the edge fillet radius.
type bandSolid struct {
	profile  profile
	warp     bend.Warp
	depth    float64
	round    float64
	minThick float64
	bb       r3.Box
}

func newBandSolid(band *bend.BentBand, depth float64) (*bandSolid, error) {
	flat := band.Band
	if d2.Set(flat.Outer).SignedArea()-d2.Set(flat.Inner).SignedArea() <= 0 {
		return nil, spectacle.DegenerateGeometry(-1, "band encloses no area")
	}
	s := &bandSolid{
		profile: profile{outer: newPolygon(flat.Outer), inner: newPolygon(flat.Inner)},
		warp:    band.Warp,
		depth:   depth,
	}
	s.minThick = math.Inf(1)
	for _, t := range flat.Thickness {
		s.minThick = math.Min(s.minThick, t)
	}
	s.bb = warpedBounds(flat.Outer, band.Warp, depth)
	return s, nil
}

// withRound returns a copy of s with rounded edges.
func (s *bandSolid) withRound(round float64) (*bandSolid, error) {
	if limit := 0.5 * math.Min(s.minThick, s.depth); round >= limit {
		return nil, spectacle.InvalidParameter("bevel_radius", "must be less than %g, got %g", limit, round)
	}
	c := *s
	c.round = round
	return &c, nil
}

// Evaluate returns the signed distance to the warped band.
func (s *bandSolid) Evaluate(q r3.Vec) float64 {
	R := s.warp.Radius()
	if r := s.warp.AxisDistance(q); r < 0.5*R {
		// Everything in the band is at least R from the bend axis.
		return R - r
	}
	p, stretch := s.warp.Invert(q)
	return s.flat(p) * math.Min(1, stretch)
}

// flat returns the signed distance to the unwarped band, following the
// rounded extrusion of a 2D profile centered on z=depth/2.
func (s *bandSolid) flat(p r3.Vec) float64 {
	a := s.profile.Evaluate(r2.Vec{X: p.X, Y: p.Y}) + s.round
	b := math.Abs(p.Z-s.depth/2) - (s.depth/2 - s.round)
	var d float64
	if b > 0 {
		if a < 0 {
			d = b
		} else {
			d = math.Hypot(a, b)
		}
	} else {
		if a < 0 {
			d = math.Max(a, b)
		} else {
			d = a
		}
	}
	return d - s.round
}

func (s *bandSolid) Bounds() r3.Box { return s.bb }

func (s *bandSolid) mirrorX() (float64, bool) { return s.warp.Mid, true }

// warpedBounds returns the bounds of the loop extruded to depth and warped.
// Edges are subdivided to catch the bulge of bent segments.
func warpedBounds(loop []r2.Vec, w bend.Warp, depth float64) r3.Box {
	const subdiv = 8
	box := d3.Box{Min: d3.Elem(math.Inf(1)), Max: d3.Elem(math.Inf(-1))}
	for i := range loop {
		a, b := loop[i], loop[(i+1)%len(loop)]
		for k := 0; k < subdiv; k++ {
			p := d2.Lerp(a, b, float64(k)/subdiv)
			box = box.Include(w.Apply(d3.FromR2(p, 0)))
			box = box.Include(w.Apply(d3.FromR2(p, depth)))
		}
	}
	size := box.Size()
	return r3.Box(box.Enlarge(d3.Elem(0.02 * d3.Max(size))))
}

// ellipsoid is a transformed unit sphere.
type ellipsoid struct {
	inv    d3.Transform
	minRad float64
	bb     r3.Box
}

func newEllipsoid(t d3.Transform, radii r3.Vec) (*ellipsoid, error) {
	inv, ok := t.Inv()
	if !ok || d3.Min(radii) <= 0 {
		return nil, spectacle.DegenerateGeometry(-1, "ellipsoid with radii %v", radii)
	}
	center := t.Transform(r3.Vec{})
	reach := d3.Elem(d3.Max(radii))
	return &ellipsoid{
		inv:    inv,
		minRad: d3.Min(radii),
		bb:     r3.Box{Min: r3.Sub(center, reach), Max: r3.Add(center, reach)},
	}, nil
}

// Evaluate returns a distance bound that is exact on the axis of smallest radius.
func (s *ellipsoid) Evaluate(p r3.Vec) float64 {
	return (r3.Norm(s.inv.Transform(p)) - 1) * s.minRad
}

func (s *ellipsoid) Bounds() r3.Box { return s.bb }

// union is the smooth union of several fields.
type union struct {
	sdf []sdf3
	k   float64
	bb  r3.Box
}

func (s *union) computeBounds() {
	bb := d3.Box(s.sdf[0].Bounds())
	for _, x := range s.sdf[1:] {
		bb = bb.Extend(d3.Box(x.Bounds()))
	}
	// The blend fillet can reach slightly past the members.
	s.bb = r3.Box(bb.Enlarge(d3.Elem(s.k)))
}

// Evaluate returns the polynomial smooth minimum of the member distances.
func (s *union) Evaluate(p r3.Vec) float64 {
	d := s.sdf[0].Evaluate(p)
	for _, x := range s.sdf[1:] {
		d = polyMin(d, x.Evaluate(p), s.k)
	}
	return d
}

func (s *union) Bounds() r3.Box { return s.bb }

func (s *union) mirrorX() (float64, bool) {
	for _, f := range s.sdf {
		if mid, ok := mirrorPlane(f); ok {
			return mid, true
		}
	}
	return 0, false
}

// mirrorPlane returns the x coordinate of the plane s is symmetric about, if
// s knows it.
func mirrorPlane(s sdf3) (float64, bool) {
	m, ok := s.(interface{ mirrorX() (float64, bool) })
	if !ok {
		return 0, false
	}
	return m.mirrorX()
}

// polyMin is a polynomial smooth minimum with blend size k.
func polyMin(a, b, k float64) float64 {
	if k == 0 {
		return math.Min(a, b)
	}
	h := spectacle.Clamp(0.5+0.5*(b-a)/k, 0, 1)
	return spectacle.Mix(b, a, h) - k*h*(1-h)
}
