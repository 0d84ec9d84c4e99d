package bend

import (
	"errors"
	"math"
	"testing"

	"github.com/soypat/spectacle"
	"github.com/soypat/spectacle/internal/d3"
	"github.com/soypat/spectacle/offset"
	"github.com/soypat/spectacle/outline"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func hexagonBand(t *testing.T, thickness float64) *offset.Band {
	t.Helper()
	pts := []r2.Vec{
		{X: 50, Y: 0}, {X: 37.5, Y: 10}, {X: 25, Y: 20}, {X: 0, Y: 20}, {X: -25, Y: 20}, {X: -37.5, Y: 10},
		{X: -50, Y: 0}, {X: -37.5, Y: -10}, {X: -25, Y: -20}, {X: 0, Y: -20}, {X: 25, Y: -20}, {X: 37.5, Y: -10}, {X: 50, Y: 0},
	}
	o, err := outline.Normalize(pts, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	b, err := offset.Offset(o, thickness, offset.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestBendIdentity(t *testing.T) {
	band := hexagonBand(t, 4)
	bb, err := Bend(band, Config{Degree: 0})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < bb.Len(); i++ {
		if bb.Inner[i] != d3.FromR2(band.Inner[i], 0) || bb.Outer[i] != d3.FromR2(band.Outer[i], 0) {
			t.Errorf("point %d moved with zero bend", i)
		}
		if bb.InnerNormal[i] != (r3.Vec{Z: 1}) {
			t.Errorf("normal %d tilted with zero bend: %v", i, bb.InnerNormal[i])
		}
	}
}

func TestBendMonotonic(t *testing.T) {
	band := hexagonBand(t, 4)
	bb, err := Bend(band, Config{Degree: 30})
	if err != nil {
		t.Fatal(err)
	}
	w := bb.Warp
	last := -1.
	for x := w.Mid; x < w.Mid+60; x += 0.25 {
		a := w.Angle(x)
		if a < last {
			t.Fatalf("angle decreased at x=%g: %g < %g", x, a, last)
		}
		if w.Angle(2*w.Mid-x) != a {
			t.Fatalf("angle not symmetric at x=%g", x)
		}
		last = a
	}
	half := band.Source.HalfWidth()
	if got := spectacle.RtoD(w.Angle(w.Mid + half)); math.Abs(got-30) > 1e-9 {
		t.Errorf("angle at half width got %g degrees, want 30", got)
	}
	if w.Angle(w.Mid+w.Flat) != 0 {
		t.Error("bridge region bent")
	}
	// Ends curve away from the viewer.
	for i := 0; i < bb.Len(); i++ {
		if bb.Outer[i].Z > 0 {
			t.Errorf("point %d moved toward viewer: %v", i, bb.Outer[i])
		}
	}
}

func TestBendSymmetric(t *testing.T) {
	const tol = 1e-9
	band := hexagonBand(t, 4)
	bb, err := Bend(band, Config{Degree: 45, Protrusion: 2})
	if err != nil {
		t.Fatal(err)
	}
	for _, set := range [][]r3.Vec{bb.Inner, bb.Outer} {
	SEARCH:
		for i, p := range set {
			m := d3.MirrorX(p, bb.Warp.Mid)
			for _, q := range set {
				if d3.EqualWithin(m, q, tol) {
					continue SEARCH
				}
			}
			t.Errorf("mirror of bent point %d %v not found", i, p)
		}
	}
}

func TestWarpInverse(t *testing.T) {
	const tol = 1e-9
	w := Warp{Mid: 3, Flat: 7.5, Curvature: 1. / 80, Protrusion: 1.5}
	for _, p := range []r3.Vec{
		{X: 3, Y: 1, Z: 0},
		{X: 5, Y: -4, Z: 2},
		{X: 40, Y: 10, Z: 0},
		{X: -60, Y: 2, Z: 4},
		{X: 10.5, Y: 0, Z: -1},
	} {
		q := w.Apply(p)
		got, stretch := w.Invert(q)
		if !d3.EqualWithin(got, p, tol) {
			t.Errorf("inverse of %v got %v", p, got)
		}
		if want := (w.Radius() + p.Z) / w.Radius(); w.Angle(p.X) > 0 && math.Abs(stretch-want) > tol {
			t.Errorf("stretch at %v got %g, want %g", p, stretch, want)
		}
	}
}

func TestWarpNormal(t *testing.T) {
	w := Warp{Mid: 0, Flat: 5, Curvature: 1. / 50}
	const x, h = 30., 1e-6
	// Normal is perpendicular to the bent face tangent.
	a := w.Apply(r3.Vec{X: x - h})
	b := w.Apply(r3.Vec{X: x + h})
	tangent := r3.Unit(r3.Sub(b, a))
	if dot := r3.Dot(tangent, w.Normal(x)); math.Abs(dot) > 1e-6 {
		t.Errorf("normal not perpendicular to face, dot=%g", dot)
	}
	if n := w.Normal(x); n.X <= 0 || n.Z <= 0 {
		t.Errorf("right side normal should lean outward and toward viewer, got %v", n)
	}
}

func TestBendProtrusion(t *testing.T) {
	band := hexagonBand(t, 4)
	// Zero bend with a protrusion only lifts the bridge.
	bb, err := Bend(band, Config{Protrusion: 3})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < bb.Len(); i++ {
		if bb.Outer[i].X != band.Outer[i].X || bb.Outer[i].Y != band.Outer[i].Y {
			t.Errorf("point %d moved in the flat plane to %v", i, bb.Outer[i])
		}
		d := math.Abs(band.Outer[i].X - bb.Warp.Mid)
		z := bb.Outer[i].Z
		switch {
		case d >= bb.Warp.Flat && z != 0:
			t.Errorf("point %d outside bridge protruded to %g", i, z)
		case d < bb.Warp.Flat && z <= 0:
			t.Errorf("bridge point %d not protruded", i)
		}
	}
}

func TestBendErrors(t *testing.T) {
	band := hexagonBand(t, 4)
	for _, test := range []struct {
		band *offset.Band
		cfg  Config
		want error
	}{
		{band: nil, cfg: Config{}, want: spectacle.ErrDegenerateGeometry},
		{band: &offset.Band{}, cfg: Config{}, want: spectacle.ErrDegenerateGeometry},
		{band: band, cfg: Config{Degree: -1}, want: spectacle.ErrInvalidParameter},
		{band: band, cfg: Config{Degree: 91}, want: spectacle.ErrInvalidParameter},
		{band: band, cfg: Config{Degree: 10, FlatHalfWidth: 80}, want: spectacle.ErrDegenerateGeometry},
		{band: band, cfg: Config{Protrusion: -2}, want: spectacle.ErrInvalidParameter},
	} {
		_, err := Bend(test.band, test.cfg)
		if !errors.Is(err, test.want) {
			t.Errorf("config %+v: got %v, want %v", test.cfg, err, test.want)
		}
	}
}
