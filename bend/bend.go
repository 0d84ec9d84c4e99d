// Package bend lifts a flat band into 3D, curving both lens regions away from
// the viewer to follow the face.
package bend

import (
	"math"

	"github.com/soypat/spectacle"
	"github.com/soypat/spectacle/internal/d3"
	"github.com/soypat/spectacle/offset"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// MaxDegree is the largest accepted bend.
const MaxDegree = 90

// Config controls the bend.
type Config struct {
	// Degree is the total bend in degrees reached at the outline's outermost
	// point. Zero with zero Protrusion leaves the band flat and unmoved.
	Degree float64
	// FlatHalfWidth is the half width of the unbent bridge region. Zero
	// uses the outline bridge half span.
	FlatHalfWidth float64
	// Protrusion pushes the bridge toward the viewer. It applies at any
	// Degree, lifting only points within the flat bridge region along Z.
	Protrusion float64
}

// BentBand is a Band lifted into 3D. Index i of every slice corresponds to
// index i of the flat Band.
type BentBand struct {
	Band *offset.Band
	Warp Warp

	Inner, Outer             []r3.Vec
	InnerNormal, OuterNormal []r3.Vec
	// InnerAngle and OuterAngle are the bend angles in radians.
	InnerAngle, OuterAngle []float64
}

// Len returns the number of points in each boundary.
func (bb *BentBand) Len() int { return len(bb.Inner) }

// Bend computes the Warp described by cfg for band and applies it.
func Bend(band *offset.Band, cfg Config) (*BentBand, error) {
	if band == nil || band.Len() == 0 {
		return nil, spectacle.DegenerateGeometry(-1, "empty band")
	}
	if !(cfg.Degree >= 0 && cfg.Degree <= MaxDegree) {
		return nil, spectacle.InvalidParameter("bend_degree", "must be in [0,%d], got %g", MaxDegree, cfg.Degree)
	}
	if !(cfg.Protrusion >= 0) || math.IsInf(cfg.Protrusion, 1) {
		return nil, spectacle.InvalidParameter("bridge_protrusion", "must be non-negative and finite, got %g", cfg.Protrusion)
	}
	if !(cfg.FlatHalfWidth >= 0) {
		return nil, spectacle.InvalidParameter("flat_half_width", "must be non-negative, got %g", cfg.FlatHalfWidth)
	}
	o := band.Source
	w := Warp{
		Mid:        o.MidlineX(),
		Flat:       cfg.FlatHalfWidth,
		Protrusion: cfg.Protrusion,
	}
	if w.Flat == 0 {
		w.Flat = o.BridgeHalfSpan()
	}
	if cfg.Degree > 0 {
		reach := o.HalfWidth() - w.Flat
		if reach <= 0 {
			return nil, spectacle.DegenerateGeometry(-1, "no lens region outside flat half width %g", w.Flat)
		}
		w.Curvature = spectacle.DtoR(cfg.Degree) / reach
	}
	return Apply(band, w), nil
}

// Apply lifts band into 3D with an explicit Warp.
func Apply(band *offset.Band, w Warp) *BentBand {
	n := band.Len()
	bb := &BentBand{
		Band:        band,
		Warp:        w,
		Inner:       make([]r3.Vec, n),
		Outer:       make([]r3.Vec, n),
		InnerNormal: make([]r3.Vec, n),
		OuterNormal: make([]r3.Vec, n),
		InnerAngle:  make([]float64, n),
		OuterAngle:  make([]float64, n),
	}
	lift := func(p r2.Vec) (r3.Vec, r3.Vec, float64) {
		return w.Apply(d3.FromR2(p, 0)), w.Normal(p.X), w.Angle(p.X)
	}
	for i := 0; i < n; i++ {
		bb.Inner[i], bb.InnerNormal[i], bb.InnerAngle[i] = lift(band.Inner[i])
		bb.Outer[i], bb.OuterNormal[i], bb.OuterAngle[i] = lift(band.Outer[i])
	}
	return bb
}

// Bounds returns the bounding box of the bent boundaries.
func (bb *BentBand) Bounds() r3.Box {
	box := d3.Set(bb.Inner).Bounds().Extend(d3.Set(bb.Outer).Bounds())
	return r3.Box(box)
}
