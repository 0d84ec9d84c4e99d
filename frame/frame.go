// Package frame assembles a printable eyeglasses frame mesh from a symmetric
// 2D outline.
package frame

import (
	"math"

	"github.com/rs/zerolog"
	"github.com/soypat/spectacle"
	"github.com/soypat/spectacle/bend"
	"github.com/soypat/spectacle/kernel"
	"github.com/soypat/spectacle/matter"
	"github.com/soypat/spectacle/mesh"
	"github.com/soypat/spectacle/nosepad"
	"github.com/soypat/spectacle/offset"
	"github.com/soypat/spectacle/outline"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Assembler runs the frame pipeline. The zero value is ready to use.
type Assembler struct {
	Log zerolog.Logger
	// Kernel builds and realizes solids. nil uses an SDF kernel configured
	// from the Params resolution and nosepad blend.
	Kernel kernel.Kernel
}

// Result holds every intermediate artifact of a successful assembly.
type Result struct {
	Params Params
	// Outline is the normalized outline scaled to the desired width.
	Outline *outline.Outline
	Band    *offset.Band
	Bent    *bend.BentBand
	Pads    [2]*nosepad.Pad
	// BevelRadius is the radius applied to the band edges, zero when not beveled.
	BevelRadius float64
	Material    matter.ViscousMaterial
	Mesh        *mesh.Mesh
}

// Assemble builds the frame mesh for raw with a default Assembler.
func Assemble(raw []r2.Vec, p Params) (*mesh.Mesh, error) {
	a := Assembler{Log: zerolog.Nop()}
	r, err := a.Build(raw, p)
	if err != nil {
		return nil, err
	}
	return r.Mesh, nil
}

// Build runs every stage in order and stops at the first error. Parameters
// are validated before any geometry is processed.
func (a *Assembler) Build(raw []r2.Vec, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	mat, err := matter.Lookup(p.Material)
	if err != nil {
		return nil, err
	}
	log := a.Log.With().Str("component", "frame").Logger()
	res := &Result{Params: p, Material: mat}

	o, err := outline.Normalize(raw, p.Tolerance)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("points", o.Len()).Float64("midline", o.MidlineX()).
		Float64("lens_gap", o.LensGap()).Msg("outline normalized")
	if w := o.Bounds().Size().X; w != p.DesiredWidth {
		o, err = o.Scale(p.DesiredWidth / w)
		if err != nil {
			return nil, err
		}
		log.Debug().Float64("from", w).Float64("to", p.DesiredWidth).Msg("outline scaled")
	}
	res.Outline = o

	ocfg := offset.DefaultConfig()
	ocfg.MiterLimit = p.MiterLimit
	thickness := func(int) float64 { return p.DesiredThickness }
	if p.MakeThin {
		thickness, err = offset.ThinProfile(o, p.DesiredThickness, p.ThinRatio)
		if err != nil {
			return nil, err
		}
	}
	band, err := offset.OffsetProfile(o, thickness, ocfg)
	if err != nil {
		return nil, err
	}
	res.Band = band
	log.Debug().Int("clamped", countTrue(band.Clamped)).Float64("miter_limit", band.MiterLimit).Msg("band offset")

	bent, err := bend.Bend(band, bend.Config{Degree: p.BendDegree, Protrusion: p.BridgeProtrusion})
	if err != nil {
		return nil, err
	}
	res.Bent = bent
	log.Debug().Float64("degree", p.BendDegree).Float64("radius", bent.Warp.Radius()).Msg("band bent")

	pcfg := nosepad.DefaultConfig()
	pcfg.MaxScale = p.NosepadMaxScale
	pads, err := nosepad.Synthesize(bent, p.BridgeWidth, band.Thickness[o.BridgeIndex()], pcfg)
	if err != nil {
		return nil, err
	}
	res.Pads = pads
	log.Debug().Float64("scale", pads[0].Scale).Msg("nosepads placed")

	k := a.Kernel
	if k == nil {
		k, err = kernel.NewSDF(p.Resolution, p.NosepadBlend)
		if err != nil {
			return nil, err
		}
	}
	solid, err := k.ExtrudeAlongNormal(bent, p.Depth)
	if err != nil {
		return nil, err
	}
	solids := []kernel.Solid{solid}
	for _, pad := range pads {
		s, err := k.Nosepad(pad)
		if err != nil {
			return nil, err
		}
		solids = append(solids, s)
	}
	solid, err = k.BooleanUnion(solids...)
	if err != nil {
		return nil, err
	}
	if p.Bevel {
		res.BevelRadius = p.BevelRadius
		if res.BevelRadius == 0 {
			res.BevelRadius = 0.25 * math.Min(minimum(band.Thickness), p.Depth)
		}
		solid, err = k.BevelEdges(solid, res.BevelRadius)
		if err != nil {
			return nil, err
		}
		log.Debug().Float64("radius", res.BevelRadius).Msg("edges beveled")
	}
	m, err := k.Realize(solid)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("vertices", len(m.Vertices)).Int("faces", len(m.Faces)).Msg("mesh realized")

	if p.Simplify > 0 {
		before := len(m.Faces)
		m = m.Simplify(1 - p.Simplify)
		if len(m.Faces) == 0 {
			return nil, spectacle.DegenerateGeometry(-1, "simplify removed every face")
		}
		log.Debug().Int("from", before).Int("to", len(m.Faces)).Msg("mesh simplified")
	}
	res.Mesh = mat.Scale(m, r3.Vec{X: o.MidlineX()})
	log.Info().Int("faces", len(res.Mesh.Faces)).Str("material", mat.Name).Msg("frame assembled")
	return res, nil
}

func countTrue(b []bool) (n int) {
	for _, v := range b {
		if v {
			n++
		}
	}
	return n
}

func minimum(s []float64) float64 {
	m := math.Inf(1)
	for _, v := range s {
		m = math.Min(m, v)
	}
	return m
}
