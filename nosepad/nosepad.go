// Package nosepad places a symmetric pair of rounded pads behind the bridge
// of a bent band.
package nosepad

import (
	"math"

	"github.com/soypat/spectacle"
	"github.com/soypat/spectacle/bend"
	"github.com/soypat/spectacle/internal/d3"
	"github.com/soypat/spectacle/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Config controls pad size, shape and orientation.
type Config struct {
	// ScalePerThickness relates the local frame thickness to the pad scale.
	ScalePerThickness float64
	// MaxScale clamps the pad scale on thick frames.
	MaxScale float64
	// Shape holds the ellipsoid radii of a pad of unit scale, in the pad's
	// local frame where +Z is the pad normal.
	Shape r3.Vec
	// Tilt is how many degrees the pad normal leans back from the
	// horizontal toward the face.
	Tilt float64
	// Rings and Segments set the resolution of the pad boundary mesh.
	Rings, Segments int
}

// DefaultConfig returns the pad configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		ScalePerThickness: 1,
		MaxScale:          6,
		Shape:             r3.Vec{X: 0.45, Y: 0.9, Z: 0.35},
		Tilt:              30,
		Rings:             8,
		Segments:          16,
	}
}

func (c Config) validate() error {
	switch {
	case !(c.ScalePerThickness > 0):
		return spectacle.InvalidParameter("nosepad_scale_per_thickness", "must be positive, got %g", c.ScalePerThickness)
	case !(c.MaxScale > 0):
		return spectacle.InvalidParameter("nosepad_max_scale", "must be positive, got %g", c.MaxScale)
	case d3.Min(c.Shape) <= 0:
		return spectacle.InvalidParameter("nosepad_shape", "radii must be positive, got %v", c.Shape)
	case !(c.Tilt >= 0 && c.Tilt < 90):
		return spectacle.InvalidParameter("nosepad_tilt", "must be in [0,90), got %g", c.Tilt)
	case c.Rings < 2 || c.Segments < 3:
		return spectacle.InvalidParameter("nosepad_resolution", "need at least 2 rings and 3 segments, got %d and %d", c.Rings, c.Segments)
	}
	return nil
}

// Pad is a nosepad: an ellipsoid placed and oriented near the bridge.
type Pad struct {
	// Side is -1 for the left pad and 1 for the right pad.
	Side int
	// Position is the ellipsoid center.
	Position r3.Vec
	// Normal points from the pad toward the nose, away from its lens region.
	Normal r3.Vec
	// Rotation takes the local +Z axis onto Normal.
	Rotation r3.Rotation
	// Scale is the clamped pad scale and Radii the resulting ellipsoid radii.
	Scale float64
	Radii r3.Vec

	rings, segments int
}

// Transform returns the affine transform taking the unit sphere onto the pad.
func (p *Pad) Transform() d3.Transform {
	return d3.ComposeTransform(p.Position, p.Radii, p.Rotation)
}

// Synthesize returns the left and right nosepads for bent. Pads are centered
// bridgeWidth apart on the inner boundary at the bridge center and scaled by
// localThickness.
func Synthesize(bent *bend.BentBand, bridgeWidth, localThickness float64, cfg Config) ([2]*Pad, error) {
	var pads [2]*Pad
	if !(bridgeWidth > 0) || math.IsInf(bridgeWidth, 1) {
		return pads, spectacle.InvalidParameter("bridge_width", "must be positive and finite, got %g", bridgeWidth)
	}
	if !(localThickness > 0) || math.IsInf(localThickness, 1) {
		return pads, spectacle.InvalidParameter("thickness", "must be positive and finite, got %g", localThickness)
	}
	if err := cfg.validate(); err != nil {
		return pads, err
	}
	if bent == nil || bent.Len() == 0 {
		return pads, spectacle.DegenerateGeometry(-1, "empty band")
	}
	o := bent.Band.Source
	if gap := o.LensGap(); bridgeWidth > gap {
		return pads, spectacle.InsufficientBridgeWidth("%g exceeds the %g between lens regions", bridgeWidth, gap)
	}

	anchor := bent.Inner[o.BridgeIndex()]
	scale := math.Min(cfg.ScalePerThickness*localThickness, cfg.MaxScale)
	tilt := spectacle.DtoR(cfg.Tilt)
	for k, side := range [2]int{-1, 1} {
		s := float64(side)
		normal := r3.Vec{X: -s * math.Cos(tilt), Z: -math.Sin(tilt)}
		pads[k] = &Pad{
			Side:     side,
			Position: r3.Vec{X: o.MidlineX() + s*bridgeWidth/2, Y: anchor.Y, Z: anchor.Z},
			Normal:   normal,
			Rotation: rotationOnto(r3.Vec{Z: 1}, normal),
			Scale:    scale,
			Radii:    r3.Scale(scale, cfg.Shape),
			rings:    cfg.Rings,
			segments: cfg.Segments,
		}
	}
	return pads, nil
}

// rotationOnto returns the rotation taking unit vector a onto unit vector b.
func rotationOnto(a, b r3.Vec) r3.Rotation {
	axis := r3.Cross(a, b)
	sin := r3.Norm(axis)
	cos := r3.Dot(a, b)
	if sin < 1e-12 {
		if cos > 0 {
			return r3.Rotation{Real: 1}
		}
		// Antiparallel: half turn about any axis perpendicular to a.
		perp := r3.Cross(a, r3.Vec{X: 1})
		if r3.Norm(perp) < 1e-6 {
			perp = r3.Cross(a, r3.Vec{Y: 1})
		}
		return r3.NewRotation(math.Pi, r3.Unit(perp))
	}
	return r3.NewRotation(math.Atan2(sin, cos), r3.Scale(1/sin, axis))
}

// Mesh returns a closed UV ellipsoid boundary mesh of the pad.
func (p *Pad) Mesh() *mesh.Mesh {
	return unitSphere(p.rings, p.segments).Transform(p.Transform())
}

// unitSphere returns a UV sphere with a vertex at each pole.
func unitSphere(rings, segments int) *mesh.Mesh {
	m := &mesh.Mesh{}
	m.Vertices = append(m.Vertices, r3.Vec{Z: 1})
	for i := 1; i < rings; i++ {
		phi := math.Pi * float64(i) / float64(rings)
		for j := 0; j < segments; j++ {
			theta := 2 * math.Pi * float64(j) / float64(segments)
			m.Vertices = append(m.Vertices, r3.Vec{
				X: math.Sin(phi) * math.Cos(theta),
				Y: math.Sin(phi) * math.Sin(theta),
				Z: math.Cos(phi),
			})
		}
	}
	south := len(m.Vertices)
	m.Vertices = append(m.Vertices, r3.Vec{Z: -1})

	ring := func(i, j int) int { return 1 + (i-1)*segments + j%segments }
	for j := 0; j < segments; j++ {
		m.Faces = append(m.Faces, [3]int{0, ring(1, j), ring(1, j+1)})
		for i := 1; i < rings-1; i++ {
			a, b := ring(i, j), ring(i, j+1)
			c, d := ring(i+1, j), ring(i+1, j+1)
			m.Faces = append(m.Faces, [3]int{a, c, d}, [3]int{a, d, b})
		}
		m.Faces = append(m.Faces, [3]int{south, ring(rings-1, j+1), ring(rings-1, j)})
	}
	return m
}
