// Package offset thickens an outline into a band of given width centered on
// the outline path.
package offset

import (
	"math"

	"github.com/soypat/spectacle"
	"github.com/soypat/spectacle/internal/d2"
	"github.com/soypat/spectacle/outline"
	"gonum.org/v1/gonum/spatial/r2"
)

// Config controls the offsetting of sharp corners.
type Config struct {
	// MiterLimit bounds the distance from an outline vertex to its offset
	// vertices as a multiple of the local thickness. Must be >= 0.5.
	MiterLimit float64
	// RetryFactor scales MiterLimit for the single retry performed when the
	// first attempt self intersects.
	RetryFactor float64
}

// DefaultConfig returns the offset configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		MiterLimit:  2,
		RetryFactor: 0.5,
	}
}

// Band is an outline thickened into two index aligned boundaries.
type Band struct {
	// Source is the outline the band was built from. Vertex i of Inner,
	// Outer and Source correspond.
	Source *outline.Outline
	// Inner and Outer are the boundaries facing into and out of the outline.
	Inner, Outer []r2.Vec
	// Normals are outward unit bisectors at each outline vertex.
	Normals []r2.Vec
	// Thickness is the band width requested at each vertex.
	Thickness []float64
	// Clamped flags vertices whose miter was limited.
	Clamped []bool
	// MiterLimit is the limit in effect when the band was built.
	MiterLimit float64
}

// Len returns the number of vertices of each boundary.
func (b *Band) Len() int { return len(b.Inner) }

// Offset thickens o into a band of constant thickness.
func Offset(o *outline.Outline, thickness float64, cfg Config) (*Band, error) {
	if !(thickness >= 0) || math.IsInf(thickness, 1) {
		return nil, spectacle.InvalidParameter("thickness", "must be non-negative and finite, got %g", thickness)
	}
	return OffsetProfile(o, func(int) float64 { return thickness }, cfg)
}

// OffsetProfile thickens o into a band whose thickness at vertex i is thicknessAt(i).
func OffsetProfile(o *outline.Outline, thicknessAt func(i int) float64, cfg Config) (*Band, error) {
	if !(cfg.MiterLimit >= 0.5) {
		return nil, spectacle.InvalidParameter("miter_limit", "must be at least 0.5, got %g", cfg.MiterLimit)
	}
	if !(cfg.RetryFactor > 0 && cfg.RetryFactor <= 1) {
		return nil, spectacle.InvalidParameter("retry_factor", "must be in (0,1], got %g", cfg.RetryFactor)
	}
	n := o.Len()
	thick := make([]float64, n)
	var maxThick float64
	for i := range thick {
		thick[i] = thicknessAt(i)
		if !(thick[i] >= 0) || math.IsInf(thick[i], 1) {
			return nil, &spectacle.Error{Kind: spectacle.ErrInvalidParameter, Index: i, Param: "thickness",
				Msg: "must be non-negative and finite"}
		}
		maxThick = math.Max(maxThick, thick[i])
	}
	normals, cosHalf, err := vertexNormals(o)
	if err != nil {
		return nil, err
	}
	b := miter(o, normals, cosHalf, thick, cfg.MiterLimit)
	if maxThick == 0 {
		return b, nil
	}
	bad := b.selfIntersection(o.Tolerance())
	if bad < 0 {
		return b, nil
	}
	b = miter(o, normals, cosHalf, thick, cfg.MiterLimit*cfg.RetryFactor)
	if bad = b.selfIntersection(o.Tolerance()); bad >= 0 {
		return nil, spectacle.DegenerateGeometry(bad, "band self intersects at thickness %g", maxThick)
	}
	return b, nil
}

// vertexNormals returns the outward unit bisector at every vertex and the
// cosine of the angle between the bisector and the adjacent edge normals.
func vertexNormals(o *outline.Outline) (normals []r2.Vec, cosHalf []float64, err error) {
	n := o.Len()
	edge := make([]r2.Vec, n)
	for i := 0; i < n; i++ {
		dir := r2.Sub(o.At((i+1)%n), o.At(i))
		l := r2.Norm(dir)
		if l == 0 {
			return nil, nil, spectacle.DegenerateGeometry(i, "zero length edge")
		}
		// Outward normal of a counter clockwise edge.
		edge[i] = r2.Vec{X: dir.Y / l, Y: -dir.X / l}
	}
	normals = make([]r2.Vec, n)
	cosHalf = make([]float64, n)
	for i := 0; i < n; i++ {
		prev, next := edge[(i-1+n)%n], edge[i]
		sum := r2.Add(prev, next)
		l := r2.Norm(sum)
		if l < 1e-9 {
			return nil, nil, spectacle.DegenerateGeometry(i, "edges reverse direction")
		}
		normals[i] = r2.Scale(1/l, sum)
		cosHalf[i] = r2.Dot(normals[i], next)
	}
	return normals, cosHalf, nil
}

func miter(o *outline.Outline, normals []r2.Vec, cosHalf, thick []float64, limit float64) *Band {
	n := o.Len()
	b := &Band{
		Source:     o,
		Inner:      make([]r2.Vec, n),
		Outer:      make([]r2.Vec, n),
		Normals:    normals,
		Thickness:  thick,
		Clamped:    make([]bool, n),
		MiterLimit: limit,
	}
	for i := 0; i < n; i++ {
		p := o.At(i)
		dist := thick[i] / 2 / cosHalf[i]
		if max := limit * thick[i]; dist > max {
			dist = max
			b.Clamped[i] = true
		}
		b.Inner[i] = r2.Sub(p, r2.Scale(dist, normals[i]))
		b.Outer[i] = r2.Add(p, r2.Scale(dist, normals[i]))
	}
	return b
}

// ThinProfile returns a thickness profile for OffsetProfile that narrows the
// band to ratio*thickness halfway across each lens region. The bridge and the
// outer ends keep the full thickness.
func ThinProfile(o *outline.Outline, thickness, ratio float64) (func(i int) float64, error) {
	if !(ratio > 0 && ratio <= 1) {
		return nil, spectacle.InvalidParameter("thin_ratio", "must be in (0,1], got %g", ratio)
	}
	span, half := o.BridgeHalfSpan(), o.HalfWidth()
	return func(i int) float64 {
		if o.Side(i) == 0 || half <= span {
			return thickness
		}
		u := spectacle.Clamp((math.Abs(o.SignedDistance(i))-span)/(half-span), 0, 1)
		return thickness * (1 - (1-ratio)*math.Sin(math.Pi*u))
	}, nil
}

// signedArea of a loop.
func signedArea(pts []r2.Vec) float64 { return d2.Set(pts).SignedArea() }
