package kernel

import (
	"math"

	"github.com/soypat/spectacle/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// polygon is the signed distance to a closed loop of line segments,
// negative inside.
type polygon struct {
	vertex []r2.Vec  // vertices, first repeated at end
	vector []r2.Vec  // unit line vectors
	length []float64 // line lengths
	bb     d2.Box
}

func newPolygon(loop []r2.Vec) *polygon {
	s := &polygon{}
	s.vertex = append(append(s.vertex, loop...), loop[0])
	nsegs := len(loop)
	s.vector = make([]r2.Vec, nsegs)
	s.length = make([]float64, nsegs)
	for i := 0; i < nsegs; i++ {
		l := r2.Sub(s.vertex[i+1], s.vertex[i])
		s.length[i] = r2.Norm(l)
		if s.length[i] > 0 {
			s.vector[i] = r2.Scale(1/s.length[i], l)
		}
	}
	s.bb = d2.Set(loop).Bounds()
	return s
}

// Evaluate returns the signed distance from p to the polygon.
func (s *polygon) Evaluate(p r2.Vec) float64 {
	dd := math.MaxFloat64 // squared distance to polygon
	wn := 0               // winding number

	nsegs := len(s.vertex) - 1
	pb := r2.Sub(p, s.vertex[0])
	for i := 0; i < nsegs; i++ {
		a := s.vertex[i]
		b := s.vertex[i+1]
		pa := pb
		pb = r2.Sub(p, b)

		t := r2.Dot(pa, s.vector[i])                                  // projection onto line
		dn := r2.Dot(pa, r2.Vec{X: s.vector[i].Y, Y: -s.vector[i].X}) // normal distance to line
		switch {
		case t < 0:
			dd = math.Min(dd, r2.Norm2(pa))
		case t > s.length[i]:
			dd = math.Min(dd, r2.Norm2(pb))
		default:
			dd = math.Min(dd, dn*dn)
		}

		// See http://geomalgorithms.com/a03-_inclusion.html
		if a.Y <= p.Y {
			if b.Y > p.Y && dn < 0 { // upward crossing, p left of edge
				wn++
			}
		} else if b.Y <= p.Y && dn > 0 { // downward crossing, p right of edge
			wn--
		}
	}
	d := math.Sqrt(dd)
	if wn != 0 {
		return -d
	}
	return d
}

// profile is the region inside outer and outside inner.
type profile struct {
	outer, inner *polygon
}

func (s profile) Evaluate(p r2.Vec) float64 {
	return math.Max(s.outer.Evaluate(p), -s.inner.Evaluate(p))
}

func (s profile) Bounds() d2.Box { return s.outer.bb }
