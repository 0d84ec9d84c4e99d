package mesh

import (
	"github.com/fogleman/simplify"
	"gonum.org/v1/gonum/spatial/r3"
)

// Simplify returns a decimated copy of m keeping roughly the given fraction
// of faces using quadric error edge collapses. keep must be in (0,1].
func (m *Mesh) Simplify(keep float64) *Mesh {
	if keep >= 1 || len(m.Faces) == 0 {
		return m
	}
	tris := make([]*simplify.Triangle, len(m.Faces))
	for i := range m.Faces {
		t := m.Triangle(i)
		tris[i] = simplify.NewTriangle(toVector(t[0]), toVector(t[1]), toVector(t[2]))
	}
	out := simplify.NewMesh(tris).Simplify(keep)
	result := make([]Triangle, 0, len(out.Triangles))
	for _, t := range out.Triangles {
		tri := Triangle{fromVector(t.V1), fromVector(t.V2), fromVector(t.V3)}
		if tri.Degenerate(0) {
			continue
		}
		result = append(result, tri)
	}
	return FromTriangles(result)
}

func toVector(v r3.Vec) simplify.Vector {
	return simplify.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

func fromVector(v simplify.Vector) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}
