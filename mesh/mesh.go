// Package mesh implements the indexed triangle mesh produced by the frame
// pipeline and the queries run on it.
package mesh

import (
	"github.com/soypat/spectacle/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle mesh. Faces are counter clockwise when seen
// from outside the solid.
type Mesh struct {
	Vertices []r3.Vec
	Faces    [][3]int
}

// Triangle is a triangle in 3D space.
type Triangle [3]r3.Vec

// Normal returns the unit normal of a triangle. Degenerate triangles have
// a zero or undefined normal.
func (t Triangle) Normal() r3.Vec {
	e1 := r3.Sub(t[1], t[0])
	e2 := r3.Sub(t[2], t[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Degenerate returns true if the triangle's area is below tol squared.
func (t Triangle) Degenerate(tol float64) bool {
	e1 := r3.Sub(t[1], t[0])
	e2 := r3.Sub(t[2], t[0])
	return r3.Norm(r3.Cross(e1, e2)) <= tol*tol
}

// FromTriangles builds an indexed mesh, welding vertices with identical coordinates.
func FromTriangles(tris []Triangle) *Mesh {
	m := &Mesh{Faces: make([][3]int, 0, len(tris))}
	index := make(map[r3.Vec]int)
	for _, t := range tris {
		var f [3]int
		for k, v := range t {
			i, ok := index[v]
			if !ok {
				i = len(m.Vertices)
				index[v] = i
				m.Vertices = append(m.Vertices, v)
			}
			f[k] = i
		}
		m.Faces = append(m.Faces, f)
	}
	return m
}

// Triangle returns the i'th face as a Triangle.
func (m *Mesh) Triangle(i int) Triangle {
	f := m.Faces[i]
	return Triangle{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}
}

// Triangles returns all faces as Triangles.
func (m *Mesh) Triangles() []Triangle {
	tris := make([]Triangle, len(m.Faces))
	for i := range tris {
		tris[i] = m.Triangle(i)
	}
	return tris
}

// Bounds returns the bounding box of the mesh vertices.
func (m *Mesh) Bounds() r3.Box {
	if len(m.Vertices) == 0 {
		return r3.Box{}
	}
	return r3.Box(d3.Set(m.Vertices).Bounds())
}

// Append adds the vertices and faces of b to m.
func (m *Mesh) Append(b *Mesh) {
	off := len(m.Vertices)
	m.Vertices = append(m.Vertices, b.Vertices...)
	for _, f := range b.Faces {
		m.Faces = append(m.Faces, [3]int{f[0] + off, f[1] + off, f[2] + off})
	}
}

// Transform returns a copy of m with every vertex transformed by t. Transforms
// with a negative determinant flip face winding to keep faces outward.
func (m *Mesh) Transform(t d3.Transform) *Mesh {
	out := &Mesh{
		Vertices: make([]r3.Vec, len(m.Vertices)),
		Faces:    make([][3]int, len(m.Faces)),
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = t.Transform(v)
	}
	flip := t.Det() < 0
	for i, f := range m.Faces {
		if flip {
			f[1], f[2] = f[2], f[1]
		}
		out.Faces[i] = f
	}
	return out
}

// Volume returns the signed volume enclosed by the mesh. It is positive for
// closed meshes with outward facing triangles.
func (m *Mesh) Volume() float64 {
	var v float64
	for i := range m.Faces {
		t := m.Triangle(i)
		v += r3.Dot(t[0], r3.Cross(t[1], t[2]))
	}
	return v / 6
}

type edge struct{ a, b int }

// OpenEdges returns the number of directed edges that are not matched by
// exactly one opposite edge. A closed, consistently oriented mesh has none.
func (m *Mesh) OpenEdges() int {
	count := make(map[edge]int, 3*len(m.Faces))
	for _, f := range m.Faces {
		for k := 0; k < 3; k++ {
			count[edge{f[k], f[(k+1)%3]}]++
		}
	}
	open := 0
	for e, c := range count {
		if c != 1 || count[edge{e.b, e.a}] != 1 {
			open++
		}
	}
	return open
}

// DegenerateFaces returns the number of faces with area below tol squared.
func (m *Mesh) DegenerateFaces(tol float64) int {
	n := 0
	for i := range m.Faces {
		if m.Triangle(i).Degenerate(tol) {
			n++
		}
	}
	return n
}
