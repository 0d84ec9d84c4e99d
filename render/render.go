// Package render writes frame meshes and band templates to files.
package render

import (
	"io"

	"github.com/soypat/spectacle/mesh"
)

// Renderer streams triangles. ReadTriangles returns io.EOF once every
// triangle has been read.
type Renderer interface {
	ReadTriangles(t []mesh.Triangle) (int, error)
}

// MeshRenderer is a Renderer over the faces of a mesh.
type MeshRenderer struct {
	m    *mesh.Mesh
	next int
}

// NewMeshRenderer returns a Renderer that reads the faces of m in order.
func NewMeshRenderer(m *mesh.Mesh) *MeshRenderer {
	return &MeshRenderer{m: m}
}

func (r *MeshRenderer) ReadTriangles(t []mesh.Triangle) (n int, err error) {
	for n < len(t) && r.next < len(r.m.Faces) {
		t[n] = r.m.Triangle(r.next)
		n++
		r.next++
	}
	if r.next == len(r.m.Faces) {
		err = io.EOF
	}
	return n, err
}
