package render

import (
	"io"

	"github.com/hschendel/stl"
	"github.com/soypat/spectacle/mesh"
)

// WriteASCIISTL writes m to w as an ASCII STL solid with the given name.
func WriteASCIISTL(w io.Writer, name string, m *mesh.Mesh) error {
	return toSolid(name, m, true).WriteAll(w)
}

func toSolid(name string, m *mesh.Mesh, ascii bool) *stl.Solid {
	solid := &stl.Solid{
		Name:      name,
		IsAscii:   ascii,
		Triangles: make([]stl.Triangle, len(m.Faces)),
	}
	for i := range m.Faces {
		d := stlFromTriangle(m.Triangle(i))
		solid.Triangles[i] = stl.Triangle{
			Normal:   stl.Vec3(d.Normal),
			Vertices: [3]stl.Vec3{d.Vertex1, d.Vertex2, d.Vertex3},
		}
	}
	return solid
}
