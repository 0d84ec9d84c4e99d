package render

import (
	"errors"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/spectacle/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// View configures a shaded preview render.
type View struct {
	// Width and Height of the output image in pixels.
	Width, Height int
	// Supersample renders at this multiple of the output size before
	// downsampling to smooth edges. Values below 1 are treated as 1.
	Supersample int
	// Eye is the camera position, LookAt the point looked at and Up the
	// camera up direction. The mesh is fit in a bi-unit cube first.
	Eye, LookAt, Up r3.Vec
	// Fovy is the vertical field of view in degrees.
	Fovy      float64
	Near, Far float64
	// Color and Background are hex colors such as "#468966".
	Color, Background string
}

// DefaultView looks at the frame from the front, slightly above and to the
// right of the viewer's eye line.
func DefaultView() View {
	return View{
		Width:       800,
		Height:      400,
		Supersample: 2,
		Eye:         r3.Vec{X: 0.8, Y: 0.6, Z: 3},
		Up:          r3.Vec{Y: 1},
		Fovy:        30,
		Near:        1,
		Far:         10,
		Color:       "#468966",
		Background:  "#FFF8E3",
	}
}

// Preview renders m with a Phong shader.
func Preview(m *mesh.Mesh, view View) (image.Image, error) {
	if len(m.Faces) == 0 {
		return nil, errors.New("render: empty mesh")
	}
	if view.Width <= 0 || view.Height <= 0 {
		return nil, errors.New("render: preview size must be positive")
	}
	scale := max(view.Supersample, 1)
	tris := make([]*fauxgl.Triangle, len(m.Faces))
	for i := range m.Faces {
		t := m.Triangle(i)
		tris[i] = fauxgl.NewTriangleForPoints(toFaux(t[0]), toFaux(t[1]), toFaux(t[2]))
	}
	fm := fauxgl.NewTriangleMesh(tris)
	fm.BiUnitCube()

	var (
		eye    = toFaux(view.Eye)
		center = toFaux(view.LookAt)
		up     = toFaux(view.Up)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
	)
	context := fauxgl.NewContext(view.Width*scale, view.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor(view.Background))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(view.Fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor(view.Color)
	context.Shader = shader
	context.DrawMesh(fm)
	img := context.Image()
	if scale > 1 {
		img = resize.Resize(uint(view.Width), uint(view.Height), img, resize.Bilinear)
	}
	return img, nil
}

func toFaux(v r3.Vec) fauxgl.Vector {
	return fauxgl.V(v.X, v.Y, v.Z)
}
