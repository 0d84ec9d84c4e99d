package render

import (
	"errors"
	"io"

	"github.com/soypat/spectacle/mesh"
)

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like io.ReadAll.
func RenderAll(r Renderer) ([]mesh.Triangle, error) {
	result := make([]mesh.Triangle, 0, 1<<12)
	buf := make([]mesh.Triangle, 1024)
	for {
		nt, err := r.ReadTriangles(buf)
		result = append(result, buf[:nt]...)
		if errors.Is(err, io.EOF) {
			return result, nil
		} else if err != nil {
			return result, err
		}
	}
}
