package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// SymmetryDeviation mirrors every vertex about the plane x=mid and returns the
// largest distance from a mirrored vertex to its nearest mesh vertex.
func (m *Mesh) SymmetryDeviation(mid float64) float64 {
	if len(m.Vertices) == 0 {
		return 0
	}
	pts := make(kdtree.Points, len(m.Vertices))
	for i, v := range m.Vertices {
		pts[i] = kdtree.Point{v.X, v.Y, v.Z}
	}
	tree := kdtree.New(pts, false)
	var worst float64
	for _, v := range m.Vertices {
		_, d2 := tree.Nearest(kdtree.Point{2*mid - v.X, v.Y, v.Z})
		worst = math.Max(worst, d2)
	}
	return math.Sqrt(worst)
}
