package kernel

import (
	"github.com/soypat/spectacle/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// corner is a sampled lattice point.
type corner struct {
	idx index
	p   r3.Vec
	d   float64
}

func (c *corner) inside() bool { return c.d < 0 }

// cubeTetrahedra splits a cube into six tetrahedra around the diagonal from
// corner 0 to corner 6. Every cube on one side of the lattice center uses the
// same diagonal so shared faces are split the same way on both sides.
var cubeTetrahedra = [6][4]int{
	{0, 1, 2, 6}, {0, 1, 5, 6}, {0, 3, 2, 6},
	{0, 3, 7, 6}, {0, 4, 5, 6}, {0, 4, 7, 6},
}

// mirroredTetrahedra is cubeTetrahedra reflected across the cube's center X
// plane, splitting around the diagonal from corner 1 to corner 7. Both
// splits cut the x=const faces along the same diagonal, so cubes of either
// kind can share a face.
var mirroredTetrahedra = [6][4]int{
	{1, 0, 3, 7}, {1, 0, 4, 7}, {1, 2, 3, 7},
	{1, 2, 6, 7}, {1, 5, 4, 7}, {1, 5, 6, 7},
}

// edgeKey identifies a surface vertex by the lattice edge it lies on. A
// vertex that coincides with a lattice point has both ends equal.
type edgeKey struct{ a, b index }

type tetraMesher struct {
	m     *mesh.Mesh
	verts map[edgeKey]int
}

func newTetraMesher() *tetraMesher {
	return &tetraMesher{m: &mesh.Mesh{}, verts: make(map[edgeKey]int)}
}

// cube triangulates the surface within a cube. Cubes left of the lattice
// center are split mirrored so the mesh mirrors the way the field does.
func (mt *tetraMesher) cube(c *[8]corner, mirrored bool) {
	tets := &cubeTetrahedra
	if mirrored {
		tets = &mirroredTetrahedra
	}
	for _, tet := range tets {
		mt.tetrahedron(&c[tet[0]], &c[tet[1]], &c[tet[2]], &c[tet[3]])
	}
}

func (mt *tetraMesher) tetrahedron(c0, c1, c2, c3 *corner) {
	var in, out [4]*corner
	var nin, nout int
	for _, c := range [4]*corner{c0, c1, c2, c3} {
		if c.inside() {
			in[nin] = c
			nin++
		} else {
			out[nout] = c
			nout++
		}
	}
	var ci, co r3.Vec
	for _, c := range in[:nin] {
		ci = r3.Add(ci, r3.Scale(1/float64(nin), c.p))
	}
	for _, c := range out[:nout] {
		co = r3.Add(co, r3.Scale(1/float64(nout), c.p))
	}
	outward := r3.Sub(co, ci)
	switch {
	case nin == 1:
		a := in[0]
		mt.triangle(outward, mt.vertex(a, out[0]), mt.vertex(a, out[1]), mt.vertex(a, out[2]))
	case nout == 1:
		a := out[0]
		mt.triangle(outward, mt.vertex(in[0], a), mt.vertex(in[1], a), mt.vertex(in[2], a))
	case nin == 2:
		a, b, c, d := in[0], in[1], out[0], out[1]
		v0, v1, v2, v3 := mt.vertex(a, c), mt.vertex(a, d), mt.vertex(b, d), mt.vertex(b, c)
		mt.triangle(outward, v0, v1, v2)
		mt.triangle(outward, v0, v2, v3)
	}
}

// vertex returns the mesh vertex where the surface crosses the edge from
// inside corner a to outside corner b.
func (mt *tetraMesher) vertex(a, b *corner) int {
	var key edgeKey
	switch {
	case b.d == 0:
		key = edgeKey{b.idx, b.idx}
	case b.idx.less(a.idx):
		key = edgeKey{b.idx, a.idx}
	default:
		key = edgeKey{a.idx, b.idx}
	}
	if i, ok := mt.verts[key]; ok {
		return i
	}
	p := b.p
	if b.d != 0 {
		t := a.d / (a.d - b.d)
		p = r3.Add(a.p, r3.Scale(t, r3.Sub(b.p, a.p)))
	}
	i := len(mt.m.Vertices)
	mt.m.Vertices = append(mt.m.Vertices, p)
	mt.verts[key] = i
	return i
}

// triangle adds a face oriented so its normal agrees with outward.
func (mt *tetraMesher) triangle(outward r3.Vec, a, b, c int) {
	if a == b || b == c || a == c {
		return
	}
	v := mt.m.Vertices
	n := r3.Cross(r3.Sub(v[b], v[a]), r3.Sub(v[c], v[a]))
	dot := r3.Dot(n, outward)
	switch {
	case dot == 0:
		return
	case dot < 0:
		b, c = c, b
	}
	mt.m.Faces = append(mt.m.Faces, [3]int{a, b, c})
}
