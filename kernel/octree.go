package kernel

import (
	"math"

	"github.com/soypat/spectacle/internal/d3"
	"github.com/soypat/spectacle/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// index is an integer lattice coordinate.
type index [3]int

func (a index) add(b index) index {
	return index{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a index) addScalar(b int) index {
	return index{a[0] + b, a[1] + b, a[2] + b}
}

func (a index) scale(k int) index {
	return index{a[0] * k, a[1] * k, a[2] * k}
}

func (a index) less(b index) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	if a[1] != b[1] {
		return a[1] < b[1]
	}
	return a[2] < b[2]
}

// latticeShift is a fraction of a lattice unit that keeps sample points off
// flat faces at round coordinates.
const latticeShift = 0.3183

type cube struct {
	index      // origin of cube on the lattice
	n     uint // level of cube, side = 1 << n lattice units
}

var octants = [8]index{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

// octree samples a field over a cube centered on the field's mirror plane,
// or on its bounds when it has none, so the sampling lattice mirrors the way
// the field does.
type octree struct {
	dc     *distCache
	todo   []cube
	center int // lattice x index of the mirror plane
}

func newOctree(s sdf3, resolution float64) *octree {
	bb := d3.Box(s.Bounds())
	center := bb.Center()
	size := bb.Size()
	if mid, ok := mirrorPlane(s); ok {
		center.X = mid
		size.X = 2 * math.Max(mid-bb.Min.X, bb.Max.X-mid)
	}
	// Leaf cubes are at level 1 so their centers land on the lattice.
	unit := resolution / 2
	long := d3.Max(size) + 4*resolution
	levels := uint(math.Ceil(math.Log2(long / unit)))
	if levels < 2 {
		levels = 2
	}
	side := float64(int(1)<<levels) * unit
	origin := r3.Sub(center, d3.Elem(side/2))
	// Shift off axis aligned faces in Y and Z only, keeping the lattice
	// symmetric about the center X plane.
	origin = r3.Add(origin, r3.Vec{Y: latticeShift * unit, Z: latticeShift * unit})
	return &octree{
		dc:     newDistCache(s, origin, unit, levels+1),
		todo:   []cube{{index{}, levels}},
		center: 1 << (levels - 1),
	}
}

// polygonize walks the octree breadth first, discarding cubes the surface
// can not cross, and triangulates the surface in every remaining leaf.
func (oc *octree) polygonize() *mesh.Mesh {
	mt := newTetraMesher()
	for head := 0; head < len(oc.todo); head++ {
		c := oc.todo[head]
		if c.n == 1 {
			oc.leaf(mt, c)
			continue
		}
		n := c.n - 1
		s := 1 << n
		for _, o := range octants {
			sub := cube{c.add(o.scale(s)), n}
			if !oc.dc.isEmpty(sub) {
				oc.todo = append(oc.todo, sub)
			}
		}
	}
	oc.todo = oc.todo[:0]
	return mt.m
}

// leaf triangulates a level 1 cube.
func (oc *octree) leaf(mt *tetraMesher, c cube) {
	var corners [8]corner
	for i, o := range octants {
		idx := c.add(o.scale(2))
		p, d := oc.dc.evaluate(idx)
		corners[i] = corner{idx: idx, p: p, d: d}
	}
	mt.cube(&corners, c.index[0] < oc.center)
}

// distCache evaluates a field on the lattice, caching every evaluation.
type distCache struct {
	cache  map[index]float64
	origin r3.Vec
	unit   float64
	hdiag  []float64 // half diagonal of a cube of each level
	s      sdf3
}

func newDistCache(s sdf3, origin r3.Vec, unit float64, levels uint) *distCache {
	dc := &distCache{
		cache:  make(map[index]float64),
		origin: origin,
		unit:   unit,
		hdiag:  make([]float64, levels),
		s:      s,
	}
	for i := range dc.hdiag {
		side := float64(int(1)<<i) * unit
		dc.hdiag[i] = 0.5 * math.Sqrt(3) * side
	}
	return dc
}

func (dc *distCache) evaluate(vi index) (r3.Vec, float64) {
	v := r3.Add(dc.origin, r3.Scale(dc.unit, r3.Vec{X: float64(vi[0]), Y: float64(vi[1]), Z: float64(vi[2])}))
	if d, ok := dc.cache[vi]; ok {
		return v, d
	}
	d := dc.s.Evaluate(v)
	dc.cache[vi] = d
	return v, d
}

// isEmpty reports whether the surface can not cross cube c.
func (dc *distCache) isEmpty(c cube) bool {
	_, d := dc.evaluate(c.addScalar(1 << (c.n - 1)))
	return math.Abs(d) >= dc.hdiag[c.n]
}
