// Package kernel builds solids from bent bands and nosepads and realizes them
// as triangle meshes.
package kernel

import (
	"fmt"
	"math"

	"github.com/soypat/spectacle"
	"github.com/soypat/spectacle/bend"
	"github.com/soypat/spectacle/mesh"
	"github.com/soypat/spectacle/nosepad"
	"gonum.org/v1/gonum/spatial/r3"
)

// Solid is a solid owned by the Kernel that created it.
type Solid interface {
	Bounds() r3.Box
}

// Kernel performs the solid operations needed to assemble a frame.
type Kernel interface {
	// ExtrudeAlongNormal sweeps the bent band depth units along its local
	// normal, toward the viewer.
	ExtrudeAlongNormal(band *bend.BentBand, depth float64) (Solid, error)
	// Nosepad returns the solid bounded by the pad's ellipsoid.
	Nosepad(pad *nosepad.Pad) (Solid, error)
	// BooleanUnion joins solids into one.
	BooleanUnion(solids ...Solid) (Solid, error)
	// BevelEdges rounds the sharp edges of extruded solids with the given radius.
	BevelEdges(s Solid, radius float64) (Solid, error)
	// Realize converts a solid into a closed triangle mesh.
	Realize(s Solid) (*mesh.Mesh, error)
}

// sdf3 is a signed distance field in 3D. Evaluate never overestimates the
// distance to the surface, negative inside.
type sdf3 interface {
	Evaluate(p r3.Vec) float64
	Bounds() r3.Box
}

var _ Kernel = (*SDF)(nil)

// SDF is a Kernel that represents solids as signed distance fields and
// realizes them with an octree sampled marching tetrahedra polygonizer.
type SDF struct {
	resolution float64
	blend      float64
}

// NewSDF returns an SDF kernel that polygonizes with cells of the given size
// and joins solids with a fillet of size blend. blend=0 is a sharp union.
func NewSDF(resolution, blend float64) (*SDF, error) {
	if !(resolution > 0) || math.IsInf(resolution, 1) {
		return nil, spectacle.InvalidParameter("resolution", "must be positive and finite, got %g", resolution)
	}
	if !(blend >= 0) || math.IsInf(blend, 1) {
		return nil, spectacle.InvalidParameter("nosepad_blend", "must be non-negative and finite, got %g", blend)
	}
	return &SDF{resolution: resolution, blend: blend}, nil
}

// Resolution returns the polygonizer cell size.
func (k *SDF) Resolution() float64 { return k.resolution }

func (k *SDF) ExtrudeAlongNormal(band *bend.BentBand, depth float64) (Solid, error) {
	if !(depth > 0) || math.IsInf(depth, 1) {
		return nil, spectacle.InvalidParameter("depth", "must be positive and finite, got %g", depth)
	}
	if band == nil || band.Len() < 3 {
		return nil, spectacle.DegenerateGeometry(-1, "band has fewer than 3 points")
	}
	return newBandSolid(band, depth)
}

func (k *SDF) Nosepad(pad *nosepad.Pad) (Solid, error) {
	if pad == nil {
		return nil, spectacle.InvalidParameter("nosepad", "nil pad")
	}
	return newEllipsoid(pad.Transform(), pad.Radii)
}

func (k *SDF) BooleanUnion(solids ...Solid) (Solid, error) {
	if len(solids) == 0 {
		return nil, spectacle.InvalidParameter("solids", "union of nothing")
	}
	if len(solids) == 1 {
		return solids[0], nil
	}
	u := &union{k: k.blend}
	for i, s := range solids {
		f, ok := s.(sdf3)
		if !ok || s == nil {
			return nil, &spectacle.Error{Kind: spectacle.ErrInvalidParameter, Index: i, Param: "solids",
				Msg: fmt.Sprintf("solid %T not created by this kernel", s)}
		}
		u.sdf = append(u.sdf, f)
	}
	u.computeBounds()
	return u, nil
}

func (k *SDF) BevelEdges(s Solid, radius float64) (Solid, error) {
	if !(radius >= 0) || math.IsInf(radius, 1) {
		return nil, spectacle.InvalidParameter("bevel_radius", "must be non-negative and finite, got %g", radius)
	}
	if radius == 0 {
		return s, nil
	}
	switch s := s.(type) {
	case *bandSolid:
		return s.withRound(radius)
	case *ellipsoid:
		return s, nil
	case *union:
		u := &union{k: s.k, sdf: make([]sdf3, len(s.sdf))}
		for i, f := range s.sdf {
			b, err := k.BevelEdges(f, radius)
			if err != nil {
				return nil, err
			}
			u.sdf[i] = b.(sdf3)
		}
		u.computeBounds()
		return u, nil
	}
	return nil, spectacle.InvalidParameter("solid", "can not bevel %T", s)
}

func (k *SDF) Realize(s Solid) (*mesh.Mesh, error) {
	f, ok := s.(sdf3)
	if !ok || s == nil {
		return nil, spectacle.InvalidParameter("solid", "solid %T not created by this kernel", s)
	}
	m := newOctree(f, k.resolution).polygonize()
	if len(m.Faces) == 0 {
		return nil, spectacle.DegenerateGeometry(-1, "solid has no surface at resolution %g", k.resolution)
	}
	return m, nil
}
