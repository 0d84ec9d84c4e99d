// Package matter compensates printed parts for material shrinkage.
package matter

import (
	"strings"

	"github.com/soypat/spectacle"
	"github.com/soypat/spectacle/internal/d3"
	"github.com/soypat/spectacle/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// PLA (polylactic acid) is the most widely used plastic filament material in 3D printing.
	PLA = ViscousMaterial{Name: "pla", shrink: 0.2e-2} // 0.2% shrinkage
	// PETG shrinks a little more than PLA on cooling.
	PETG = ViscousMaterial{Name: "petg", shrink: 0.4e-2}
)

// ViscousMaterial is a printing material that contracts uniformly as it cools.
type ViscousMaterial struct {
	Name string
	// shrink is the thermal contraction shrinkage of a material once the material
	// cools to room temperature after the heated bed is turned off.
	shrink float64
}

// Lookup returns the material with the given case insensitive name. The empty
// name and "none" return a material that does not shrink.
func Lookup(name string) (ViscousMaterial, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return ViscousMaterial{Name: "none"}, nil
	case PLA.Name:
		return PLA, nil
	case PETG.Name:
		return PETG, nil
	}
	return ViscousMaterial{}, spectacle.InvalidParameter("material", "unknown material %q", name)
}

// Shrink returns the fractional contraction of the material.
func (m ViscousMaterial) Shrink() float64 { return m.shrink }

// ScaleFactor is the uniform scale that makes a printed part cool down to its
// modeled size.
func (m ViscousMaterial) ScaleFactor() float64 {
	return 1 / (1 - m.shrink)
}

// Scale returns m scaled about origin so it shrinks to size after printing.
// A material with no shrinkage returns msh itself.
func (m ViscousMaterial) Scale(msh *mesh.Mesh, origin r3.Vec) *mesh.Mesh {
	if m.shrink == 0 {
		return msh
	}
	return msh.Transform(d3.Transform{}.ScaleUniform(origin, m.ScaleFactor()))
}
