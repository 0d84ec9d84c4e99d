package frame

import (
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/soypat/spectacle"
	"github.com/soypat/spectacle/matter"
)

// Params configures frame assembly. Lengths are in millimetres, angles in
// degrees. Field names in errors are the TOML keys.
type Params struct {
	// DesiredWidth is the width the outline is scaled to before offsetting.
	DesiredWidth float64 `toml:"desired_width" validate:"finite,gt=0"`
	// DesiredThickness is the in-plane width of the band.
	DesiredThickness float64 `toml:"desired_thickness" validate:"finite,gt=0"`
	BendDegree       float64 `toml:"bend_degree" validate:"finite,gte=0,lte=90"`
	// BridgeWidth is the distance between the two nosepad anchors.
	BridgeWidth float64 `toml:"bridge_width" validate:"finite,gt=0"`
	Bevel       bool    `toml:"bevel"`
	// MakeThin narrows the band across the middle of each lens region.
	MakeThin bool `toml:"make_thin"`

	// Depth is the extrusion length of the band along its normal.
	Depth            float64 `toml:"depth" validate:"finite,gt=0"`
	BridgeProtrusion float64 `toml:"bridge_protrusion" validate:"finite,gte=0"`
	// Tolerance for closure, deduplication and the symmetry test.
	Tolerance       float64 `toml:"tolerance" validate:"finite,gt=0"`
	MiterLimit      float64 `toml:"miter_limit" validate:"finite,gte=0.5"`
	NosepadMaxScale float64 `toml:"nosepad_max_scale" validate:"finite,gt=0"`
	// NosepadBlend is the fillet size where the pads meet the band.
	NosepadBlend float64 `toml:"nosepad_blend" validate:"finite,gte=0"`
	// BevelRadius of the band edges when Bevel is set. Zero picks a radius
	// from the thickness and depth.
	BevelRadius float64 `toml:"bevel_radius" validate:"finite,gte=0"`
	ThinRatio   float64 `toml:"thin_ratio" validate:"finite,gt=0,lte=1"`
	// Resolution is the cell size of the mesh polygonizer.
	Resolution float64 `toml:"resolution" validate:"finite,gt=0"`
	// Simplify is the fraction of faces removed by decimation. Zero disables it.
	Simplify float64 `toml:"simplify" validate:"finite,gte=0,lt=1"`
	// Material names a print material to compensate shrinkage for.
	Material string `toml:"material"`
}

// DefaultParams returns the parameters used for fields a configuration omits.
func DefaultParams() Params {
	return Params{
		DesiredWidth:     130,
		DesiredThickness: 4,
		BendDegree:       30,
		BridgeWidth:      18,
		Depth:            4,
		Tolerance:        0.5,
		MiterLimit:       2,
		NosepadMaxScale:  6,
		NosepadBlend:     1,
		ThinRatio:        0.6,
		Resolution:       0.5,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	err := v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	if err != nil {
		panic(err)
	}
	return v
}

// Validate reports the first out of range parameter as an ErrInvalidParameter
// error naming its TOML key.
func (p Params) Validate() error {
	err := validate.Struct(p)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return spectacle.InvalidParameter(fe.Field(), "failed %s check, got %v", constraint(fe), fe.Value())
	} else if err != nil {
		return err
	}
	_, err = matter.Lookup(p.Material)
	return err
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

// DecodeParams reads TOML parameters from r on top of DefaultParams.
// Unknown keys are an error. The result is not validated.
func DecodeParams(r io.Reader) (Params, error) {
	p := DefaultParams()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return p, fmt.Errorf("frame: params line %d column %d: %w", row, col, err)
		}
		return p, fmt.Errorf("frame: decoding params: %w", err)
	}
	return p, nil
}

// Encode writes p as TOML.
func (p Params) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(p)
}
