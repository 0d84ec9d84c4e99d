package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/soypat/spectacle/internal/d2"
	"github.com/soypat/spectacle/nosepad"
	"github.com/soypat/spectacle/offset"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/entity"
	"gonum.org/v1/gonum/spatial/r2"
)

// Layer names used by the flat band templates.
const (
	LayerOuter   = "outer"
	LayerInner   = "inner"
	LayerMidline = "midline"
)

// WriteDXF saves the flat band as a DXF drawing at path, with the outer and
// inner boundaries as closed polylines and the symmetry midline as a line.
func WriteDXF(path string, band *offset.Band) error {
	d := dxf.NewDrawing()
	d.Header().LtScale = 1
	for _, loop := range []struct {
		layer string
		color color.ColorNumber
		pts   []r2.Vec
	}{
		{LayerOuter, color.Red, band.Outer},
		{LayerInner, color.Blue, band.Inner},
	} {
		d.AddLayer(loop.layer, loop.color, dxf.DefaultLineType, true)
		lwp := entity.NewLwPolyline(len(loop.pts))
		for i, p := range loop.pts {
			lwp.Vertices[i] = []float64{p.X, p.Y}
		}
		lwp.Close()
		d.AddEntity(lwp)
	}
	bb := d2.Set(band.Outer).Bounds()
	mid := band.Source.MidlineX()
	d.AddLayer(LayerMidline, color.Green, dxf.DefaultLineType, true)
	if _, err := d.Line(mid, bb.Min.Y, 0, mid, bb.Max.Y, 0); err != nil {
		return fmt.Errorf("render: dxf midline: %w", err)
	}
	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("render: saving dxf: %w", err)
	}
	return nil
}

// svgUnits is the number of SVG user units per millimetre.
const svgUnits = 10

// WriteSVG draws the flat band and the nosepad anchors as a millimetre scaled
// SVG template, viewed from the front with Y up.
func WriteSVG(w io.Writer, band *offset.Band, pads [2]*nosepad.Pad) error {
	const margin = 2
	bb := d2.Set(band.Outer).Bounds().Enlarge(r2.Vec{X: 2 * margin, Y: 2 * margin})
	size := bb.Size()
	wmm, hmm := int(math.Ceil(size.X)), int(math.Ceil(size.Y))
	toSVG := func(p r2.Vec) (int, int) {
		return int(math.Round((p.X - bb.Min.X) * svgUnits)), int(math.Round((bb.Max.Y - p.Y) * svgUnits))
	}
	loop := func(pts []r2.Vec) (xs, ys []int) {
		xs, ys = make([]int, len(pts)), make([]int, len(pts))
		for i, p := range pts {
			xs[i], ys[i] = toSVG(p)
		}
		return xs, ys
	}
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Startunit(wmm, hmm, "mm", fmt.Sprintf(`viewBox="0 0 %d %d"`, wmm*svgUnits, hmm*svgUnits))
	canvas.Title("spectacle frame template")
	canvas.Gid(LayerOuter)
	xs, ys := loop(band.Outer)
	canvas.Polygon(xs, ys, "fill:#468966;stroke:black;stroke-width:2")
	canvas.Gend()
	canvas.Gid(LayerInner)
	xs, ys = loop(band.Inner)
	canvas.Polygon(xs, ys, "fill:white;stroke:black;stroke-width:2")
	canvas.Gend()
	canvas.Gid(LayerMidline)
	mid := band.Source.MidlineX()
	x1, y1 := toSVG(r2.Vec{X: mid, Y: bb.Max.Y})
	x2, y2 := toSVG(r2.Vec{X: mid, Y: bb.Min.Y})
	canvas.Line(x1, y1, x2, y2, "stroke:gray;stroke-width:1;stroke-dasharray:8,4")
	canvas.Gend()
	canvas.Gid("nosepads")
	for _, p := range pads {
		if p == nil {
			continue
		}
		cx, cy := toSVG(r2.Vec{X: p.Position.X, Y: p.Position.Y})
		canvas.Ellipse(cx, cy, int(p.Radii.X*svgUnits), int(p.Radii.Y*svgUnits), "fill:none;stroke:#B64926;stroke-width:2")
	}
	canvas.Gend()
	canvas.End()
	return ew.err
}

// errWriter keeps the first write error.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(b)
	e.err = err
	return n, err
}
