package render

import (
	"fmt"
	"io"

	"github.com/soypat/spectacle"
	"github.com/soypat/spectacle/bend"
	"github.com/soypat/spectacle/offset"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotBand plots the flat outline and band boundaries in the XY plane.
// format is an image format known to gonum/plot such as "png" or "svg".
func PlotBand(w io.Writer, band *offset.Band, format string) error {
	p := plot.New()
	p.Title.Text = "Frame band"
	p.X.Label.Text = "x (mm)"
	p.Y.Label.Text = "y (mm)"
	err := plotutil.AddLines(p,
		"outline", loopXYs(band.Source.Points()),
		"inner", loopXYs(band.Inner),
		"outer", loopXYs(band.Outer),
	)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	p.Legend.Top = true
	return savePlot(w, p, 16*vg.Centimeter, 8*vg.Centimeter, format)
}

// PlotProfile plots band thickness and bend angle against the signed distance
// of each outline vertex from the midline.
func PlotProfile(w io.Writer, bent *bend.BentBand, format string) error {
	band := bent.Band
	o := band.Source
	thick := make(plotter.XYs, band.Len())
	angle := make(plotter.XYs, band.Len())
	for i := range thick {
		d := o.SignedDistance(i)
		thick[i] = plotter.XY{X: d, Y: band.Thickness[i]}
		angle[i] = plotter.XY{X: d, Y: spectacle.RtoD(bent.OuterAngle[i])}
	}
	p := plot.New()
	p.Title.Text = "Band profile"
	p.X.Label.Text = "distance from midline (mm)"
	err := plotutil.AddScatters(p, "thickness (mm)", thick, "bend (deg)", angle)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return savePlot(w, p, 16*vg.Centimeter, 8*vg.Centimeter, format)
}

func savePlot(w io.Writer, p *plot.Plot, width, height vg.Length, format string) error {
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// loopXYs returns the closed loop through pts.
func loopXYs(pts []r2.Vec) plotter.XYs {
	xys := make(plotter.XYs, len(pts)+1)
	for i, p := range pts {
		xys[i] = plotter.XY{X: p.X, Y: p.Y}
	}
	xys[len(pts)] = xys[0]
	return xys
}
