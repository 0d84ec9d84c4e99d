// Command spectacle turns a symmetric eyeglasses outline into a printable
// frame mesh.
//
// Usage:
//
//	spectacle -in outline.geojson [-config params.toml] [-o frame.stl] [flags]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/fauxgl"
	"github.com/rs/zerolog"
	"github.com/soypat/spectacle/frame"
	"github.com/soypat/spectacle/importer"
	"github.com/soypat/spectacle/render"
)

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if code := exitCode(err); code != 0 {
		fmt.Fprintln(os.Stderr, "spectacle:", err)
		os.Exit(code)
	}
}

// exitCode maps the result of run to a process exit status. Asking for help
// is not a failure.
func exitCode(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return 0
	}
	return 1
}

type outputs struct {
	stl, ascii, dxf, svg, plot, profile, preview string
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("spectacle", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		in         = fs.String("in", "", "GeoJSON `file` with the outline polygon (required)")
		configPath = fs.String("config", "", "TOML `file` with frame parameters")
		dumpConfig = fs.Bool("dump-config", false, "print the effective parameters as TOML and exit")
		verbose    = fs.Bool("v", false, "log every pipeline stage")
		out        outputs
	)
	fs.StringVar(&out.stl, "o", "frame.stl", "binary STL output `file`")
	fs.StringVar(&out.ascii, "ascii", "", "ASCII STL output `file`")
	fs.StringVar(&out.dxf, "dxf", "", "DXF band template output `file`")
	fs.StringVar(&out.svg, "svg", "", "SVG band template output `file`")
	fs.StringVar(&out.plot, "plot", "", "band plot output `file` (.png, .svg or .pdf)")
	fs.StringVar(&out.profile, "profile", "", "thickness and bend profile plot output `file`")
	fs.StringVar(&out.preview, "preview", "", "shaded preview PNG output `file`")
	// Parameter overrides, applied over the config file when set.
	var over frame.Params
	fs.Float64Var(&over.DesiredWidth, "width", 0, "outline width in mm")
	fs.Float64Var(&over.DesiredThickness, "thickness", 0, "band thickness in mm")
	fs.Float64Var(&over.BendDegree, "bend", 0, "bend at the frame ends in degrees")
	fs.Float64Var(&over.BridgeWidth, "bridge", 0, "distance between nosepads in mm")
	fs.Float64Var(&over.Depth, "depth", 0, "band depth in mm")
	fs.Float64Var(&over.Resolution, "resolution", 0, "mesh cell size in mm")
	fs.Float64Var(&over.Simplify, "simplify", 0, "fraction of faces to remove")
	fs.BoolVar(&over.Bevel, "bevel", false, "round the band edges")
	fs.BoolVar(&over.MakeThin, "thin", false, "thin the band across the lenses")
	fs.StringVar(&over.Material, "material", "", "print material to compensate shrinkage for")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	params := frame.DefaultParams()
	if *configPath != "" {
		fp, err := os.Open(*configPath)
		if err != nil {
			return err
		}
		params, err = frame.DecodeParams(fp)
		fp.Close()
		if err != nil {
			return err
		}
		log.Debug().Str("file", *configPath).Msg("config loaded")
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			params.DesiredWidth = over.DesiredWidth
		case "thickness":
			params.DesiredThickness = over.DesiredThickness
		case "bend":
			params.BendDegree = over.BendDegree
		case "bridge":
			params.BridgeWidth = over.BridgeWidth
		case "depth":
			params.Depth = over.Depth
		case "resolution":
			params.Resolution = over.Resolution
		case "simplify":
			params.Simplify = over.Simplify
		case "bevel":
			params.Bevel = over.Bevel
		case "thin":
			params.MakeThin = over.MakeThin
		case "material":
			params.Material = over.Material
		}
	})
	if *dumpConfig {
		return params.Encode(stdout)
	}
	if *in == "" {
		fs.Usage()
		return errors.New("missing -in outline file")
	}

	fp, err := os.Open(*in)
	if err != nil {
		return err
	}
	shape, err := importer.ReadGeoJSON(fp)
	fp.Close()
	if err != nil {
		return err
	}
	if len(shape.Holes) > 0 {
		log.Warn().Int("holes", len(shape.Holes)).Msg("lens holes in input are ignored")
	}

	start := time.Now()
	asm := frame.Assembler{Log: log}
	res, err := asm.Build(shape.Outline, params)
	if err != nil {
		return err
	}
	log.Info().Dur("elapsed", time.Since(start)).Int("faces", len(res.Mesh.Faces)).Msg("frame built")
	return writeOutputs(log, res, out)
}

func writeOutputs(log zerolog.Logger, res *frame.Result, out outputs) error {
	if out.stl != "" {
		if err := render.CreateSTL(out.stl, render.NewMeshRenderer(res.Mesh)); err != nil {
			return err
		}
		log.Info().Str("file", out.stl).Msg("wrote STL")
	}
	if out.ascii != "" {
		err := createFile(out.ascii, func(w io.Writer) error {
			return render.WriteASCIISTL(w, "frame", res.Mesh)
		})
		if err != nil {
			return err
		}
	}
	if out.dxf != "" {
		if err := render.WriteDXF(out.dxf, res.Band); err != nil {
			return err
		}
	}
	if out.svg != "" {
		err := createFile(out.svg, func(w io.Writer) error {
			return render.WriteSVG(w, res.Band, res.Pads)
		})
		if err != nil {
			return err
		}
	}
	if out.plot != "" {
		err := createFile(out.plot, func(w io.Writer) error {
			return render.PlotBand(w, res.Band, formatOf(out.plot))
		})
		if err != nil {
			return err
		}
	}
	if out.profile != "" {
		err := createFile(out.profile, func(w io.Writer) error {
			return render.PlotProfile(w, res.Bent, formatOf(out.profile))
		})
		if err != nil {
			return err
		}
	}
	if out.preview != "" {
		img, err := render.Preview(res.Mesh, render.DefaultView())
		if err != nil {
			return err
		}
		if err := fauxgl.SavePNG(out.preview, img); err != nil {
			return err
		}
	}
	return nil
}

func createFile(path string, write func(io.Writer) error) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(fp); err != nil {
		fp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return fp.Close()
}

// formatOf returns the plot format named by a file extension, png by default.
func formatOf(path string) string {
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		return strings.ToLower(ext)
	}
	return "png"
}
