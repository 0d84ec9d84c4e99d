package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/soypat/spectacle/frame"
	"github.com/soypat/spectacle/render"
)

const hexagonGeoJSON = `{"type":"Feature","properties":{"name":"hexagon"},"geometry":{"type":"Polygon","coordinates":[[
[50,0],[37.5,10],[25,20],[0,20],[-25,20],[-37.5,10],[-50,0],[-37.5,-10],[-25,-20],[0,-20],[25,-20],[37.5,-10],[50,0]]]}}`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "hexagon.geojson")
	if err := os.WriteFile(in, []byte(hexagonGeoJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	config := filepath.Join(dir, "params.toml")
	if err := os.WriteFile(config, []byte("bend_degree = 15.0\nresolution = 2.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := func(name string) string { return filepath.Join(dir, name) }
	var stdout, stderr bytes.Buffer
	err := run([]string{
		"-in", in, "-config", config, "-resolution", "1", "-v",
		"-o", out("frame.stl"), "-svg", out("band.svg"), "-dxf", out("band.dxf"),
		"-plot", out("band.png"), "-preview", out("preview.png"),
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("%v\n%s", err, stderr.String())
	}
	fp, err := os.Open(out("frame.stl"))
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	m, err := render.ReadSTL(fp)
	if err != nil {
		t.Fatal(err)
	}
	if m.Volume() <= 0 {
		t.Errorf("frame volume %g", m.Volume())
	}
	for _, name := range []string{"band.svg", "band.dxf", "band.png", "preview.png"} {
		if info, err := os.Stat(out(name)); err != nil || info.Size() == 0 {
			t.Errorf("output %s missing: %v", name, err)
		}
	}
	if !bytes.Contains(stderr.Bytes(), []byte("frame assembled")) {
		t.Errorf("expected assembly log, got:\n%s", stderr.String())
	}
}

func TestRunDumpConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-dump-config", "-width", "120", "-bevel"}, &stdout, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	got, err := frame.DecodeParams(&stdout)
	if err != nil {
		t.Fatal(err)
	}
	want := frame.DefaultParams()
	want.DesiredWidth = 120
	want.Bevel = true
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dumped config mismatch (-want +got):\n%s", diff)
	}
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(nil, &stdout, &stderr); err == nil {
		t.Error("expected error without -in")
	}
	if err := run([]string{"-in", filepath.Join(t.TempDir(), "missing.geojson")}, &stdout, &stderr); err == nil {
		t.Error("expected error for missing input")
	}
	if err := run([]string{"-nosuchflag"}, &stdout, &stderr); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-h"}, &stdout, &stderr)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("got %v, want flag.ErrHelp", err)
	}
	if code := exitCode(err); code != 0 {
		t.Errorf("help exits with %d, want 0", code)
	}
	if !bytes.Contains(stderr.Bytes(), []byte("-in")) {
		t.Errorf("usage not printed:\n%s", stderr.String())
	}
	if code := exitCode(nil); code != 0 {
		t.Errorf("success exits with %d", code)
	}
	if code := exitCode(errors.New("boom")); code != 1 {
		t.Errorf("failure exits with %d, want 1", code)
	}
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]string{
		"band.png": "png", "out/band.SVG": "svg", "band": "png", "dir.v1/band.pdf": "pdf",
	} {
		if got := formatOf(path); got != want {
			t.Errorf("formatOf(%q) = %q, want %q", path, got, want)
		}
	}
}
