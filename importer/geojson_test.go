package importer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r2"
)

const square = `[[0,0],[4,0],[4,4],[0,4],[0,0]]`
const hole = `[[1,1],[1,2],[2,2],[2,1],[1,1]]`

var (
	wantSquare = []r2.Vec{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}, {X: 0, Y: 0}}
	wantHole   = []r2.Vec{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 1}, {X: 1, Y: 1}}
)

func TestReadGeoJSON(t *testing.T) {
	for _, test := range []struct {
		name  string
		input string
		holes int
	}{
		{"geometry", `{"type":"Polygon","coordinates":[` + square + `]}`, 0},
		{"feature", `{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[` + square + `,` + hole + `]}}`, 1},
		{"collection", `{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[9,9]}},
			{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[` + square + `]}}]}`, 0},
		{"multipolygon", `{"type":"MultiPolygon","coordinates":[[` + square + `,` + hole + `],[` + hole + `]]}`, 1},
	} {
		s, err := ReadGeoJSON(strings.NewReader(test.input))
		if err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		if diff := cmp.Diff(wantSquare, s.Outline); diff != "" {
			t.Errorf("%s: outline mismatch (-want +got):\n%s", test.name, diff)
		}
		if len(s.Holes) != test.holes {
			t.Errorf("%s: got %d holes, want %d", test.name, len(s.Holes), test.holes)
		} else if test.holes > 0 {
			if diff := cmp.Diff(wantHole, s.Holes[0]); diff != "" {
				t.Errorf("%s: hole mismatch (-want +got):\n%s", test.name, diff)
			}
		}
	}
}

func TestReadGeoJSONErrors(t *testing.T) {
	_, err := ReadGeoJSON(strings.NewReader(`{"type":"LineString","coordinates":[[0,0],[1,1]]}`))
	if !errors.Is(err, ErrNoPolygon) {
		t.Errorf("line string: got %v, want %v", err, ErrNoPolygon)
	}
	if _, err := ReadGeoJSON(strings.NewReader(`{"type":`)); err == nil {
		t.Error("truncated input must fail")
	}
}

func TestWriteGeoJSON(t *testing.T) {
	in := &Shape{Outline: wantSquare, Holes: [][]r2.Vec{wantHole}}
	var buf bytes.Buffer
	if err := WriteGeoJSON(&buf, in); err != nil {
		t.Fatal(err)
	}
	out, err := ReadGeoJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("shape mismatch (-want +got):\n%s", diff)
	}
}
