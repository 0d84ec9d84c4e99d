// Package importer reads glasses outlines from interchange formats.
package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"gonum.org/v1/gonum/spatial/r2"
)

// ErrNoPolygon is returned when the input holds no polygon geometry.
var ErrNoPolygon = errors.New("importer: no polygon found")

// Shape is a glasses outline with the lens holes that were drawn inside it.
// Rings keep their closing point.
type Shape struct {
	Outline []r2.Vec
	Holes   [][]r2.Vec
}

// ReadGeoJSON reads the first polygon of a FeatureCollection, Feature or bare
// geometry. The exterior ring is the outline and interior rings are holes.
// MultiPolygons contribute their first polygon.
func ReadGeoJSON(r io.Reader) (*Shape, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("importer: reading geojson: %w", err)
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("importer: %w", err)
	}
	var geoms []orb.Geometry
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("importer: %w", err)
		}
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("importer: %w", err)
		}
		geoms = append(geoms, f.Geometry)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("importer: %w", err)
		}
		geoms = append(geoms, g.Geometry())
	}
	for _, g := range geoms {
		if poly, ok := firstPolygon(g); ok {
			return fromPolygon(poly), nil
		}
	}
	return nil, ErrNoPolygon
}

func firstPolygon(g orb.Geometry) (orb.Polygon, bool) {
	switch g := g.(type) {
	case orb.Polygon:
		return g, len(g) > 0
	case orb.MultiPolygon:
		for _, p := range g {
			if len(p) > 0 {
				return p, true
			}
		}
	case orb.Collection:
		for _, c := range g {
			if p, ok := firstPolygon(c); ok {
				return p, true
			}
		}
	}
	return nil, false
}

func fromPolygon(p orb.Polygon) *Shape {
	s := &Shape{Outline: fromRing(p[0])}
	for _, hole := range p[1:] {
		s.Holes = append(s.Holes, fromRing(hole))
	}
	return s
}

func fromRing(r orb.Ring) []r2.Vec {
	pts := make([]r2.Vec, len(r))
	for i, p := range r {
		pts[i] = r2.Vec{X: p.X(), Y: p.Y()}
	}
	return pts
}

// WriteGeoJSON writes the outline and holes as a single polygon Feature.
func WriteGeoJSON(w io.Writer, s *Shape) error {
	poly := orb.Polygon{toRing(s.Outline)}
	for _, h := range s.Holes {
		poly = append(poly, toRing(h))
	}
	f := geojson.NewFeature(poly)
	b, err := f.MarshalJSON()
	if err != nil {
		return fmt.Errorf("importer: %w", err)
	}
	_, err = w.Write(b)
	return err
}

func toRing(pts []r2.Vec) orb.Ring {
	r := make(orb.Ring, len(pts))
	for i, p := range pts {
		r[i] = orb.Point{p.X, p.Y}
	}
	return r
}
