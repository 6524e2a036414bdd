package dataset

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/natevvv/osm-delivery-routing/pkg/geometry"
	"github.com/natevvv/osm-delivery-routing/pkg/solver"
)

// Create a feature collection with the origin, one line string per cluster route and a point for every visited stop.
// Every node of a route needs a coordinate.
func NewRoutesFeatureCollection(s *solver.Solution, coords geometry.Coordinates) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()

	origin, err := coords.Lookup(s.Origin)
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	f := geojson.NewFeature(origin.Orb())
	f.Properties["kind"] = "origin"
	f.Properties["node"] = s.Origin
	fc.Append(f)

	for _, id := range s.ClusterIds() {
		r := s.Clusters[id].Route

		if len(r.Path) > 1 {
			points, err := coords.Points(r.Path)
			if err != nil {
				return nil, fmt.Errorf("cluster %d: %w", id, err)
			}
			line := make(orb.LineString, len(points))
			for i, p := range points {
				line[i] = p.Orb()
			}
			f := geojson.NewFeature(line)
			f.Properties["kind"] = "route"
			f.Properties["cluster"] = id
			f.Properties["cost"] = roundCost(r.Cost)
			fc.Append(f)
		}

		for order, stop := range r.Stops {
			p, err := coords.Lookup(stop)
			if err != nil {
				return nil, fmt.Errorf("cluster %d: %w", id, err)
			}
			f := geojson.NewFeature(p.Orb())
			f.Properties["kind"] = "stop"
			f.Properties["cluster"] = id
			f.Properties["node"] = stop
			f.Properties["order"] = order
			fc.Append(f)
		}
	}
	return fc, nil
}

func WriteRoutes(w io.Writer, s *solver.Solution, coords geometry.Coordinates) error {
	fc, err := NewRoutesFeatureCollection(s, coords)
	if err != nil {
		return err
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func WriteRoutesFile(filename string, s *solver.Solution, coords geometry.Coordinates) error {
	return writeFile(filename, func(w io.Writer) error { return WriteRoutes(w, s, coords) })
}
