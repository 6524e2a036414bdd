package road

import (
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Create one line string feature per segment with its OSM id and road properties
func NewFeatureCollection(roads []*Segment) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, segment := range roads {
		if len(segment.Points) < 2 {
			continue
		}
		f := geojson.NewFeature(orb.LineString(segment.Points))
		f.ID = segment.ID
		f.Properties["type"] = segment.Type.String()
		f.Properties["oneway"] = segment.OneWay
		if segment.MaxSpeed > 0 {
			f.Properties["maxspeed"] = segment.MaxSpeed
		}
		if name, ok := segment.Tags["name"]; ok {
			f.Properties["name"] = name
		}
		fc.Append(f)
	}
	return fc
}

func ExportRoadGeoJson(roads []*Segment, filename string) error {
	data, err := NewFeatureCollection(roads).MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}
