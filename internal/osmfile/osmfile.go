// Package osmfile selects the road importer for an OSM file by its extension.
package osmfile

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/natevvv/osm-delivery-routing/internal/osmxml"
	"github.com/natevvv/osm-delivery-routing/internal/pbf"
	"github.com/natevvv/osm-delivery-routing/pkg/road"
)

func NewRoadImporter(filename string, logger *zap.Logger) (road.Importer, error) {
	switch {
	case strings.HasSuffix(filename, ".osm.pbf"), strings.HasSuffix(filename, ".pbf"):
		ri := pbf.NewRoadImporter(filename)
		ri.SetLogger(logger)
		return ri, nil
	case strings.HasSuffix(filename, ".osm"), strings.HasSuffix(filename, ".xml"):
		ri := osmxml.NewRoadImporter(filename)
		ri.SetLogger(logger)
		return ri, nil
	}
	return nil, fmt.Errorf("unsupported OSM file %q, expected .osm.pbf or .osm", filename)
}

// Import the roads of the file
func ImportRoads(filename string, logger *zap.Logger) ([]*road.Segment, error) {
	ri, err := NewRoadImporter(filename, logger)
	if err != nil {
		return nil, err
	}
	if err := ri.Import(); err != nil {
		return nil, fmt.Errorf("import %s: %w", filename, err)
	}
	return ri.Roads(), nil
}
