// Package osmxml imports roads from OSM XML files.
package osmxml

import (
	"context"
	"io"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/zap"

	"github.com/natevvv/osm-delivery-routing/pkg/road"
)

// RoadImporter reads the roads of an .osm file in a single pass.
type RoadImporter struct {
	filename string
	roads    []*road.Segment
	logger   *zap.Logger
}

func NewRoadImporter(filename string) *RoadImporter {
	return &RoadImporter{filename: filename, roads: make([]*road.Segment, 0), logger: zap.NewNop()}
}

func (ri *RoadImporter) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ri.logger = logger
}

func (ri *RoadImporter) Import() error {
	file, err := os.Open(ri.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	roads, err := ReadRoads(context.Background(), file)
	if err != nil {
		return err
	}
	ri.roads = roads
	ri.logger.Info("imported roads", zap.String("file", ri.filename), zap.Int("roads", len(ri.roads)))
	return nil
}

func (ri *RoadImporter) Roads() []*road.Segment {
	return ri.roads
}

// ReadRoads returns the resolved road segments of the OSM XML document.
func ReadRoads(ctx context.Context, r io.Reader) ([]*road.Segment, error) {
	scanner := osmxml.New(ctx, r)
	defer scanner.Close()

	nodes := make(map[int64]orb.Point)
	segments := make([]*road.Segment, 0)
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			nodes[int64(o.ID)] = orb.Point{o.Lon, o.Lat}
		case *osm.Way:
			nodeIds := make([]int64, len(o.Nodes))
			for i, n := range o.Nodes {
				nodeIds[i] = int64(n.ID)
			}
			if segment := road.NewSegment(int64(o.ID), o.Tags.Map(), nodeIds); segment != nil {
				segments = append(segments, segment)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	roads := make([]*road.Segment, 0, len(segments))
	for _, segment := range segments {
		if segment.Resolve(nodes) {
			roads = append(roads, segment)
		}
	}
	return roads, nil
}
