package road

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"

	"github.com/natevvv/osm-delivery-routing/pkg/geometry"
	"github.com/natevvv/osm-delivery-routing/pkg/graph"
)

// RoadGraph is the routing graph of a road network
type RoadGraph struct {
	Graph       *graph.AdjacencyListGraph
	Coordinates geometry.Coordinates // web mercator position of every node
	OsmIds      []int64              // OsmIds[nodeId] is the id of the OSM node
}

// BuildGraph creates an undirected graph of the segments.
// Node ids are assigned in order of the first appearance of an OSM node.
// Positions are projected to web mercator and every edge is weighted with the planar distance between its endpoints,
// so the straight line distance between two nodes never overestimates the length of a path between them.
// One-way restrictions are ignored.
func BuildGraph(segments []*Segment) (*RoadGraph, error) {
	rg := &RoadGraph{
		Graph:       graph.NewAdjacencyListGraph(),
		Coordinates: make(geometry.Coordinates),
		OsmIds:      make([]int64, 0),
	}
	nodeIds := make(map[int64]graph.NodeId)

	nodeId := func(osmId int64, position orb.Point) graph.NodeId {
		if id, ok := nodeIds[osmId]; ok {
			return id
		}
		id := len(rg.OsmIds)
		nodeIds[osmId] = id
		rg.OsmIds = append(rg.OsmIds, osmId)
		rg.Coordinates[id] = geometry.Point(project.WGS84.ToMercator(position))
		return id
	}

	for _, segment := range segments {
		if len(segment.Points) != len(segment.NodeIds) {
			// not resolved
			continue
		}
		for i := 0; i+1 < len(segment.NodeIds); i++ {
			if segment.NodeIds[i] == segment.NodeIds[i+1] {
				continue
			}
			from := nodeId(segment.NodeIds[i], segment.Points[i])
			to := nodeId(segment.NodeIds[i+1], segment.Points[i+1])
			distance := planar.Distance(rg.Coordinates[from].Orb(), rg.Coordinates[to].Orb())
			if err := rg.Graph.AddEdge(from, to, distance); err != nil {
				return nil, err
			}
		}
	}
	return rg, nil
}
