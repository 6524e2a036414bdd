package path

import (
	"context"
	"math"

	"github.com/natevvv/osm-delivery-routing/pkg/graph"
)

// NoPath is the length reported when the destination can't be reached
var NoPath = math.Inf(1)

type Navigator interface {
	ComputeShortestPath(ctx context.Context, origin, destination graph.NodeId) (float64, error) // Compute the shortest path from the origin to the destination. Returns NoPath if the destination is unreachable
	GetPath(origin, destination graph.NodeId) []graph.NodeId                                    // Get the path of a previous computation. This contains the nodeIds which lie on the path from source to destination
	GetSearchSpace() []*DijkstraItem                                                            // Returns the search space of a previous computation. This contains all items which were settled.
	GetPqPops() int                                                                             // Returns the amount of priority queue/heap pops which were performed during the search
	GetPqUpdates() int                                                                          // Get the number of pq updates
	GetEdgeRelaxations() int                                                                    // Get the number of relaxed edges
	GetRelaxationAttempts() int                                                                 // Get the number of attempted edge relaxations (some may early terminated)
	GetGraph() graph.Graph                                                                      // Get the used graph
}

// Check whether a computed length belongs to an existing path
func IsReachable(length float64) bool {
	return !math.IsInf(length, 1)
}
