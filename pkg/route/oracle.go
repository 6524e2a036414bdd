package route

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/natevvv/osm-delivery-routing/pkg/geometry"
	"github.com/natevvv/osm-delivery-routing/pkg/graph"
	"github.com/natevvv/osm-delivery-routing/pkg/graph/path"
)

// SearchMode selects the shortest path algorithm which is used to compute the costs between stops
type SearchMode string

const (
	// heuristic point to point search, requires admissible coordinates
	ModeAStar SearchMode = "astar"
	// single source search without heuristic
	ModeDijkstra SearchMode = "dijkstra"
)

func ParseSearchMode(s string) (SearchMode, error) {
	switch SearchMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeAStar, "":
		return ModeAStar, nil
	case ModeDijkstra:
		return ModeDijkstra, nil
	}
	return "", fmt.Errorf("unknown search mode %q", s)
}

// CostOracle answers shortest path queries between two nodes.
// An unreachable destination is reported with path.NoPath and an empty path, not with an error.
type CostOracle interface {
	ShortestPath(ctx context.Context, origin, destination graph.NodeId) (cost float64, nodes []graph.NodeId, err error)
	Navigator() path.Navigator
}

// AStarOracle runs one A* search per query.
type AStarOracle struct {
	astar *path.UniversalDijkstra
}

func NewAStarOracle(g graph.Graph, coords geometry.Coordinates) *AStarOracle {
	return &AStarOracle{astar: path.NewAStar(g, coords)}
}

func (o *AStarOracle) ShortestPath(ctx context.Context, origin, destination graph.NodeId) (float64, []graph.NodeId, error) {
	length, err := o.astar.ComputeShortestPath(ctx, origin, destination)
	if err != nil {
		return path.NoPath, nil, err
	}
	return length, o.astar.GetPath(origin, destination), nil
}

func (o *AStarOracle) Navigator() path.Navigator { return o.astar }

// DijkstraOracle computes the shortest path tree of an origin once and answers
// every query from the same origin with it.
type DijkstraOracle struct {
	dijkstra *path.Dijkstra
}

func NewDijkstraOracle(g graph.Graph) *DijkstraOracle {
	return &DijkstraOracle{dijkstra: path.NewDijkstra(g)}
}

func (o *DijkstraOracle) ShortestPath(ctx context.Context, origin, destination graph.NodeId) (float64, []graph.NodeId, error) {
	length, err := o.dijkstra.ComputeShortestPath(ctx, origin, destination)
	if err != nil {
		return path.NoPath, nil, err
	}
	return length, o.dijkstra.GetPath(origin, destination), nil
}

func (o *DijkstraOracle) Navigator() path.Navigator { return o.dijkstra }

// Create the oracle for the search mode.
// The oracle keeps search state and must not be shared between goroutines.
func NewOracle(mode SearchMode, g graph.Graph, coords geometry.Coordinates, logger *zap.Logger) (CostOracle, error) {
	switch mode {
	case ModeAStar, "":
		o := NewAStarOracle(g, coords)
		o.astar.SetLogger(logger)
		return o, nil
	case ModeDijkstra:
		o := NewDijkstraOracle(g)
		o.dijkstra.SetLogger(logger)
		return o, nil
	}
	return nil, fmt.Errorf("unknown search mode %q", mode)
}
