// Package route builds multi-stop routes with a greedy nearest neighbor heuristic.
package route

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/natevvv/osm-delivery-routing/pkg/graph"
	"github.com/natevvv/osm-delivery-routing/pkg/graph/path"
	"github.com/natevvv/osm-delivery-routing/pkg/slice"
)

// Route is a walk through the graph which visits stops.
type Route struct {
	Path        []graph.NodeId // consecutive nodes are connected by an edge, starts with the origin
	Stops       []graph.NodeId // stops in the order they were visited
	LegCosts    []float64      // LegCosts[i] is the cost to reach Stops[i] from the previous stop
	Cost        float64        // sum of all leg costs
	Unreachable []graph.NodeId // stops which couldn't be reached anymore, ascending
}

// Builder constructs routes by always driving to the cheapest remaining stop.
// It is not safe for concurrent use since the oracle keeps search state.
type Builder struct {
	oracle CostOracle
	logger *zap.Logger
}

func NewBuilder(oracle CostOracle) *Builder {
	return &Builder{oracle: oracle, logger: zap.NewNop()}
}

func (b *Builder) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	b.logger = logger
}

func (b *Builder) Oracle() CostOracle { return b.oracle }

// Build a route from origin over all stops.
//
// Stops are deduplicated and considered in ascending order, so on equal costs the smaller node id wins.
// If none of the remaining stops is reachable from the current position, the route ends there and
// the remaining stops are reported as unreachable.
// Errors of the oracle (e.g. missing coordinates or a cancelled context) abort the build.
func (b *Builder) Build(ctx context.Context, origin graph.NodeId, stops []graph.NodeId) (*Route, error) {
	remaining := slice.SortedUnique(stops)
	route := &Route{
		Path:        []graph.NodeId{origin},
		Stops:       make([]graph.NodeId, 0, len(remaining)),
		LegCosts:    make([]float64, 0, len(remaining)),
		Unreachable: make([]graph.NodeId, 0),
	}

	current := origin
	for len(remaining) > 0 {
		best := -1
		bestCost := path.NoPath
		var bestPath []graph.NodeId
		for i, stop := range remaining {
			cost, nodes, err := b.oracle.ShortestPath(ctx, current, stop)
			if err != nil {
				return nil, fmt.Errorf("route from %d to %d: %w", current, stop, err)
			}
			if cost < bestCost {
				best = i
				bestCost = cost
				bestPath = nodes
			}
		}

		if best < 0 {
			b.logger.Debug("remaining stops are unreachable", zap.Int("position", current), zap.Ints("stops", remaining))
			route.Unreachable = append(route.Unreachable, remaining...)
			break
		}

		stop := remaining[best]
		if len(bestPath) > 0 && bestPath[0] == route.Path[len(route.Path)-1] {
			bestPath = bestPath[1:]
		}
		route.Path = append(route.Path, bestPath...)
		route.Stops = append(route.Stops, stop)
		route.LegCosts = append(route.LegCosts, bestCost)
		route.Cost += bestCost
		current = stop
		remaining = slice.RemoveValue(remaining, stop)
	}

	b.logger.Debug("built route",
		zap.Int("origin", origin),
		zap.Int("stops", len(route.Stops)),
		zap.Int("unreachable", len(route.Unreachable)),
		zap.Float64("cost", route.Cost))
	return route, nil
}
