package routing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/natevvv/osm-delivery-routing/pkg/geometry"
	"github.com/natevvv/osm-delivery-routing/pkg/graph"
	"github.com/natevvv/osm-delivery-routing/pkg/graph/path"
	"github.com/natevvv/osm-delivery-routing/pkg/route"
)

// ErrUnknownNode is returned for a query with a node which is not part of the graph
var ErrUnknownNode = errors.New("routing: unknown node")

// Result of a single point to point query
type Route struct {
	Origin      graph.NodeId
	Destination graph.NodeId
	Exists      bool
	Length      float64 // NoPath if the destination can't be reached
	Path        []graph.NodeId
	Waypoints   []geometry.Point
	PqPops      int // priority queue pops of the search, 0 if the cached tree answered the query
}

// Router answers point to point queries on a fixed graph.
// The navigator keeps search state, so queries are serialized.
type Router struct {
	graph       graph.Graph
	coords      geometry.Coordinates
	mode        route.SearchMode
	oracle      route.CostOracle
	searchSpace []geometry.Point
	treeOrigin  graph.NodeId // origin of the cached dijkstra tree, -1 if there is none
	logger      *zap.Logger
	mu          sync.Mutex
}

func NewRouter(g graph.Graph, coords geometry.Coordinates, mode route.SearchMode, logger *zap.Logger) (*Router, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Router{
		graph:       g,
		coords:      coords,
		searchSpace: make([]geometry.Point, 0),
		treeOrigin:  -1,
		logger:      logger,
	}
	if err := r.SetNavigator(mode); err != nil {
		return nil, err
	}
	return r, nil
}

// Select the search algorithm for the following queries
func (r *Router) SetNavigator(mode route.SearchMode) error {
	oracle, err := route.NewOracle(mode, r.graph, r.coords, r.logger)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if mode == "" {
		mode = route.ModeAStar
	}
	r.mode = mode
	r.oracle = oracle
	r.treeOrigin = -1
	return nil
}

func (r *Router) Navigator() route.SearchMode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mode
}

// Compute the shortest path between two nodes
func (r *Router) ComputeRoute(ctx context.Context, origin, destination graph.NodeId) (Route, error) {
	for _, id := range []graph.NodeId{origin, destination} {
		if !r.graph.HasNode(id) {
			return Route{}, fmt.Errorf("node %d: %w", id, ErrUnknownNode)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cached := r.mode == route.ModeDijkstra && origin == r.treeOrigin
	r.treeOrigin = -1
	length, nodes, err := r.oracle.ShortestPath(ctx, origin, destination)
	if err != nil {
		return Route{}, err
	}
	if r.mode == route.ModeDijkstra {
		r.treeOrigin = origin
	}
	navigator := r.oracle.Navigator()
	r.searchSpace = r.positions(searchSpaceIds(navigator))

	result := Route{Origin: origin, Destination: destination, Length: length}
	if !cached {
		result.PqPops = navigator.GetPqPops()
	}
	if !path.IsReachable(length) {
		return result, nil
	}
	result.Exists = true
	result.Path = nodes
	result.Waypoints = r.positions(nodes)
	r.logger.Debug("computed route",
		zap.Int("origin", origin),
		zap.Int("destination", destination),
		zap.Float64("length", length),
		zap.Int("pqPops", result.PqPops))
	return result, nil
}

// Return the ids of all nodes in ascending order
func (r *Router) GetNodes() []graph.NodeId {
	return r.graph.GetNodeIds()
}

// Return the position of the node, if known
func (r *Router) GetPosition(id graph.NodeId) (geometry.Point, bool) {
	p, ok := r.coords[id]
	return p, ok
}

// Return the positions of the nodes which were settled by the last query
func (r *Router) GetSearchSpace() []geometry.Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	points := make([]geometry.Point, len(r.searchSpace))
	copy(points, r.searchSpace)
	return points
}

// Find the graph node closest to the point. Returns false if no node has a position.
func (r *Router) FindNearestNode(point geometry.Point) (graph.NodeId, bool) {
	minDist := math.Inf(1)
	nearestNode := -1
	for _, id := range r.graph.GetNodeIds() {
		if p, ok := r.coords[id]; ok {
			// strict comparison keeps the lowest id on ties
			if dist := point.SquaredDistanceTo(p); dist < minDist {
				minDist = dist
				nearestNode = id
			}
		}
	}
	return nearestNode, nearestNode >= 0
}

func (r *Router) positions(ids []graph.NodeId) []geometry.Point {
	points := make([]geometry.Point, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.coords[id]; ok {
			points = append(points, p)
		}
	}
	return points
}

func searchSpaceIds(n path.Navigator) []graph.NodeId {
	items := n.GetSearchSpace()
	ids := make([]graph.NodeId, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.NodeId())
	}
	return ids
}
