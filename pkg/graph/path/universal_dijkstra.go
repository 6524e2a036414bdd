package path

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/natevvv/osm-delivery-routing/pkg/geometry"
	"github.com/natevvv/osm-delivery-routing/pkg/graph"
	"github.com/natevvv/osm-delivery-routing/pkg/queue"
	"github.com/natevvv/osm-delivery-routing/pkg/slice"
)

// the context is checked for cancellation every contextCheckInterval pq pops
const contextCheckInterval = 256

type SearchKPIs struct {
	pqPops             int // store the amount of Pops which were performed on the priority queue for the computed search
	pqUpdates          int // store each update or push to the priority queue
	relaxationAttempts int // store the attempt for relaxed edges
	relaxedEdges       int // number of relaxed edges
	numSettledNodes    int // number of settled nodes
}

type SearchOptions struct {
	useHeuristic       bool    // flag indicating if heuristic (remaining distance) should be used (AStar implementation)
	costUpperBound     float64 // upper bound of cost from origin to destination
	maxNumSettledNodes int     // maximum number of settled nodes before search is terminated
}

// UniversalDijkstra implements point to point path finding based on Dijkstra.
// It can be used for plain Dijkstra and for A*.
// Implements the Navigator Interface.
//
// A* uses the straight line distance between the coordinates of a node and the destination as heuristic.
// The result is only guaranteed to be the shortest path if this is admissible, i.e. every edge is at least
// as long as the straight line distance between its endpoints. This is not checked.
//
// An UniversalDijkstra keeps the state of the last search and must not be used concurrently.
type UniversalDijkstra struct {
	g       graph.Graph
	coords  geometry.Coordinates
	minHeap *queue.MinHeap[*DijkstraItem] // priority queue to find the shortest path

	origin      graph.NodeId // the origin of the current search
	destination graph.NodeId // the destination of the current search

	searchSpace  map[graph.NodeId]*DijkstraItem // every node which was reached in the search
	visitedNodes map[graph.NodeId]bool          // nodes which were settled (popped) at least once

	searchOptions SearchOptions
	searchKPIs    SearchKPIs

	debugLevel int // debug level for logging purpose
	logger     *zap.Logger
}

// Reset the kpi
func (kpi *SearchKPIs) Reset() {
	kpi.pqPops = 0
	kpi.pqUpdates = 0
	kpi.relaxationAttempts = 0
	kpi.relaxedEdges = 0
	kpi.numSettledNodes = 0
}

// Create a new Dijkstra instance with the given graph g.
// coords are only needed if the heuristic is used
func NewUniversalDijkstra(g graph.Graph, coords geometry.Coordinates) *UniversalDijkstra {
	options := SearchOptions{costUpperBound: math.Inf(1), maxNumSettledNodes: math.MaxInt}
	return &UniversalDijkstra{
		g:             g,
		coords:        coords,
		searchOptions: options,
		origin:        -1,
		destination:   -1,
		searchSpace:   make(map[graph.NodeId]*DijkstraItem),
		visitedNodes:  make(map[graph.NodeId]bool),
		logger:        zap.NewNop(),
	}
}

// Create a new A* instance.
// The straight line distance is used as heuristic, so the found path is only guaranteed to be the shortest
// if no edge is cheaper than the distance between its endpoints.
func NewAStar(g graph.Graph, coords geometry.Coordinates) *UniversalDijkstra {
	d := NewUniversalDijkstra(g, coords)
	d.SetUseHeuristic(true)
	return d
}

// Compute the shortest path from the origin to the destination.
// It returns the length of the found path.
// If no path was found, it returns NoPath.
// An error is returned if the heuristic is used and a coordinate is missing, or if ctx is done.
func (d *UniversalDijkstra) ComputeShortestPath(ctx context.Context, origin, destination graph.NodeId) (float64, error) {
	if d.debugLevel >= 1 {
		d.logger.Debug("new search", zap.Int("origin", origin), zap.Int("destination", destination), zap.Bool("heuristic", d.searchOptions.useHeuristic))
	}

	d.initializeSearch(origin, destination)

	if origin == destination {
		// nothing to search, the path consists only of the origin
		return 0, nil
	}

	for d.minHeap.Len() > 0 {
		if d.searchKPIs.pqPops%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return NoPath, err
			}
		}

		currentNode := d.minHeap.Pop()
		d.searchKPIs.pqPops++
		if d.debugLevel >= 2 {
			d.logger.Debug("settling node", zap.Int("node", currentNode.nodeId), zap.Float64("distance", currentNode.distance))
		}

		d.settleNode(currentNode)

		if currentNode.Priority() > d.searchOptions.costUpperBound || d.searchKPIs.numSettledNodes > d.searchOptions.maxNumSettledNodes {
			// Each following node exceeds the max allowed cost or the number of allowed nodes is reached
			if d.debugLevel >= 1 {
				d.logger.Debug("exceeded limits",
					zap.Float64("costUpperBound", d.searchOptions.costUpperBound),
					zap.Float64("currentCost", currentNode.Priority()),
					zap.Int("maxSettledNodes", d.searchOptions.maxNumSettledNodes),
					zap.Int("settledNodes", d.searchKPIs.numSettledNodes))
			}
			return NoPath, nil
		}

		if currentNode.nodeId == destination {
			if d.debugLevel >= 1 {
				d.logger.Debug("found path", zap.Int("origin", origin), zap.Int("destination", destination), zap.Float64("distance", currentNode.distance))
			}
			return currentNode.distance, nil
		}

		if err := d.relaxEdges(currentNode); err != nil {
			return NoPath, err
		}
	}

	if d.debugLevel >= 1 {
		d.logger.Debug("finished search, no path found", zap.Int("origin", origin), zap.Int("destination", destination))
	}
	return NoPath, nil
}

// Get the path of a previous computation. This contains the nodeIds which lie on the path from source to destination
func (d *UniversalDijkstra) GetPath(origin, destination graph.NodeId) []graph.NodeId {
	if origin != d.origin || destination != d.destination {
		// no computation for this pair
		return make([]graph.NodeId, 0)
	}
	if origin == destination {
		// origin and destination is the same -> path with one node is the result
		return []graph.NodeId{origin}
	}
	if !d.visitedNodes[destination] {
		// no path found
		return make([]graph.NodeId, 0)
	}

	path := make([]graph.NodeId, 0)
	for nodeId := destination; nodeId != -1; nodeId = d.searchSpace[nodeId].predecessor {
		path = append(path, nodeId)
	}
	// reverse path (to create the correct direction)
	slice.ReverseInPlace(path)
	return path
}

// Returns the search space of a previous computation. This contains all items which were settled.
func (d *UniversalDijkstra) GetSearchSpace() []*DijkstraItem {
	searchSpace := make([]*DijkstraItem, 0, len(d.visitedNodes))
	for _, nodeId := range d.g.GetNodeIds() {
		if d.visitedNodes[nodeId] {
			searchSpace = append(searchSpace, d.searchSpace[nodeId])
		}
	}
	return searchSpace
}

// Initialize a new search
// This resets the search space and visited nodes (and all other leftovers of a previous search)
func (d *UniversalDijkstra) initializeSearch(origin, destination graph.NodeId) {
	d.origin = origin
	d.destination = destination

	d.searchSpace = make(map[graph.NodeId]*DijkstraItem)
	d.visitedNodes = make(map[graph.NodeId]bool)
	d.searchKPIs.Reset()

	// the heuristic of the origin doesn't influence the order, since it is the only item at first
	originItem := NewDijkstraItem(d.origin, 0, -1, 0)
	d.searchSpace[origin] = originItem
	d.minHeap = queue.NewMinHeap[*DijkstraItem](nil)
	if origin != destination {
		d.minHeap.Push(originItem)
	}
}

// Settle the given node item
func (d *UniversalDijkstra) settleNode(node *DijkstraItem) {
	d.searchKPIs.numSettledNodes++
	d.visitedNodes[node.nodeId] = true
}

// Relax the Edges for the given node item and add the new nodes to the MinPath priority queue
func (d *UniversalDijkstra) relaxEdges(node *DijkstraItem) error {
	for _, arc := range d.g.GetArcsFrom(node.nodeId) {
		d.searchKPIs.relaxationAttempts++
		successor := arc.Destination()
		cost := node.distance + arc.Cost()

		successorItem, ok := d.searchSpace[successor]
		if !ok {
			heuristic, err := d.heuristicValue(successor)
			if err != nil {
				return err
			}
			nextNode := NewDijkstraItem(successor, cost, node.nodeId, heuristic)
			d.searchSpace[successor] = nextNode
			d.minHeap.Push(nextNode)
			d.searchKPIs.pqUpdates++
		} else if cost < successorItem.distance {
			successorItem.distance = cost
			successorItem.predecessor = node.nodeId
			if successorItem.index < 0 {
				// already settled, but found a shorter path (heuristic is not consistent) -> reopen it
				d.minHeap.Push(successorItem)
			} else {
				d.minHeap.Update(successorItem)
			}
			d.searchKPIs.pqUpdates++
		} else {
			continue
		}

		if d.debugLevel >= 3 {
			d.logger.Debug("relaxed edge", zap.Int("from", node.nodeId), zap.Int("to", successor), zap.Float64("distance", cost))
		}
		d.searchKPIs.relaxedEdges++
	}
	return nil
}

// helper function for AStar to calculate the heuristic value from the node to the destination.
// Returns 0 if the heuristic is not used
func (d *UniversalDijkstra) heuristicValue(nodeId graph.NodeId) (float64, error) {
	if !d.searchOptions.useHeuristic {
		return 0, nil
	}
	p, err := d.coords.Lookup(nodeId)
	if err != nil {
		return 0, fmt.Errorf("astar: %w", err)
	}
	goal, err := d.coords.Lookup(d.destination)
	if err != nil {
		return 0, fmt.Errorf("astar: destination %w", err)
	}
	return p.DistanceTo(goal), nil
}

// Specify whether a heuristic for path finding (AStar) should be used
func (d *UniversalDijkstra) SetUseHeuristic(useHeuristic bool) {
	d.searchOptions.useHeuristic = useHeuristic
}

// Set the upper cost for a valid path from source to target
func (d *UniversalDijkstra) SetCostUpperBound(costUpperBound float64) {
	d.searchOptions.costUpperBound = costUpperBound
}

// Set the maximum number of nodes that can get settled before the search is terminated
func (d *UniversalDijkstra) SetMaxNumSettledNodes(maxNumSettledNodes int) {
	d.searchOptions.maxNumSettledNodes = maxNumSettledNodes
}

// Returns the amount of priority queue/heap pops which were performed during the search
func (d *UniversalDijkstra) GetPqPops() int { return d.searchKPIs.pqPops }

// Get the number of relaxed edges
func (d *UniversalDijkstra) GetEdgeRelaxations() int { return d.searchKPIs.relaxedEdges }

// Get the number of attempted edge relaxations (some may early terminated)
func (d *UniversalDijkstra) GetRelaxationAttempts() int { return d.searchKPIs.relaxationAttempts }

// Get the number of pq updates
func (d *UniversalDijkstra) GetPqUpdates() int { return d.searchKPIs.pqUpdates }

// Get the used graph
func (d *UniversalDijkstra) GetGraph() graph.Graph { return d.g }

// Set the debug level to show different debug messages.
// If it is 0, no debug messages are logged
func (d *UniversalDijkstra) SetDebugLevel(level int) {
	d.debugLevel = level
}

// Set the logger for debug messages
func (d *UniversalDijkstra) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	d.logger = logger
}
