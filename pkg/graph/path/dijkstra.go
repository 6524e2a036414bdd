package path

import (
	"context"
	"maps"

	"go.uber.org/zap"

	"github.com/natevvv/osm-delivery-routing/pkg/graph"
	"github.com/natevvv/osm-delivery-routing/pkg/queue"
	"github.com/natevvv/osm-delivery-routing/pkg/slice"
)

// Dijkstra computes the shortest path tree from a single source to every reachable node.
// Point to point queries from the same origin are answered from the last computed tree.
// Implements the Navigator interface.
type Dijkstra struct {
	g                  graph.Graph
	origin             graph.NodeId
	distances          map[graph.NodeId]float64
	predecessors       map[graph.NodeId]graph.NodeId
	visited            map[graph.NodeId]bool
	pqPops             int
	pqUpdates          int
	relaxationAttempts int
	relaxedEdges       int
	logger             *zap.Logger
}

func NewDijkstra(g graph.Graph) *Dijkstra {
	return &Dijkstra{g: g, origin: -1, logger: zap.NewNop()}
}

// Compute the minimal cost from the origin to every node reachable from it.
// The returned map must not be modified.
func (d *Dijkstra) ComputeDistances(ctx context.Context, origin graph.NodeId) (map[graph.NodeId]float64, error) {
	d.origin = -1
	d.distances = map[graph.NodeId]float64{origin: 0}
	d.predecessors = map[graph.NodeId]graph.NodeId{origin: -1}
	d.visited = make(map[graph.NodeId]bool)
	d.pqPops = 0
	d.pqUpdates = 0
	d.relaxationAttempts = 0
	d.relaxedEdges = 0

	pq := queue.NewMinHeap[*DijkstraItem](nil)
	pq.Push(NewDijkstraItem(origin, 0, -1, 0))

	for pq.Len() > 0 {
		if d.pqPops%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		currentPqItem := pq.Pop()
		currentNodeId := currentPqItem.nodeId
		d.pqPops++

		if d.visited[currentNodeId] {
			// outdated entry, the node was already settled with a lower distance
			continue
		}
		d.visited[currentNodeId] = true

		for _, arc := range d.g.GetArcsFrom(currentNodeId) {
			d.relaxationAttempts++
			successor := arc.Destination()
			newDistance := currentPqItem.distance + arc.Cost()

			if known, ok := d.distances[successor]; ok && newDistance >= known {
				continue
			}
			d.distances[successor] = newDistance
			d.predecessors[successor] = currentNodeId
			pq.Push(NewDijkstraItem(successor, newDistance, currentNodeId, 0))
			d.pqUpdates++
			d.relaxedEdges++
		}
	}

	d.origin = origin
	d.logger.Debug("computed shortest path tree", zap.Int("origin", origin), zap.Int("reachable", len(d.distances)), zap.Int("pqPops", d.pqPops))
	return d.distances, nil
}

// Compute the shortest path from the origin to the destination.
// The tree of the origin is only computed if the last computation was done for a different origin.
func (d *Dijkstra) ComputeShortestPath(ctx context.Context, origin, destination graph.NodeId) (float64, error) {
	if d.origin != origin {
		if _, err := d.ComputeDistances(ctx, origin); err != nil {
			return NoPath, err
		}
	}
	if distance, ok := d.distances[destination]; ok {
		return distance, nil
	}
	return NoPath, nil
}

func (d *Dijkstra) GetPath(origin, destination graph.NodeId) []graph.NodeId {
	path := make([]graph.NodeId, 0) // by default, a non-existing path is an empty slice
	if origin != d.origin {
		return path
	}
	if _, ok := d.distances[destination]; !ok {
		return path
	}
	for nodeId := destination; nodeId != -1; nodeId = d.predecessors[nodeId] {
		path = append(path, nodeId)
	}
	slice.ReverseInPlace(path)
	return path
}

// Return a copy of the distances of the last computation
func (d *Dijkstra) GetDistances() map[graph.NodeId]float64 { return maps.Clone(d.distances) }

func (d *Dijkstra) GetSearchSpace() []*DijkstraItem {
	searchSpace := make([]*DijkstraItem, 0, len(d.visited))
	for _, nodeId := range d.g.GetNodeIds() {
		if d.visited[nodeId] {
			searchSpace = append(searchSpace, NewDijkstraItem(nodeId, d.distances[nodeId], d.predecessors[nodeId], 0))
		}
	}
	return searchSpace
}

func (d *Dijkstra) GetPqPops() int             { return d.pqPops }
func (d *Dijkstra) GetPqUpdates() int          { return d.pqUpdates }
func (d *Dijkstra) GetEdgeRelaxations() int    { return d.relaxedEdges }
func (d *Dijkstra) GetRelaxationAttempts() int { return d.relaxationAttempts }
func (d *Dijkstra) GetGraph() graph.Graph      { return d.g }

func (d *Dijkstra) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	d.logger = logger
}
