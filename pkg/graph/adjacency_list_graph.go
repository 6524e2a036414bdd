package graph

import (
	"fmt"
)

// Implementation for dynamic graphs.
// Node ids don't need to be dense, the arcs are stored per node id.
type AdjacencyListGraph struct {
	edges    map[NodeId][]Arc // The arcs of the graph, indexed by the node they leave
	arcCount int              // the number of arcs in the graph
}

func NewAdjacencyListGraph() *AdjacencyListGraph {
	return &AdjacencyListGraph{
		edges:    make(map[NodeId][]Arc),
		arcCount: 0,
	}
}

// Create a graph from the given edge list.
// Stops at the first invalid edge.
func NewAdjacencyListGraphFromEdges(edges []Edge) (*AdjacencyListGraph, error) {
	alg := NewAdjacencyListGraph()
	for i, edge := range edges {
		if err := alg.AddEdge(edge.From, edge.To, edge.Distance); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}
	return alg, nil
}

// Get the arcs for the given node
func (alg *AdjacencyListGraph) GetArcsFrom(id NodeId) []Arc {
	return alg.edges[id]
}

func (alg *AdjacencyListGraph) HasNode(id NodeId) bool {
	_, ok := alg.edges[id]
	return ok
}

// Return all node ids, sorted ascending
func (alg *AdjacencyListGraph) GetNodeIds() []NodeId {
	ids := make([]NodeId, 0, len(alg.edges))
	for id := range alg.edges {
		ids = append(ids, id)
	}
	return sortedIds(ids)
}

// Return the number of total nodes
func (alg *AdjacencyListGraph) NodeCount() int {
	return len(alg.edges)
}

// Return the number of total arcs
func (alg *AdjacencyListGraph) ArcCount() int {
	return alg.arcCount
}

// Return a human readable string of the graph
func (alg *AdjacencyListGraph) AsString() string {
	return AsFmiString(alg, nil)
}

// Add an isolated node to the graph. Adding an existing node does nothing.
func (alg *AdjacencyListGraph) AddNode(id NodeId) error {
	if id < 0 {
		return fmt.Errorf("%w: negative node id %v", ErrInvalidEdge, id)
	}
	if _, ok := alg.edges[id]; !ok {
		alg.edges[id] = make([]Arc, 0)
	}
	return nil
}

// Add an undirected edge to the graph.
// Both arcs from -> to and to -> from are added with the given distance.
func (alg *AdjacencyListGraph) AddEdge(from, to NodeId, distance float64) error {
	if err := MakeEdge(from, to, distance).Validate(); err != nil {
		return err
	}
	alg.edges[from] = append(alg.edges[from], MakeArc(to, distance))
	alg.edges[to] = append(alg.edges[to], MakeArc(from, distance))
	alg.arcCount += 2
	return nil
}
