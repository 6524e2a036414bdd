package graph

import (
	"sort"
)

// Implementation for static graphs.
// The arcs of all nodes are stored in one slice, Offsets[i] marks where the arcs of NodeIds[i] start.
// There are no mutating methods, so it can be shared between goroutines.
type AdjacencyArrayGraph struct {
	NodeIds []NodeId // sorted node ids
	arcs    []Arc
	Offsets []int
}

// Create an AdjacencyArrayGraph from the given graph
func NewAdjacencyArrayFromGraph(g Graph) *AdjacencyArrayGraph {
	nodeIds := g.GetNodeIds()
	arcs := make([]Arc, 0, g.ArcCount())
	offsets := make([]int, len(nodeIds)+1)

	for i, id := range nodeIds {
		// add all edges of node
		arcs = append(arcs, g.GetArcsFrom(id)...)

		// set stop-offset
		offsets[i+1] = len(arcs)
	}

	return &AdjacencyArrayGraph{NodeIds: nodeIds, arcs: arcs, Offsets: offsets}
}

// find the position of the node in NodeIds, -1 if it is not contained
func (aag *AdjacencyArrayGraph) position(id NodeId) int {
	i := sort.SearchInts(aag.NodeIds, id)
	if i < len(aag.NodeIds) && aag.NodeIds[i] == id {
		return i
	}
	return -1
}

// Get the Arcs for the given node id
func (aag *AdjacencyArrayGraph) GetArcsFrom(id NodeId) []Arc {
	i := aag.position(id)
	if i < 0 {
		return nil
	}
	return aag.arcs[aag.Offsets[i]:aag.Offsets[i+1]:aag.Offsets[i+1]]
}

func (aag *AdjacencyArrayGraph) HasNode(id NodeId) bool {
	return aag.position(id) >= 0
}

// Returns a copy of the node ids
func (aag *AdjacencyArrayGraph) GetNodeIds() []NodeId {
	ids := make([]NodeId, len(aag.NodeIds))
	copy(ids, aag.NodeIds)
	return ids
}

// Returns the number of Nodes in the graph
func (aag *AdjacencyArrayGraph) NodeCount() int {
	return len(aag.NodeIds)
}

// Returns the total number of arcs in the graph
func (aag *AdjacencyArrayGraph) ArcCount() int {
	return len(aag.arcs)
}

// Returns a human readable string of the graph
func (aag *AdjacencyArrayGraph) AsString() string {
	return AsFmiString(aag, nil)
}
