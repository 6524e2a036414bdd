package graph

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

type NodeId = int

// ErrInvalidEdge is returned when an edge with a negative or non-finite weight,
// a negative endpoint or equal endpoints is added to a graph.
var ErrInvalidEdge = errors.New("graph: invalid edge")

// Graph is a read-only view of an undirected weighted graph.
// Every edge u-v is stored as the two arcs u->v and v->u with the same distance.
type Graph interface {
	GetArcsFrom(id NodeId) []Arc // the arcs leaving the node, in insertion order. Unknown nodes have no arcs
	HasNode(id NodeId) bool      // check if the node is known, even if it has no arcs
	GetNodeIds() []NodeId        // all node ids in ascending order
	NodeCount() int
	ArcCount() int
	AsString() string
}

// DynamicGraph is a Graph which can still be extended
type DynamicGraph interface {
	Graph
	AddNode(id NodeId) error
	AddEdge(from, to NodeId, distance float64) error
}

type Arc struct {
	To       NodeId
	Distance float64
}

type Edge struct {
	From     NodeId
	To       NodeId
	Distance float64
}

func MakeArc(to NodeId, distance float64) Arc {
	return Arc{To: to, Distance: distance}
}

func MakeEdge(from, to NodeId, distance float64) Edge {
	return Edge{From: from, To: to, Distance: distance}
}

func (a Arc) Destination() NodeId { return a.To }
func (a Arc) Cost() float64       { return a.Distance }

func (e Edge) Invert() Edge {
	return Edge{From: e.To, To: e.From, Distance: e.Distance}
}

// Check the edge, returns an error wrapping ErrInvalidEdge if it can't be part of a graph
func (e Edge) Validate() error {
	switch {
	case e.From < 0 || e.To < 0:
		return fmt.Errorf("%w: negative node id in %v -> %v", ErrInvalidEdge, e.From, e.To)
	case e.From == e.To:
		return fmt.Errorf("%w: self loop at node %v", ErrInvalidEdge, e.From)
	case math.IsNaN(e.Distance) || math.IsInf(e.Distance, 0):
		return fmt.Errorf("%w: distance %v for %v -> %v is not finite", ErrInvalidEdge, e.Distance, e.From, e.To)
	case e.Distance < 0:
		return fmt.Errorf("%w: negative distance %v for %v -> %v", ErrInvalidEdge, e.Distance, e.From, e.To)
	}
	return nil
}

// Return all edges of the graph, each undirected edge only once (From < To).
// The edges are sorted by From, then by arc order.
func GetEdges(g Graph) []Edge {
	edges := make([]Edge, 0, g.ArcCount()/2)
	for _, id := range g.GetNodeIds() {
		for _, arc := range g.GetArcsFrom(id) {
			if id < arc.Destination() {
				edges = append(edges, MakeEdge(id, arc.Destination(), arc.Cost()))
			}
		}
	}
	return edges
}

func sortedIds(ids []NodeId) []NodeId {
	sort.Ints(ids)
	return ids
}
