package path

import (
	"context"

	"github.com/natevvv/osm-delivery-routing/pkg/graph"
)

// CostMatrix holds the shortest path costs between every pair of a set of nodes.
// It is computed with one Dijkstra run per node.
type CostMatrix struct {
	nodes []graph.NodeId
	index map[graph.NodeId]int
	costs [][]float64
}

func NewCostMatrix(ctx context.Context, g graph.Graph, nodes []graph.NodeId) (*CostMatrix, error) {
	m := &CostMatrix{
		nodes: make([]graph.NodeId, 0, len(nodes)),
		index: make(map[graph.NodeId]int, len(nodes)),
	}
	for _, node := range nodes {
		if _, ok := m.index[node]; ok {
			continue
		}
		m.index[node] = len(m.nodes)
		m.nodes = append(m.nodes, node)
	}

	dijkstra := NewDijkstra(g)
	m.costs = make([][]float64, len(m.nodes))
	for i, origin := range m.nodes {
		distances, err := dijkstra.ComputeDistances(ctx, origin)
		if err != nil {
			return nil, err
		}
		row := make([]float64, len(m.nodes))
		for j, destination := range m.nodes {
			if distance, ok := distances[destination]; ok {
				row[j] = distance
			} else {
				row[j] = NoPath
			}
		}
		m.costs[i] = row
	}
	return m, nil
}

// Return the cost from origin to destination.
// ok is false if one of the nodes is not part of the matrix
func (m *CostMatrix) Cost(origin, destination graph.NodeId) (cost float64, ok bool) {
	i, okOrigin := m.index[origin]
	j, okDestination := m.index[destination]
	if !okOrigin || !okDestination {
		return NoPath, false
	}
	return m.costs[i][j], true
}

// Return the nodes of the matrix in the order of the rows
func (m *CostMatrix) Nodes() []graph.NodeId {
	nodes := make([]graph.NodeId, len(m.nodes))
	copy(nodes, m.nodes)
	return nodes
}
