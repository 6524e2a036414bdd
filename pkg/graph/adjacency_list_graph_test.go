package graph

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natevvv/osm-delivery-routing/pkg/geometry"
)

const cuttableGraph = `13
21
#Nodes
0 0 0
1 0 2
2 1 1
3 1 2
4 2 0
5 2 1
6 2 2
7 3 0
8 3 1
9 3 3
10 5 0
11 4 1
12 5 2
#Edges
0 1 3
0 2 4
0 4 7
1 2 5
1 3 2
2 3 2
2 5 1
3 6 5
4 5 4
4 7 6
5 6 3
5 8 1
6 9 7
7 8 3
7 10 5
8 9 3
8 11 1
9 12 4
10 11 2
10 12 4
11 12 3
`

func TestGraphReading(t *testing.T) {
	alg, coords, err := NewAdjacencyListFromFmiString(cuttableGraph)
	require.NoError(t, err)
	assert.Equal(t, 13, alg.NodeCount())
	assert.Equal(t, 42, alg.ArcCount())
	assert.Equal(t, geometry.MakePoint(5, 2), coords[12])
	if alg.AsString() == cuttableGraph {
		t.Errorf("Graph without coordinates should not contain node positions\n")
	}
	assert.Equal(t, cuttableGraph, AsFmiString(alg, coords))
}

func TestAdjacencyArrayMatchesList(t *testing.T) {
	alg, coords, err := NewAdjacencyListFromFmiString(cuttableGraph)
	require.NoError(t, err)
	aag := NewAdjacencyArrayFromGraph(alg)

	assert.Equal(t, alg.GetNodeIds(), aag.GetNodeIds())
	assert.Equal(t, alg.ArcCount(), aag.ArcCount())
	for _, id := range alg.GetNodeIds() {
		assert.Equal(t, alg.GetArcsFrom(id), aag.GetArcsFrom(id), "arcs of node %v", id)
	}
	assert.Equal(t, cuttableGraph, AsFmiString(aag, coords))
	assert.Nil(t, aag.GetArcsFrom(99))
	assert.False(t, aag.HasNode(99))
}

func TestEdgesAreSymmetric(t *testing.T) {
	edges := []Edge{
		MakeEdge(0, 1, 1.0),
		MakeEdge(1, 2, 2.5),
		MakeEdge(7, 3, 0),
		MakeEdge(0, 3, 5.0),
	}
	alg, err := NewAdjacencyListGraphFromEdges(edges)
	require.NoError(t, err)

	for _, e := range edges {
		assert.Contains(t, alg.GetArcsFrom(e.From), MakeArc(e.To, e.Distance))
		assert.Contains(t, alg.GetArcsFrom(e.To), MakeArc(e.From, e.Distance))
	}
	assert.Equal(t, 2*len(edges), alg.ArcCount())
	assert.Equal(t, []NodeId{0, 1, 2, 3, 7}, alg.GetNodeIds())
}

func TestUnknownNodeHasNoArcs(t *testing.T) {
	alg := NewAdjacencyListGraph()
	require.NoError(t, alg.AddEdge(0, 1, 1))
	require.NoError(t, alg.AddNode(5))

	assert.Empty(t, alg.GetArcsFrom(42))
	assert.False(t, alg.HasNode(42))

	// an isolated node is known, but has no arcs either
	assert.Empty(t, alg.GetArcsFrom(5))
	assert.True(t, alg.HasNode(5))
	assert.Equal(t, 3, alg.NodeCount())
}

func TestInvalidEdges(t *testing.T) {
	testCases := []struct {
		name string
		edge Edge
	}{
		{"negative distance", MakeEdge(0, 1, -1)},
		{"self loop", MakeEdge(2, 2, 1)},
		{"negative node", MakeEdge(-1, 2, 1)},
		{"nan distance", MakeEdge(0, 1, math.NaN())},
		{"infinite distance", MakeEdge(0, 1, math.Inf(1))},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			alg := NewAdjacencyListGraph()
			err := alg.AddEdge(tc.edge.From, tc.edge.To, tc.edge.Distance)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidEdge))
			assert.Equal(t, 0, alg.ArcCount())
			assert.Equal(t, 0, alg.NodeCount())
		})
	}

	_, err := NewAdjacencyListGraphFromEdges([]Edge{MakeEdge(0, 1, 1), MakeEdge(1, 2, -3)})
	assert.ErrorIs(t, err, ErrInvalidEdge)
	assert.ErrorIs(t, NewAdjacencyListGraph().AddNode(-4), ErrInvalidEdge)
}

func TestFmiErrors(t *testing.T) {
	testCases := map[string]string{
		"bad node count": "x\n0\n",
		"missing edges":  "2\n1\n0 0 0\n1 1 1\n",
		"bad edge":       "2\n1\n0\n1\n0 1\n",
		"negative edge":  "2\n1\n0\n1\n0 1 -2\n",
		"bad coordinate": "1\n0\n0 a b\n",
	}
	for name, fmi := range testCases {
		t.Run(name, func(t *testing.T) {
			_, _, err := NewAdjacencyListFromFmiString(fmi)
			assert.Error(t, err)
		})
	}
}
