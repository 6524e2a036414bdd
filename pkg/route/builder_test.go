package route

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natevvv/osm-delivery-routing/pkg/geometry"
	"github.com/natevvv/osm-delivery-routing/pkg/graph"
	"github.com/natevvv/osm-delivery-routing/pkg/graph/path"
)

const lineFmi = `4
4
0 0 0
1 1 0
2 2 0
3 3 0
0 1 1
1 2 1
2 3 1
0 3 5`

const gridFmi = `10
13
0 0 0
1 0 1
2 0 2
3 1 0
4 1 1
5 1 2
6 2 0
7 2 1
8 2 2
9 3 3
0 1 1
0 3 1
1 2 1
1 4 1
2 5 1
3 4 1
3 6 1
4 5 1
4 7 1
5 8 1
6 7 1
7 8 1
8 9 2`

func loadGraph(t *testing.T, fmi string) (*graph.AdjacencyListGraph, geometry.Coordinates) {
	t.Helper()
	alg, coords, err := graph.NewAdjacencyListFromFmiString(fmi)
	require.NoError(t, err)
	return alg, coords
}

func builders(t *testing.T, g graph.Graph, coords geometry.Coordinates) map[SearchMode]*Builder {
	t.Helper()
	result := make(map[SearchMode]*Builder)
	for _, mode := range []SearchMode{ModeAStar, ModeDijkstra} {
		oracle, err := NewOracle(mode, g, coords, nil)
		require.NoError(t, err)
		result[mode] = NewBuilder(oracle)
	}
	return result
}

func assertWalk(t *testing.T, g graph.Graph, route *Route) {
	t.Helper()
	for i := 0; i+1 < len(route.Path); i++ {
		connected := false
		for _, arc := range g.GetArcsFrom(route.Path[i]) {
			connected = connected || arc.Destination() == route.Path[i+1]
		}
		assert.True(t, connected, "no edge %v -> %v", route.Path[i], route.Path[i+1])
	}
}

func TestLineRoute(t *testing.T) {
	g, coords := loadGraph(t, lineFmi)
	for mode, b := range builders(t, g, coords) {
		t.Run(string(mode), func(t *testing.T) {
			route, err := b.Build(context.Background(), 0, []graph.NodeId{3, 1, 2})
			require.NoError(t, err)
			assert.Equal(t, []graph.NodeId{1, 2, 3}, route.Stops)
			assert.Equal(t, []graph.NodeId{0, 1, 2, 3}, route.Path)
			assert.Equal(t, []float64{1, 1, 1}, route.LegCosts)
			assert.Equal(t, 3.0, route.Cost)
			assert.Empty(t, route.Unreachable)
		})
	}
}

func TestGridRoute(t *testing.T) {
	g, coords := loadGraph(t, gridFmi)
	stops := []graph.NodeId{9, 6, 2}
	for mode, b := range builders(t, g, coords) {
		t.Run(string(mode), func(t *testing.T) {
			route, err := b.Build(context.Background(), 0, stops)
			require.NoError(t, err)

			// equal costs are resolved by the smaller node id
			assert.Equal(t, []graph.NodeId{2, 6, 9}, route.Stops)
			assert.ElementsMatch(t, stops, route.Stops)
			assert.Equal(t, []float64{2, 4, 4}, route.LegCosts)
			assert.Equal(t, 10.0, route.Cost)
			assert.Equal(t, 0, route.Path[0])
			assert.Equal(t, 9, route.Path[len(route.Path)-1])
			assertWalk(t, g, route)

			sum := 0.0
			for _, c := range route.LegCosts {
				sum += c
			}
			assert.Equal(t, sum, route.Cost)
		})
	}
}

func TestTieGoesToSmallerStop(t *testing.T) {
	g, coords := loadGraph(t, lineFmi)
	b := NewBuilder(NewAStarOracle(g, coords))

	route, err := b.Build(context.Background(), 1, []graph.NodeId{2, 0})
	require.NoError(t, err)
	assert.Equal(t, []graph.NodeId{0, 2}, route.Stops)
	assert.Equal(t, []graph.NodeId{1, 0, 1, 2}, route.Path)
	assert.Equal(t, 3.0, route.Cost)
}

func TestDegenerateStops(t *testing.T) {
	g, coords := loadGraph(t, lineFmi)
	b := NewBuilder(NewAStarOracle(g, coords))
	ctx := context.Background()

	route, err := b.Build(ctx, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, []graph.NodeId{2}, route.Path)
	assert.Empty(t, route.Stops)
	assert.Equal(t, 0.0, route.Cost)

	// the origin itself and duplicates
	route, err = b.Build(ctx, 2, []graph.NodeId{2, 3, 3})
	require.NoError(t, err)
	assert.Equal(t, []graph.NodeId{2, 3}, route.Stops)
	assert.Equal(t, []graph.NodeId{2, 3}, route.Path)
	assert.Equal(t, 1.0, route.Cost)
}

func TestUnreachableStops(t *testing.T) {
	alg, coords := loadGraph(t, lineFmi)
	require.NoError(t, alg.AddEdge(7, 8, 1))
	coords[7] = geometry.MakePoint(10, 10)
	coords[8] = geometry.MakePoint(11, 10)

	for mode, b := range builders(t, alg, coords) {
		t.Run(string(mode), func(t *testing.T) {
			route, err := b.Build(context.Background(), 0, []graph.NodeId{8, 3, 7})
			require.NoError(t, err)
			assert.Equal(t, []graph.NodeId{3}, route.Stops)
			assert.Equal(t, []graph.NodeId{7, 8}, route.Unreachable)
			assert.Equal(t, []graph.NodeId{0, 1, 2, 3}, route.Path)
			assert.Equal(t, 3.0, route.Cost)
		})
	}
}

func TestOracleErrorsAbort(t *testing.T) {
	g, coords := loadGraph(t, lineFmi)
	delete(coords, 3)

	_, err := NewBuilder(NewAStarOracle(g, coords)).Build(context.Background(), 0, []graph.NodeId{1, 3})
	assert.ErrorIs(t, err, geometry.ErrMissingCoordinate)

	// without heuristic, coordinates are not needed
	route, err := NewBuilder(NewDijkstraOracle(g)).Build(context.Background(), 0, []graph.NodeId{1, 3})
	require.NoError(t, err)
	assert.Equal(t, 3.0, route.Cost)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewBuilder(NewDijkstraOracle(g)).Build(ctx, 0, []graph.NodeId{1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseSearchMode(t *testing.T) {
	for input, expected := range map[string]SearchMode{"": ModeAStar, "astar": ModeAStar, " Dijkstra ": ModeDijkstra} {
		mode, err := ParseSearchMode(input)
		require.NoError(t, err)
		assert.Equal(t, expected, mode)
	}
	_, err := ParseSearchMode("bfs")
	assert.Error(t, err)

	_, err = NewOracle("bfs", nil, nil, nil)
	assert.Error(t, err)
}

func TestOracleNavigator(t *testing.T) {
	g, coords := loadGraph(t, lineFmi)
	o := NewAStarOracle(g, coords)
	cost, nodes, err := o.ShortestPath(context.Background(), 0, 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, cost)
	assert.Equal(t, []graph.NodeId{0, 1, 2, 3}, nodes)
	assert.Greater(t, o.Navigator().GetPqPops(), 0)
	assert.True(t, path.IsReachable(cost))
}
