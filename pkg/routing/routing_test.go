package routing

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natevvv/osm-delivery-routing/pkg/geometry"
	"github.com/natevvv/osm-delivery-routing/pkg/graph"
	"github.com/natevvv/osm-delivery-routing/pkg/route"
)

// a line 0-1-2-3 with a long shortcut 0-3 and the isolated node 4
const lineFmi = `5
4
0 0 0
1 1 0
2 2 0
3 3 0
4 10 10
0 1 1
1 2 1
2 3 1
0 3 5`

func newRouter(t *testing.T, mode route.SearchMode) *Router {
	t.Helper()
	alg, coords, err := graph.NewAdjacencyListFromFmiString(lineFmi)
	require.NoError(t, err)
	r, err := NewRouter(alg, coords, mode, nil)
	require.NoError(t, err)
	return r
}

func TestComputeRoute(t *testing.T) {
	for _, mode := range []route.SearchMode{route.ModeAStar, route.ModeDijkstra} {
		t.Run(string(mode), func(t *testing.T) {
			r := newRouter(t, mode)
			assert.Equal(t, mode, r.Navigator())

			result, err := r.ComputeRoute(context.Background(), 0, 3)
			require.NoError(t, err)
			assert.True(t, result.Exists)
			assert.Equal(t, 3.0, result.Length)
			assert.Equal(t, []graph.NodeId{0, 1, 2, 3}, result.Path)
			require.Len(t, result.Waypoints, 4)
			assert.Equal(t, geometry.MakePoint(3, 0), result.Waypoints[3])
			assert.NotEmpty(t, r.GetSearchSpace())
		})
	}
}

func TestUnreachableRoute(t *testing.T) {
	r := newRouter(t, route.ModeAStar)
	result, err := r.ComputeRoute(context.Background(), 0, 4)
	require.NoError(t, err)
	assert.False(t, result.Exists)
	assert.True(t, math.IsInf(result.Length, 1))
	assert.Empty(t, result.Path)
}

func TestUnknownNode(t *testing.T) {
	r := newRouter(t, route.ModeAStar)
	_, err := r.ComputeRoute(context.Background(), 0, 7)
	assert.ErrorIs(t, err, ErrUnknownNode)
	_, err = r.ComputeRoute(context.Background(), -1, 0)
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestSetNavigator(t *testing.T) {
	r := newRouter(t, "")
	assert.Equal(t, route.ModeAStar, r.Navigator())

	require.NoError(t, r.SetNavigator(route.ModeDijkstra))
	assert.Equal(t, route.ModeDijkstra, r.Navigator())

	assert.Error(t, r.SetNavigator("contraction-hierarchies"))
	assert.Equal(t, route.ModeDijkstra, r.Navigator())
}

func TestFindNearestNode(t *testing.T) {
	r := newRouter(t, route.ModeAStar)

	id, ok := r.FindNearestNode(geometry.MakePoint(2.4, 0.3))
	assert.True(t, ok)
	assert.Equal(t, 2, id)

	// equally far from 0 and 1
	id, _ = r.FindNearestNode(geometry.MakePoint(0.5, 0))
	assert.Equal(t, 0, id)

	id, _ = r.FindNearestNode(geometry.MakePoint(9, 9))
	assert.Equal(t, 4, id)

	p, ok := r.GetPosition(4)
	assert.True(t, ok)
	assert.Equal(t, geometry.MakePoint(10, 10), p)
	assert.Equal(t, []graph.NodeId{0, 1, 2, 3, 4}, r.GetNodes())
}

func TestPqPopsOfCachedTree(t *testing.T) {
	ctx := context.Background()
	r := newRouter(t, route.ModeDijkstra)

	first, err := r.ComputeRoute(ctx, 0, 3)
	require.NoError(t, err)
	assert.Greater(t, first.PqPops, 0)

	// same origin, answered without a new search
	second, err := r.ComputeRoute(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, second.Length)
	assert.Equal(t, 0, second.PqPops)

	third, err := r.ComputeRoute(ctx, 1, 3)
	require.NoError(t, err)
	assert.Greater(t, third.PqPops, 0)

	// a new navigator has no tree yet
	require.NoError(t, r.SetNavigator(route.ModeDijkstra))
	fourth, err := r.ComputeRoute(ctx, 1, 3)
	require.NoError(t, err)
	assert.Greater(t, fourth.PqPops, 0)

	r = newRouter(t, route.ModeAStar)
	for i := 0; i < 2; i++ {
		result, err := r.ComputeRoute(ctx, 0, 3)
		require.NoError(t, err)
		assert.Greater(t, result.PqPops, 0)
	}
}
