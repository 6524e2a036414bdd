package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natevvv/osm-delivery-routing/pkg/cluster"
	"github.com/natevvv/osm-delivery-routing/pkg/geometry"
	"github.com/natevvv/osm-delivery-routing/pkg/graph"
	"github.com/natevvv/osm-delivery-routing/pkg/route"
)

// two arms to the left and to the right of the depot 0, and a separate road 5-6
const armsFmi = `7
5
0 0 0
1 -1 0
2 -2 0
3 1 0
4 2 0
5 50 50
6 51 50
0 1 1
1 2 1
0 3 1
3 4 1
5 6 1`

func newSolver(t *testing.T) *Solver {
	t.Helper()
	alg, coords, err := graph.NewAdjacencyListFromFmiString(armsFmi)
	require.NoError(t, err)
	return NewSolver(alg, coords)
}

func config(k int) Config {
	c := MakeDefaultConfig()
	c.K = k
	return c
}

func TestSolveTwoArms(t *testing.T) {
	s := newSolver(t)
	for _, mode := range []route.SearchMode{route.ModeAStar, route.ModeDijkstra} {
		t.Run(string(mode), func(t *testing.T) {
			c := config(2)
			c.Mode = mode
			solution, err := s.Solve(context.Background(), []graph.NodeId{1, 2, 3, 4}, c)
			require.NoError(t, err)

			require.Equal(t, []int{0, 1}, solution.ClusterIds())
			right, left := solution.Clusters[0], solution.Clusters[1]
			assert.Equal(t, []graph.NodeId{3, 4}, right.Stops)
			assert.Equal(t, []graph.NodeId{1, 2}, left.Stops)
			assert.Equal(t, geometry.MakePoint(1.5, 0), right.Centroid)
			assert.Equal(t, geometry.MakePoint(-1.5, 0), left.Centroid)

			assert.Equal(t, []graph.NodeId{0, 3, 4}, right.Route.Path)
			assert.Equal(t, []graph.NodeId{0, 1, 2}, left.Route.Path)
			assert.Equal(t, 4.0, solution.TotalCost)
			assert.Equal(t, mode, solution.Mode)
			assert.True(t, solution.Converged)
			assert.NotEqual(t, [16]byte{}, [16]byte(solution.Id))
		})
	}
}

func TestSolveIsDeterministic(t *testing.T) {
	s := newSolver(t)
	deliveries := []graph.NodeId{4, 1, 3, 2}

	first, err := s.Solve(context.Background(), deliveries, config(2))
	require.NoError(t, err)
	second, err := s.Solve(context.Background(), deliveries, config(2))
	require.NoError(t, err)

	assert.NotEqual(t, first.Id, second.Id)
	assert.Equal(t, first.Clusters, second.Clusters)
	assert.Equal(t, first.TotalCost, second.TotalCost)
}

func TestEmptyClustersAreOmitted(t *testing.T) {
	s := newSolver(t)
	solution, err := s.Solve(context.Background(), []graph.NodeId{1, 2, 3, 4, 2}, config(4))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, solution.ClusterIds())
	assert.Equal(t, []graph.NodeId{2, 2}, solution.Clusters[1].Stops)
	assert.Equal(t, []graph.NodeId{2}, solution.Clusters[1].Route.Stops)
	assert.Equal(t, 5.0, solution.TotalCost)
}

func TestUnreachableDeliveries(t *testing.T) {
	s := newSolver(t)
	solution, err := s.Solve(context.Background(), []graph.NodeId{1, 2, 3, 4, 5}, config(2))
	require.NoError(t, err)

	require.Len(t, solution.Clusters, 2)
	far := solution.Clusters[0]
	assert.Equal(t, []graph.NodeId{5}, far.Route.Unreachable)
	assert.Empty(t, far.Route.Stops)
	assert.Equal(t, 0.0, far.Route.Cost)

	near := solution.Clusters[1]
	assert.Equal(t, []graph.NodeId{1, 2, 3, 4}, near.Route.Stops)
	assert.Equal(t, []graph.NodeId{0, 1, 2, 1, 0, 3, 4}, near.Route.Path)
	assert.Equal(t, 6.0, solution.TotalCost)
}

func TestSolveErrors(t *testing.T) {
	s := newSolver(t)
	ctx := context.Background()

	c := config(2)
	c.Origin = 99
	_, err := s.Solve(ctx, []graph.NodeId{1, 2}, c)
	assert.ErrorIs(t, err, ErrUnknownOrigin)

	_, err = s.Solve(ctx, []graph.NodeId{1, 42}, config(1))
	assert.ErrorIs(t, err, geometry.ErrMissingCoordinate)

	_, err = s.Solve(ctx, []graph.NodeId{1, 2}, config(3))
	assert.ErrorIs(t, err, cluster.ErrInvalidClusterCount)

	c = config(1)
	c.Mode = "bfs"
	_, err = s.Solve(ctx, []graph.NodeId{1, 2}, c)
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Solve(cancelled, []graph.NodeId{1, 2}, config(1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolverFreezesGraph(t *testing.T) {
	alg, coords, err := graph.NewAdjacencyListFromFmiString(armsFmi)
	require.NoError(t, err)
	s := NewSolver(alg, coords)
	require.NoError(t, alg.AddEdge(2, 4, 1))

	assert.IsType(t, &graph.AdjacencyArrayGraph{}, s.Graph())
	assert.Equal(t, 10, s.Graph().ArcCount())
}
