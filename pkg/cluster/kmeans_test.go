package cluster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natevvv/osm-delivery-routing/pkg/geometry"
)

func makePoints(xy ...float64) []geometry.Point {
	points := make([]geometry.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		points = append(points, geometry.MakePoint(xy[i], xy[i+1]))
	}
	return points
}

func TestTwoSeparatedGroups(t *testing.T) {
	points := makePoints(
		0, 0, 1, 0, 0, 1, 1, 1, 0.5, 0.5,
		100, 100, 101, 100, 100, 101, 101, 101, 100.5, 100.5,
	)

	result, err := KMeans(context.Background(), points, 2, MakeDefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.Labels, len(points))
	require.Len(t, result.Centroids, 2)
	assert.True(t, result.Converged)

	// no point is assigned across the groups
	for i := 1; i < 5; i++ {
		assert.Equal(t, result.Labels[0], result.Labels[i])
		assert.Equal(t, result.Labels[5], result.Labels[5+i])
	}
	assert.NotEqual(t, result.Labels[0], result.Labels[5])
	assert.Equal(t, geometry.MakePoint(0.5, 0.5), result.Centroids[result.Labels[0]])
	assert.Equal(t, geometry.MakePoint(100.5, 100.5), result.Centroids[result.Labels[5]])

	// same seed, same result
	again, err := KMeans(context.Background(), points, 2, MakeDefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, result, again)
}

func TestFourPoints(t *testing.T) {
	points := makePoints(0, 0, 0, 1, 10, 0, 10, 1)
	options := MakeDefaultOptions()
	options.Seed = 4

	result, err := KMeans(context.Background(), points, 2, options)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1, 1}, result.Labels)
	assert.Equal(t, []geometry.Point{geometry.MakePoint(0, 0.5), geometry.MakePoint(10, 0.5)}, result.Centroids)
	assert.Equal(t, [][]int{{0, 1}, {2, 3}}, result.Members())
	assert.Equal(t, 2, result.Iterations)
	assert.True(t, result.Converged)
}

func TestIterationLimit(t *testing.T) {
	points := makePoints(0, 0, 0, 1, 10, 0, 10, 1)
	options := MakeDefaultOptions()
	options.MaxIterations = 1

	result, err := KMeans(context.Background(), points, 2, options)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Iterations)
	// the first round always changes the labels
	assert.False(t, result.Converged)
}

func TestEmptyClusterIsReseeded(t *testing.T) {
	points := makePoints(3, 4, 3, 4, 3, 4)

	result, err := KMeans(context.Background(), points, 2, MakeDefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, result.Labels)
	assert.Empty(t, result.Members()[1])
	// the centroid of the empty cluster is an input point
	assert.Equal(t, geometry.MakePoint(3, 4), result.Centroids[1])
}

func TestSinglePointPerCluster(t *testing.T) {
	points := makePoints(0, 0, 5, 5, 9, 1)

	result, err := KMeans(context.Background(), points, 3, MakeDefaultOptions())
	require.NoError(t, err)
	for i, label := range result.Labels {
		assert.Equal(t, points[i], result.Centroids[label])
	}
	assert.ElementsMatch(t, []int{0, 1, 2}, result.Labels)
}

func TestInvalidArguments(t *testing.T) {
	points := makePoints(0, 0, 1, 1)
	ctx := context.Background()

	_, err := KMeans(ctx, points, 0, MakeDefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidClusterCount)
	_, err = KMeans(ctx, points, 3, MakeDefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidClusterCount)
	_, err = KMeans(ctx, nil, 1, MakeDefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidClusterCount)
	_, err = KMeans(ctx, points, 1, Options{MaxIterations: 0})
	assert.ErrorIs(t, err, ErrInvalidIterations)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = KMeans(cancelled, points, 1, MakeDefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}
