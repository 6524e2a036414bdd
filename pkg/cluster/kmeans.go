// Package cluster groups points in the plane with k-means.
package cluster

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/natevvv/osm-delivery-routing/pkg/geometry"
)

var (
	ErrInvalidClusterCount = errors.New("cluster: invalid cluster count")
	ErrInvalidIterations   = errors.New("cluster: invalid number of iterations")
)

const (
	DefaultMaxIterations = 100
	DefaultSeed          = 42
)

type Options struct {
	MaxIterations int   // upper bound of assignment/update rounds
	Seed          int64 // seed of the random source for initial centroids and reseeding
	Logger        *zap.Logger
}

func MakeDefaultOptions() Options {
	return Options{MaxIterations: DefaultMaxIterations, Seed: DefaultSeed}
}

// Result of a k-means run.
// Labels[i] is the cluster of the i-th input point, Centroids[c] is the position of cluster c.
type Result struct {
	Centroids  []geometry.Point
	Labels     []int
	Iterations int  // number of performed rounds
	Converged  bool // true if the last round didn't change any label
}

// Members returns the indices of the points per cluster.
// The result has one (possibly empty) entry per cluster.
func (r *Result) Members() [][]int {
	members := make([][]int, len(r.Centroids))
	for i, label := range r.Labels {
		members[label] = append(members[label], i)
	}
	return members
}

// KMeans partitions the points into k clusters.
//
// Initial centroids are k distinct input points drawn with the seeded generator.
// Each round assigns every point to its nearest centroid (ties go to the lower index)
// and moves the centroids to the mean of their points. A centroid without points is
// moved to a random input point instead. The loop stops after a round without label
// changes or after MaxIterations rounds.
//
// The result only depends on the points, k and the seed.
func KMeans(ctx context.Context, points []geometry.Point, k int, options Options) (*Result, error) {
	n := len(points)
	if k < 1 || k > n {
		return nil, fmt.Errorf("%w: k=%d with %d points", ErrInvalidClusterCount, k, n)
	}
	if options.MaxIterations < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIterations, options.MaxIterations)
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rng := rand.New(rand.NewSource(options.Seed))

	centroids := make([]geometry.Point, k)
	for c, i := range rng.Perm(n)[:k] {
		centroids[c] = points[i]
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	result := &Result{Centroids: centroids, Labels: labels}
	members := make([][]geometry.Point, k)
	for result.Iterations < options.MaxIterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Iterations++

		changed := false
		for i, p := range points {
			label := nearest(centroids, p)
			if label != labels[i] {
				labels[i] = label
				changed = true
			}
		}

		for c := range members {
			members[c] = members[c][:0]
		}
		for i, p := range points {
			members[labels[i]] = append(members[labels[i]], p)
		}
		for c := range centroids {
			if len(members[c]) == 0 {
				centroids[c] = points[rng.Intn(n)]
				logger.Debug("reseeded empty cluster", zap.Int("cluster", c), zap.Stringer("centroid", centroids[c]))
				continue
			}
			centroids[c] = geometry.Centroid(members[c])
		}

		if !changed {
			result.Converged = true
			break
		}
	}

	logger.Debug("finished k-means",
		zap.Int("points", n),
		zap.Int("k", k),
		zap.Int("iterations", result.Iterations),
		zap.Bool("converged", result.Converged))
	return result, nil
}

// index of the nearest centroid, the first one wins on ties
func nearest(centroids []geometry.Point, p geometry.Point) int {
	best := 0
	bestDistance := math.Inf(1)
	for c, centroid := range centroids {
		if d := p.SquaredDistanceTo(centroid); d < bestDistance {
			best = c
			bestDistance = d
		}
	}
	return best
}
