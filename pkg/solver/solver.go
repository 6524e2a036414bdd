// Package solver clusters deliveries and builds one route per cluster.
package solver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/natevvv/osm-delivery-routing/pkg/cluster"
	"github.com/natevvv/osm-delivery-routing/pkg/geometry"
	"github.com/natevvv/osm-delivery-routing/pkg/graph"
	"github.com/natevvv/osm-delivery-routing/pkg/route"
)

var ErrUnknownOrigin = errors.New("solver: origin is not a node of the graph")

type Config struct {
	Origin        graph.NodeId
	K             int
	MaxIterations int
	Seed          int64
	Workers       int // number of clusters which are solved concurrently, GOMAXPROCS if < 1
	Mode          route.SearchMode
}

func MakeDefaultConfig() Config {
	return Config{
		K:             3,
		MaxIterations: cluster.DefaultMaxIterations,
		Seed:          cluster.DefaultSeed,
		Mode:          route.ModeAStar,
	}
}

// ClusterSolution is the route of a single cluster
type ClusterSolution struct {
	Id       int
	Stops    []graph.NodeId // deliveries of the cluster in input order
	Centroid geometry.Point
	Route    *route.Route
}

type Solution struct {
	Id         uuid.UUID
	Origin     graph.NodeId
	K          int
	Mode       route.SearchMode
	Clusters   map[int]*ClusterSolution // only clusters with at least one delivery
	TotalCost  float64                  // sum of the route costs of all clusters
	Iterations int                      // k-means rounds
	Converged  bool
	Duration   time.Duration
}

// Return the cluster ids in ascending order
func (s *Solution) ClusterIds() []int {
	ids := make([]int, 0, len(s.Clusters))
	for id := range s.Clusters {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Solver holds the read-only inputs which are shared by all solve runs.
// Solve may be called concurrently.
type Solver struct {
	g      graph.Graph
	coords geometry.Coordinates
	logger *zap.Logger
}

// Create a solver for the graph.
// Dynamic graphs are frozen into an adjacency array, so later modifications of g don't affect the solver.
func NewSolver(g graph.Graph, coords geometry.Coordinates) *Solver {
	if _, ok := g.(*graph.AdjacencyArrayGraph); !ok {
		g = graph.NewAdjacencyArrayFromGraph(g)
	}
	return &Solver{g: g, coords: coords, logger: zap.NewNop()}
}

func (s *Solver) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s.logger = logger
}

func (s *Solver) Graph() graph.Graph                { return s.g }
func (s *Solver) Coordinates() geometry.Coordinates { return s.coords }

// Solve clusters the deliveries by their coordinates and builds a route from the origin for every non-empty cluster.
// The clusters are routed concurrently; the first error cancels the remaining work.
func (s *Solver) Solve(ctx context.Context, deliveries []graph.NodeId, config Config) (*Solution, error) {
	start := time.Now()
	if !s.g.HasNode(config.Origin) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOrigin, config.Origin)
	}
	points, err := s.coords.Points(deliveries)
	if err != nil {
		return nil, fmt.Errorf("delivery: %w", err)
	}

	clustering, err := cluster.KMeans(ctx, points, config.K, cluster.Options{
		MaxIterations: config.MaxIterations,
		Seed:          config.Seed,
		Logger:        s.logger,
	})
	if err != nil {
		return nil, err
	}

	solution := &Solution{
		Id:         uuid.New(),
		Origin:     config.Origin,
		K:          config.K,
		Mode:       config.Mode,
		Clusters:   make(map[int]*ClusterSolution),
		Iterations: clustering.Iterations,
		Converged:  clustering.Converged,
	}
	for id, members := range clustering.Members() {
		if len(members) == 0 {
			continue
		}
		stops := make([]graph.NodeId, len(members))
		for i, m := range members {
			stops[i] = deliveries[m]
		}
		solution.Clusters[id] = &ClusterSolution{Id: id, Stops: stops, Centroid: clustering.Centroids[id]}
	}

	workers := config.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, id := range solution.ClusterIds() {
		cs := solution.Clusters[id]
		eg.Go(func() error {
			// search state is per worker, only the graph and the coordinates are shared
			oracle, err := route.NewOracle(config.Mode, s.g, s.coords, s.logger)
			if err != nil {
				return err
			}
			builder := route.NewBuilder(oracle)
			builder.SetLogger(s.logger)
			r, err := builder.Build(egCtx, config.Origin, cs.Stops)
			if err != nil {
				return fmt.Errorf("cluster %d: %w", cs.Id, err)
			}
			cs.Route = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for _, id := range solution.ClusterIds() {
		solution.TotalCost += solution.Clusters[id].Route.Cost
	}
	solution.Duration = time.Since(start)

	s.logger.Info("solved deliveries",
		zap.Stringer("id", solution.Id),
		zap.Int("deliveries", len(deliveries)),
		zap.Int("clusters", len(solution.Clusters)),
		zap.Float64("totalCost", solution.TotalCost),
		zap.Duration("duration", solution.Duration))
	return solution, nil
}
