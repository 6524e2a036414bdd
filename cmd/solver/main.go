package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/natevvv/osm-delivery-routing/pkg/config"
	"github.com/natevvv/osm-delivery-routing/pkg/dataset"
	"github.com/natevvv/osm-delivery-routing/pkg/solver"
)

const (
	solutionFile = "solution.json"
	routesFile   = "routes.geojson"
)

func main() {
	configFile := flag.String("config", "", "YAML configuration file")
	dataDir := flag.String("data", "", "directory with points.csv, edges.csv and the deliveries")
	deliveries := flag.String("deliveries", "", "delivery file, relative to the data directory")
	outputsDir := flag.String("outputs", "", "directory for solution.json and routes.geojson")
	origin := flag.Int("origin", 0, "depot node")
	k := flag.Int("k", 0, "number of clusters")
	maxIterations := flag.Int("max-iter", 0, "maximum number of k-means iterations")
	seed := flag.Int64("seed", 0, "seed of the k-means initialization")
	workers := flag.Int("workers", 0, "number of clusters which are routed concurrently, 0 for GOMAXPROCS")
	mode := flag.String("mode", "", "shortest path search: astar or dijkstra")
	dev := flag.Bool("dev", false, "development logging")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			cfg.DataDir = *dataDir
		case "deliveries":
			cfg.Deliveries = *deliveries
		case "outputs":
			cfg.OutputsDir = *outputsDir
		case "origin":
			cfg.Solver.Origin = *origin
		case "k":
			cfg.Solver.K = *k
		case "max-iter":
			cfg.Solver.MaxIterations = *maxIterations
		case "seed":
			cfg.Solver.Seed = *seed
		case "workers":
			cfg.Solver.Workers = *workers
		case "mode":
			cfg.Solver.Mode = *mode
		case "dev":
			cfg.Log.Development = *dev
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger, err := cfg.Log.NewLogger()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("solve failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	solverConfig, err := cfg.Solver.SolverConfig()
	if err != nil {
		return err
	}

	start := time.Now()
	ds, err := dataset.Load(cfg.DataDir, cfg.Deliveries)
	if err != nil {
		return err
	}
	fmt.Printf("[TIME] Load dataset: %s\n", time.Since(start))
	fmt.Printf("Nodes: %d, Arcs: %d, Deliveries: %d\n", ds.Graph.NodeCount(), ds.Graph.ArcCount(), len(ds.Deliveries))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start = time.Now()
	s := solver.NewSolver(ds.Graph, ds.Coordinates)
	s.SetLogger(logger)
	solution, err := s.Solve(ctx, ds.Deliveries, solverConfig)
	if err != nil {
		return err
	}
	fmt.Printf("[TIME] Solve: %s\n", time.Since(start))

	for _, id := range solution.ClusterIds() {
		cs := solution.Clusters[id]
		fmt.Printf("Cluster %d: %d stops, cost %.3f, %d unreachable\n", id, len(cs.Stops), cs.Route.Cost, len(cs.Route.Unreachable))
	}
	fmt.Printf("Total cost: %.3f\n", solution.TotalCost)

	start = time.Now()
	if err := os.MkdirAll(cfg.OutputsDir, 0o755); err != nil {
		return err
	}
	if err := dataset.WriteSolutionFile(filepath.Join(cfg.OutputsDir, solutionFile), solution); err != nil {
		return err
	}
	if err := dataset.WriteRoutesFile(filepath.Join(cfg.OutputsDir, routesFile), solution, ds.Coordinates); err != nil {
		return err
	}
	fmt.Printf("[TIME] Export: %s\n", time.Since(start))
	logger.Info("wrote results", zap.String("dir", cfg.OutputsDir), zap.Stringer("id", solution.Id))
	return nil
}
