package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/natevvv/osm-delivery-routing/pkg/dataset"
	"github.com/natevvv/osm-delivery-routing/pkg/geometry"
	"github.com/natevvv/osm-delivery-routing/pkg/graph"
	p "github.com/natevvv/osm-delivery-routing/pkg/graph/path"
)

// a benchmark query with the result of the reference search
type target struct {
	origin      graph.NodeId
	destination graph.NodeId
	length      float64
	hops        int // nodes on the path, including origin and destination
}

func main() {
	dataDir := flag.String("data", "data", "directory with points.csv and edges.csv")
	targetFile := flag.String("targets", "", "file with the benchmark queries")
	useRandomTargets := flag.Bool("random", false, "Create (new) random targets")
	amountTargets := flag.Int("n", 100, "How many new targets should get created")
	seed := flag.Int64("seed", 1, "seed for the random targets")
	storeTargets := flag.Bool("store", false, "Store targets (when newly generated)")
	algorithm := flag.String("search", "astar", "Select the search algorithm: astar, dijkstra or reference")
	matrixSize := flag.Int("matrix", 0, "additionally time a cost matrix between this many random nodes")
	cpuProfile := flag.String("cpu", "", "write cpu profile to file")
	debugLevel := flag.Int("debug", 0, "debug level of the search")
	flag.Parse()

	logger := zap.Must(zap.NewDevelopment())
	defer logger.Sync()

	start := time.Now()
	alg, coords, err := dataset.LoadGraph(*dataDir)
	if err != nil {
		log.Fatal(err)
	}
	g := graph.NewAdjacencyArrayFromGraph(alg)
	fmt.Printf("[TIME-Import] = %s\n", time.Since(start))

	navigator := getNavigator(*algorithm, g, coords, *debugLevel, logger)
	if navigator == nil {
		log.Fatal("Navigator not supported")
	}
	referenceDijkstra := p.NewDijkstra(g)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var targets []target
	if *useRandomTargets || *targetFile == "" {
		targets, err = createTargets(ctx, *amountTargets, rand.New(rand.NewSource(*seed)), referenceDijkstra)
		if err != nil {
			log.Fatal(err)
		}
		if *storeTargets && *targetFile != "" {
			if err := writeTargets(targets, *targetFile); err != nil {
				log.Fatal(err)
			}
		}
	} else {
		targets, err = readTargets(*targetFile)
		if err != nil {
			log.Fatal(err)
		}
		if *amountTargets < len(targets) {
			targets = targets[0:*amountTargets]
		}
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}
	benchmark(ctx, navigator, targets)

	if *matrixSize > 0 {
		benchmarkCostMatrix(ctx, g, *matrixSize, rand.New(rand.NewSource(*seed)))
	}
}

func getNavigator(algorithm string, g graph.Graph, coords geometry.Coordinates, debugLevel int, logger *zap.Logger) p.Navigator {
	switch algorithm {
	case "astar":
		astar := p.NewAStar(g, coords)
		astar.SetLogger(logger)
		astar.SetDebugLevel(debugLevel)
		return astar
	case "dijkstra":
		d := p.NewUniversalDijkstra(g, coords)
		d.SetLogger(logger)
		d.SetDebugLevel(debugLevel)
		return d
	case "reference":
		d := p.NewDijkstra(g)
		d.SetLogger(logger)
		return d
	}
	return nil
}

func readTargets(filename string) ([]target, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanLines)

	targets := make([]target, 0)

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 1 {
			// skip empty lines
			continue
		} else if line[0] == '#' {
			// skip comments
			continue
		}
		var t target
		if _, err := fmt.Sscanf(line, "%d %d %g %d", &t.origin, &t.destination, &t.length, &t.hops); err != nil {
			return nil, fmt.Errorf("%s: invalid target %q: %w", filename, line, err)
		}
		targets = append(targets, t)
	}
	return targets, scanner.Err()
}

func createTargets(ctx context.Context, n int, rng *rand.Rand, referenceNavigator *p.Dijkstra) ([]target, error) {
	nodes := referenceNavigator.GetGraph().GetNodeIds()
	targets := make([]target, n)
	// reference algorithm to compute path
	for i := 0; i < n; i++ {
		origin := nodes[rng.Intn(len(nodes))]
		destination := nodes[rng.Intn(len(nodes))]
		length, err := referenceNavigator.ComputeShortestPath(ctx, origin, destination)
		if err != nil {
			return nil, err
		}
		hops := len(referenceNavigator.GetPath(origin, destination))
		targets[i] = target{origin: origin, destination: destination, length: length, hops: hops}
	}
	return targets, nil
}

func writeTargets(targets []target, targetFile string) error {
	var sb strings.Builder
	for _, t := range targets {
		sb.WriteString(fmt.Sprintf("%v %v %v %v\n", t.origin, t.destination, t.length, t.hops))
	}
	return os.WriteFile(targetFile, []byte(sb.String()), 0o644)
}

// Run benchmarks on the provided graph and targets
func benchmark(ctx context.Context, navigator p.Navigator, targets []target) {
	var runtime time.Duration = 0
	var runtimeWithPathExtraction time.Duration = 0
	completed := 0

	pqPops := 0
	pqUpdates := 0
	edgeRelaxations := 0
	relaxationAttempts := 0

	invalidLengths := make([]int, 0)
	invalidResults := make([]int, 0)

	showResults := func() {
		if completed == 0 {
			fmt.Println("No target completed")
			return
		}
		fmt.Printf("Average runtime: %.3fms, %.3fms\n", float64(runtime.Nanoseconds()/int64(completed))/1000000, float64(runtimeWithPathExtraction.Nanoseconds()/int64(completed))/1000000)
		fmt.Printf("Average pq pops: %d\n", pqPops/completed)
		fmt.Printf("Average pq updates: %d\n", pqUpdates/completed)
		fmt.Printf("Average relaxations attempts: %d\n", relaxationAttempts/completed)
		fmt.Printf("Average edge relaxations: %d\n", edgeRelaxations/completed)

		fmt.Printf("%v/%v invalid Result (source/target).\n", len(invalidResults), completed)
		for i, result := range invalidResults {
			fmt.Printf("%v: Case %v (%v -> %v) has invalid result\n", i, result, targets[result].origin, targets[result].destination)
		}

		fmt.Printf("%v/%v invalid path lengths.\n", len(invalidLengths), completed)
		for i, testcase := range invalidLengths {
			fmt.Printf("%v: Case %v (%v -> %v) has invalid length. Reference: %v\n", i, testcase, targets[testcase].origin, targets[testcase].destination, targets[testcase].length)
		}
	}
	// interrupted runs still show the already calculated results
	defer showResults()

	for i, t := range targets {
		start := time.Now()
		length, err := navigator.ComputeShortestPath(ctx, t.origin, t.destination)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("Stopped at case %v: %v\n", i, err)
			return
		}

		pqPops += navigator.GetPqPops()
		pqUpdates += navigator.GetPqUpdates()
		edgeRelaxations += navigator.GetEdgeRelaxations()
		relaxationAttempts += navigator.GetRelaxationAttempts()

		path := navigator.GetPath(t.origin, t.destination)
		elapsedPath := time.Since(start)

		fmt.Printf("[%3v TIME-Navigate, TIME-Path, PQ Pops, PQ Updates, relaxed Edges, relax attempts] = %12s, %12s, %7d, %7d, %7d, %7d\n", i, elapsed, elapsedPath, navigator.GetPqPops(), navigator.GetPqUpdates(), navigator.GetEdgeRelaxations(), navigator.GetRelaxationAttempts())

		if !sameLength(length, t.length) {
			invalidLengths = append(invalidLengths, i)
		}
		if p.IsReachable(length) && (len(path) == 0 || path[0] != t.origin || path[len(path)-1] != t.destination) {
			invalidResults = append(invalidResults, i)
		}

		runtime += elapsed
		runtimeWithPathExtraction += elapsedPath
		completed++
	}
}

func benchmarkCostMatrix(ctx context.Context, g graph.Graph, n int, rng *rand.Rand) {
	ids := g.GetNodeIds()
	nodes := make([]graph.NodeId, n)
	for i := range nodes {
		nodes[i] = ids[rng.Intn(len(ids))]
	}
	start := time.Now()
	m, err := p.NewCostMatrix(ctx, g, nodes)
	if err != nil {
		fmt.Printf("Cost matrix stopped: %v\n", err)
		return
	}
	fmt.Printf("[TIME-CostMatrix] %d nodes = %s\n", len(m.Nodes()), time.Since(start))
}

// lengths are sums of floating point weights which may be added in a different order
func sameLength(a, b float64) bool {
	if math.IsInf(a, 1) || math.IsInf(b, 1) {
		return a == b
	}
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}
