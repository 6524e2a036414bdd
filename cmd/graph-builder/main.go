package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/natevvv/osm-delivery-routing/internal/osmfile"
	"github.com/natevvv/osm-delivery-routing/pkg/dataset"
	"github.com/natevvv/osm-delivery-routing/pkg/graph"
	"github.com/natevvv/osm-delivery-routing/pkg/road"
)

func main() {
	osmFile := flag.String("f", "", "OSM extract (.osm.pbf or .osm)")
	outputDir := flag.String("o", "data", "directory for points.csv and edges.csv")
	fmiFile := flag.String("fmi", "", "additionally write the graph in the fmi format")
	dev := flag.Bool("dev", false, "development logging")
	flag.Parse()

	if *osmFile == "" {
		log.Fatal("no OSM file given, use -f")
	}

	logger := zap.Must(zap.NewProduction())
	if *dev {
		logger = zap.Must(zap.NewDevelopment())
	}
	defer logger.Sync()

	if err := createRoadGraph(*osmFile, *outputDir, *fmiFile, logger); err != nil {
		logger.Fatal("building the road graph failed", zap.Error(err))
	}
}

func createRoadGraph(osmFile, outputDir, fmiFile string, logger *zap.Logger) error {
	start := time.Now()
	roads, err := osmfile.ImportRoads(osmFile, logger)
	if err != nil {
		return err
	}
	fmt.Printf("[TIME] Import roads: %s\n", time.Since(start))
	fmt.Printf("Road segments: %d\n", len(roads))

	start = time.Now()
	rg, err := road.BuildGraph(roads)
	if err != nil {
		return err
	}
	fmt.Printf("[TIME] Build graph: %s\n", time.Since(start))
	fmt.Printf("Nodes: %d\n", rg.Graph.NodeCount())
	fmt.Printf("Arcs: %d\n", rg.Graph.ArcCount())

	start = time.Now()
	if err := dataset.WriteGraph(outputDir, rg.Graph, rg.Coordinates); err != nil {
		return err
	}
	if fmiFile != "" {
		if err := graph.WriteFmi(rg.Graph, rg.Coordinates, fmiFile); err != nil {
			return err
		}
	}
	fmt.Printf("[TIME] Export graph: %s\n", time.Since(start))
	logger.Info("wrote road graph", zap.String("dir", outputDir), zap.String("fmi", fmiFile))
	return nil
}
