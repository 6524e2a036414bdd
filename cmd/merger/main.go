package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/natevvv/osm-delivery-routing/internal/osmfile"
	"github.com/natevvv/osm-delivery-routing/pkg/road"
)

var flagOsmFile = flag.String("f", "", "OSM extract (.osm.pbf or .osm)")
var flagOutputFile = flag.String("o", "roads.geojson", "output file for the merged roads")

func main() {
	flag.Parse()
	if *flagOsmFile == "" {
		log.Fatal("no OSM file given, use -f")
	}

	logger := zap.Must(zap.NewProduction())
	defer logger.Sync()

	start := time.Now()

	roads, err := osmfile.ImportRoads(*flagOsmFile, logger)
	if err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}

	elapsed := time.Since(start)
	fmt.Printf("[TIME] Import: %s\n", elapsed)

	start = time.Now()

	merger := road.NewMerger(roads)
	merger.Merge()

	elapsed = time.Since(start)
	fmt.Printf("[TIME] Merge: %s\n", elapsed)
	fmt.Printf("Road segments: %d\n", len(merger.Roads()))
	fmt.Printf("Merges: %d\n", merger.MergeCount())
	fmt.Printf("Unmergable segments: %d\n", merger.UnmergableRoadCount())

	start = time.Now()

	if err := road.ExportRoadGeoJson(merger.Roads(), *flagOutputFile); err != nil {
		logger.Fatal("export failed", zap.Error(err))
	}

	elapsed = time.Since(start)
	fmt.Printf("[TIME] Export: %s\n", elapsed)
	fmt.Printf("Exported road network to %s\n", *flagOutputFile)
}
