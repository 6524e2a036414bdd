package pbf

import (
	"errors"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/paulmach/orb"
	"github.com/qedus/osmpbf"
	"go.uber.org/zap"

	"github.com/natevvv/osm-delivery-routing/pkg/road"
)

// RoadImporter reads the roads of an .osm.pbf file.
// The file is decoded twice: first the ways, then the positions of the nodes they use.
type RoadImporter struct {
	filename string
	roads    []*road.Segment
	nodes    map[int64]orb.Point // positions of the nodes which are used by a road
	logger   *zap.Logger
}

func NewRoadImporter(filename string) *RoadImporter {
	return &RoadImporter{
		filename: filename,
		roads:    make([]*road.Segment, 0),
		nodes:    make(map[int64]orb.Point),
		logger:   zap.NewNop(),
	}
}

func (ri *RoadImporter) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ri.logger = logger
}

func (ri *RoadImporter) Import() error {
	if err := ri.collectRoads(); err != nil {
		return err
	}
	if err := ri.collectNodes(); err != nil {
		return err
	}

	resolved := ri.roads[:0]
	for _, segment := range ri.roads {
		if segment.Resolve(ri.nodes) {
			resolved = append(resolved, segment)
		}
	}
	ri.roads = resolved
	ri.logger.Info("imported roads", zap.String("file", ri.filename), zap.Int("roads", len(ri.roads)), zap.Int("nodes", len(ri.nodes)))
	return nil
}

func (ri *RoadImporter) Roads() []*road.Segment {
	return ri.roads
}

func (ri *RoadImporter) decode(handle func(v interface{})) error {
	file, err := os.Open(ri.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)
	if err := decoder.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return err
	}

	for {
		v, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
		handle(v)
	}
}

func (ri *RoadImporter) collectRoads() error {
	var wg sync.WaitGroup
	roadsChan := make(chan *road.Segment, 1000)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for segment := range roadsChan {
			ri.roads = append(ri.roads, segment)
			for _, id := range segment.NodeIds {
				ri.nodes[id] = orb.Point{}
			}
		}
	}()

	err := ri.decode(func(v interface{}) {
		if way, ok := v.(*osmpbf.Way); ok {
			if segment := road.NewSegment(way.ID, way.Tags, way.NodeIDs); segment != nil {
				roadsChan <- segment
			}
		}
	})
	close(roadsChan)
	wg.Wait()
	return err
}

func (ri *RoadImporter) collectNodes() error {
	found := make(map[int64]orb.Point, len(ri.nodes))
	err := ri.decode(func(v interface{}) {
		if node, ok := v.(*osmpbf.Node); ok {
			if _, ok := ri.nodes[node.ID]; ok {
				found[node.ID] = orb.Point{node.Lon, node.Lat}
			}
		}
	})
	ri.nodes = found
	return err
}
