// Package dataset reads and writes the delimited input files and the result files of a solve run.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/natevvv/osm-delivery-routing/pkg/geometry"
	"github.com/natevvv/osm-delivery-routing/pkg/graph"
)

// default file names inside a data directory
const (
	PointsFile     = "points.csv"
	EdgesFile      = "edges.csv"
	DeliveriesFile = "deliveries.csv"
)

// Dataset is everything which is needed for a solve run
type Dataset struct {
	Graph       *graph.AdjacencyListGraph
	Coordinates geometry.Coordinates
	Deliveries  []graph.NodeId
}

// Load points.csv and edges.csv from dir.
// Every point is a node of the graph, also if no edge touches it.
func LoadGraph(dir string) (*graph.AdjacencyListGraph, geometry.Coordinates, error) {
	coords, err := ReadPointsFile(filepath.Join(dir, PointsFile))
	if err != nil {
		return nil, nil, err
	}
	edges, err := ReadEdgesFile(filepath.Join(dir, EdgesFile))
	if err != nil {
		return nil, nil, err
	}
	alg, err := graph.NewAdjacencyListGraphFromEdges(edges)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", EdgesFile, err)
	}
	for _, id := range coords.Ids() {
		if err := alg.AddNode(id); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", PointsFile, err)
		}
	}
	return alg, coords, nil
}

// Load points.csv, edges.csv and the given delivery file from dir.
// An empty deliveries name means deliveries.csv; a relative name is resolved against dir.
func Load(dir, deliveries string) (*Dataset, error) {
	alg, coords, err := LoadGraph(dir)
	if err != nil {
		return nil, err
	}

	if deliveries == "" {
		deliveries = DeliveriesFile
	}
	if !filepath.IsAbs(deliveries) {
		deliveries = filepath.Join(dir, deliveries)
	}
	nodes, err := ReadDeliveriesFile(deliveries)
	if err != nil {
		return nil, err
	}
	return &Dataset{Graph: alg, Coordinates: coords, Deliveries: nodes}, nil
}

// table is a csv reader which addresses the columns by their header name
type table struct {
	reader  *csv.Reader
	name    string
	columns []int // position of the requested columns
}

func newTable(r io.Reader, name string, columns ...string) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: missing header", name)
	} else if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	position := make(map[string]int, len(header))
	for i, h := range header {
		position[h] = i
	}

	t := &table{reader: reader, name: name, columns: make([]int, len(columns))}
	for i, c := range columns {
		p, ok := position[c]
		if !ok {
			return nil, fmt.Errorf("%s: missing column %q", name, c)
		}
		t.columns[i] = p
	}
	return t, nil
}

// Return the requested columns of the next record, or io.EOF
func (t *table) next() ([]string, error) {
	record, err := t.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", t.name, err)
	}
	values := make([]string, len(t.columns))
	for i, c := range t.columns {
		if c >= len(record) {
			line, _ := t.reader.FieldPos(0)
			return nil, fmt.Errorf("%s:%d: expected at least %d columns, got %d", t.name, line, c+1, len(record))
		}
		values[i] = record[c]
	}
	return values, nil
}

func (t *table) parseError(i int, value string, err error) error {
	line, column := t.reader.FieldPos(t.columns[i])
	return fmt.Errorf("%s:%d:%d: invalid value %q: %w", t.name, line, column, value, err)
}

func (t *table) parseInt(values []string, i int) (int, error) {
	v, err := strconv.Atoi(values[i])
	if err != nil {
		return 0, t.parseError(i, values[i], err)
	}
	return v, nil
}

func (t *table) parseFloat(values []string, i int) (float64, error) {
	v, err := strconv.ParseFloat(values[i], 64)
	if err != nil {
		return 0, t.parseError(i, values[i], err)
	}
	return v, nil
}

// Read a coordinate table with the columns id, x and y. Other columns are ignored.
func ReadPoints(r io.Reader, name string) (geometry.Coordinates, error) {
	t, err := newTable(r, name, "id", "x", "y")
	if err != nil {
		return nil, err
	}
	coords := make(geometry.Coordinates)
	for {
		values, err := t.next()
		if errors.Is(err, io.EOF) {
			return coords, nil
		} else if err != nil {
			return nil, err
		}
		id, err := t.parseInt(values, 0)
		if err != nil {
			return nil, err
		}
		x, err := t.parseFloat(values, 1)
		if err != nil {
			return nil, err
		}
		y, err := t.parseFloat(values, 2)
		if err != nil {
			return nil, err
		}
		coords[id] = geometry.MakePoint(x, y)
	}
}

// Read an edge list with the columns source, target and distance.
// The edges are not validated here, this happens when they are added to a graph.
func ReadEdges(r io.Reader, name string) ([]graph.Edge, error) {
	t, err := newTable(r, name, "source", "target", "distance")
	if err != nil {
		return nil, err
	}
	edges := make([]graph.Edge, 0)
	for {
		values, err := t.next()
		if errors.Is(err, io.EOF) {
			return edges, nil
		} else if err != nil {
			return nil, err
		}
		from, err := t.parseInt(values, 0)
		if err != nil {
			return nil, err
		}
		to, err := t.parseInt(values, 1)
		if err != nil {
			return nil, err
		}
		distance, err := t.parseFloat(values, 2)
		if err != nil {
			return nil, err
		}
		edges = append(edges, graph.MakeEdge(from, to, distance))
	}
}

// Read the delivery node ids (column node_id) in file order
func ReadDeliveries(r io.Reader, name string) ([]graph.NodeId, error) {
	t, err := newTable(r, name, "node_id")
	if err != nil {
		return nil, err
	}
	deliveries := make([]graph.NodeId, 0)
	for {
		values, err := t.next()
		if errors.Is(err, io.EOF) {
			return deliveries, nil
		} else if err != nil {
			return nil, err
		}
		id, err := t.parseInt(values, 0)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, id)
	}
}

func ReadPointsFile(filename string) (geometry.Coordinates, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadPoints(file, filepath.Base(filename))
}

func ReadEdgesFile(filename string) ([]graph.Edge, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadEdges(file, filepath.Base(filename))
}

func ReadDeliveriesFile(filename string) ([]graph.NodeId, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadDeliveries(file, filepath.Base(filename))
}

// Write the coordinate table in ascending id order
func WritePoints(w io.Writer, coords geometry.Coordinates) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "x", "y"}); err != nil {
		return err
	}
	for _, id := range coords.Ids() {
		p := coords[id]
		record := []string{
			strconv.Itoa(id),
			strconv.FormatFloat(p.X(), 'f', -1, 64),
			strconv.FormatFloat(p.Y(), 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Write every undirected edge of the graph once
func WriteEdges(w io.Writer, g graph.Graph) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"source", "target", "distance"}); err != nil {
		return err
	}
	for _, e := range graph.GetEdges(g) {
		record := []string{
			strconv.Itoa(e.From),
			strconv.Itoa(e.To),
			strconv.FormatFloat(e.Distance, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Write points.csv and edges.csv into dir
func WriteGraph(dir string, g graph.Graph, coords geometry.Coordinates) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, PointsFile), func(w io.Writer) error { return WritePoints(w, coords) }); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, EdgesFile), func(w io.Writer) error { return WriteEdges(w, g) })
}

func writeFile(filename string, write func(io.Writer) error) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
