package graph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/natevvv/osm-delivery-routing/pkg/geometry"
)

// fmi parse states
const (
	PARSE_NODE_COUNT = iota
	PARSE_EDGE_COUNT = iota
	PARSE_NODES      = iota
	PARSE_EDGES      = iota
)

// Return the graph in the fmi format.
// Nodes are listed as "id x y" (or "id" if coords has no entry for it), edges as "from to distance".
// Every undirected edge is listed once.
func AsFmiString(g Graph, coords geometry.Coordinates) string {
	var sb strings.Builder

	nodeIds := g.GetNodeIds()
	edges := GetEdges(g)

	// write number of nodes and number of edges
	sb.WriteString(fmt.Sprintf("%v\n", len(nodeIds)))
	sb.WriteString(fmt.Sprintf("%v\n", len(edges)))

	sb.WriteString("#Nodes\n")
	for _, id := range nodeIds {
		if p, ok := coords[id]; ok {
			sb.WriteString(fmt.Sprintf("%v %v %v\n", id, p.X(), p.Y()))
		} else {
			sb.WriteString(fmt.Sprintf("%v\n", id))
		}
	}

	sb.WriteString("#Edges\n")
	for _, edge := range edges {
		sb.WriteString(fmt.Sprintf("%v %v %v\n", edge.From, edge.To, edge.Distance))
	}
	return sb.String()
}

func WriteFmi(g Graph, coords geometry.Coordinates, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString(AsFmiString(g, coords)); err != nil {
		return err
	}
	return writer.Flush()
}

func NewAdjacencyListFromFmi(r io.Reader) (*AdjacencyListGraph, geometry.Coordinates, error) {
	scanner := bufio.NewScanner(r)

	numNodes := 0
	numEdges := 0
	numParsedNodes := 0
	numParsedEdges := 0

	alg := NewAdjacencyListGraph()
	coords := make(geometry.Coordinates)

	lineNumber := 0
	parseState := PARSE_NODE_COUNT
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if len(line) < 1 {
			// skip empty lines
			continue
		} else if line[0] == '#' {
			// skip comments
			continue
		}

		fields := strings.Fields(line)
		switch parseState {
		case PARSE_NODE_COUNT:
			val, err := strconv.Atoi(line)
			if err != nil {
				return nil, nil, fmt.Errorf("fmi line %d: node count: %w", lineNumber, err)
			}
			numNodes = val
			parseState = PARSE_EDGE_COUNT
		case PARSE_EDGE_COUNT:
			val, err := strconv.Atoi(line)
			if err != nil {
				return nil, nil, fmt.Errorf("fmi line %d: edge count: %w", lineNumber, err)
			}
			numEdges = val
			parseState = PARSE_NODES
			if numNodes == 0 {
				parseState = PARSE_EDGES
			}
		case PARSE_NODES:
			if len(fields) != 1 && len(fields) != 3 {
				return nil, nil, fmt.Errorf("fmi line %d: expected \"id [x y]\", got %q", lineNumber, line)
			}
			id, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, nil, fmt.Errorf("fmi line %d: node id: %w", lineNumber, err)
			}
			if err := alg.AddNode(id); err != nil {
				return nil, nil, fmt.Errorf("fmi line %d: %w", lineNumber, err)
			}
			if len(fields) == 3 {
				x, errX := strconv.ParseFloat(fields[1], 64)
				y, errY := strconv.ParseFloat(fields[2], 64)
				if errX != nil || errY != nil {
					return nil, nil, fmt.Errorf("fmi line %d: invalid coordinate %q", lineNumber, line)
				}
				coords[id] = geometry.MakePoint(x, y)
			}
			numParsedNodes++
			if numParsedNodes == numNodes {
				parseState = PARSE_EDGES
			}
		case PARSE_EDGES:
			if len(fields) != 3 {
				return nil, nil, fmt.Errorf("fmi line %d: expected \"from to distance\", got %q", lineNumber, line)
			}
			from, errFrom := strconv.Atoi(fields[0])
			to, errTo := strconv.Atoi(fields[1])
			distance, errDistance := strconv.ParseFloat(fields[2], 64)
			if errFrom != nil || errTo != nil || errDistance != nil {
				return nil, nil, fmt.Errorf("fmi line %d: invalid edge %q", lineNumber, line)
			}
			if err := alg.AddEdge(from, to, distance); err != nil {
				return nil, nil, fmt.Errorf("fmi line %d: %w", lineNumber, err)
			}
			numParsedEdges++
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	if numParsedNodes != numNodes || numParsedEdges != numEdges {
		return nil, nil, fmt.Errorf("fmi: expected %d nodes and %d edges, parsed %d nodes and %d edges", numNodes, numEdges, numParsedNodes, numParsedEdges)
	}

	return alg, coords, nil
}

func NewAdjacencyListFromFmiString(fmi string) (*AdjacencyListGraph, geometry.Coordinates, error) {
	return NewAdjacencyListFromFmi(strings.NewReader(fmi))
}

func NewAdjacencyListFromFmiFile(filename string) (*AdjacencyListGraph, geometry.Coordinates, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()
	return NewAdjacencyListFromFmi(file)
}

func NewAdjacencyArrayFromFmiString(fmi string) (*AdjacencyArrayGraph, geometry.Coordinates, error) {
	alg, coords, err := NewAdjacencyListFromFmiString(fmi)
	if err != nil {
		return nil, nil, err
	}
	return NewAdjacencyArrayFromGraph(alg), coords, nil
}

func NewAdjacencyArrayFromFmiFile(filename string) (*AdjacencyArrayGraph, geometry.Coordinates, error) {
	alg, coords, err := NewAdjacencyListFromFmiFile(filename)
	if err != nil {
		return nil, nil, err
	}
	return NewAdjacencyArrayFromGraph(alg), coords, nil
}
