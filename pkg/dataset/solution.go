package dataset

import (
	"encoding/json"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/natevvv/osm-delivery-routing/pkg/graph"
	"github.com/natevvv/osm-delivery-routing/pkg/solver"
)

// SolutionDocument is the serialized form of a solver.Solution (solution.json)
type SolutionDocument struct {
	Id               string                     `json:"id"`
	Origin           graph.NodeId               `json:"origin"`
	K                int                        `json:"k"`
	Mode             string                     `json:"mode"`
	Iterations       int                        `json:"iterations"`
	Converged        bool                       `json:"converged"`
	TotalCost        float64                    `json:"total_cost_all_clusters"`
	ClusterSolutions map[string]ClusterDocument `json:"cluster_solutions"`
}

type ClusterDocument struct {
	Stops       []graph.NodeId `json:"stops"`
	VisitOrder  []graph.NodeId `json:"visit_order"`
	PathNodes   []graph.NodeId `json:"path_nodes"`
	TotalCost   float64        `json:"total_cost"`
	Unreachable []graph.NodeId `json:"unreachable"`
	Centroid    [2]float64     `json:"centroid"`
}

// costs are reported with three decimals
func roundCost(cost float64) float64 {
	return math.Round(cost*1000) / 1000
}

func NewSolutionDocument(s *solver.Solution) SolutionDocument {
	doc := SolutionDocument{
		Id:               s.Id.String(),
		Origin:           s.Origin,
		K:                s.K,
		Mode:             string(s.Mode),
		Iterations:       s.Iterations,
		Converged:        s.Converged,
		TotalCost:        roundCost(s.TotalCost),
		ClusterSolutions: make(map[string]ClusterDocument, len(s.Clusters)),
	}
	for _, id := range s.ClusterIds() {
		cs := s.Clusters[id]
		doc.ClusterSolutions[strconv.Itoa(id)] = ClusterDocument{
			Stops:       cs.Stops,
			VisitOrder:  cs.Route.Stops,
			PathNodes:   cs.Route.Path,
			TotalCost:   roundCost(cs.Route.Cost),
			Unreachable: cs.Route.Unreachable,
			Centroid:    [2]float64{cs.Centroid.X(), cs.Centroid.Y()},
		}
	}
	return doc
}

func WriteSolution(w io.Writer, s *solver.Solution) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewSolutionDocument(s))
}

func WriteSolutionFile(filename string, s *solver.Solution) error {
	return writeFile(filename, func(w io.Writer) error { return WriteSolution(w, s) })
}

func ReadSolutionFile(filename string) (*SolutionDocument, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	var doc SolutionDocument
	if err := json.NewDecoder(file).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
