package road

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

type RoadType int

const (
	Unknown RoadType = iota
	Motorway
	Trunk
	Primary
	Secondary
	Tertiary
	Unclassified
	Residential
	LivingStreet
	Service
)

// Segment is an OSM way which is usable for deliveries.
// Points[i] is the position (lon, lat) of NodeIds[i].
type Segment struct {
	ID       int64
	Type     RoadType
	NodeIds  []int64
	Points   []orb.Point
	Tags     map[string]string
	OneWay   bool
	MaxSpeed int // km/h, 0 if unknown
}

func (r RoadType) String() string {
	return []string{"Unknown", "Motorway", "Trunk", "Primary", "Secondary", "Tertiary", "Unclassified", "Residential", "LivingStreet", "Service"}[r]
}

// Map the value of a highway tag to the road type. Link roads get the type of the road they belong to.
func ParseRoadType(highway string) RoadType {
	switch strings.TrimSuffix(highway, "_link") {
	case "motorway":
		return Motorway
	case "trunk":
		return Trunk
	case "primary":
		return Primary
	case "secondary":
		return Secondary
	case "tertiary":
		return Tertiary
	case "unclassified":
		return Unclassified
	case "residential":
		return Residential
	case "living_street":
		return LivingStreet
	case "service":
		return Service
	default:
		return Unknown
	}
}

// Parse a maxspeed tag like "50" or "30 mph". Returns 0 for anything else.
func ParseMaxSpeed(maxSpeed string) int {
	fields := strings.Fields(maxSpeed)
	if len(fields) == 0 {
		return 0
	}
	speed, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	if len(fields) > 1 && fields[1] == "mph" {
		return speed * 1609 / 1000
	}
	return speed
}

// Create a segment for a way with the given tags.
// Returns nil if the way isn't a road or has less than two nodes.
func NewSegment(id int64, tags map[string]string, nodeIds []int64) *Segment {
	roadType := ParseRoadType(tags["highway"])
	if roadType == Unknown || len(nodeIds) < 2 {
		return nil
	}
	ids := make([]int64, len(nodeIds))
	copy(ids, nodeIds)
	return &Segment{
		ID:       id,
		Type:     roadType,
		NodeIds:  ids,
		Tags:     tags,
		OneWay:   tags["oneway"] == "yes",
		MaxSpeed: ParseMaxSpeed(tags["maxspeed"]),
	}
}

// Resolve the node positions. Nodes without a position are dropped.
// Returns false if less than two nodes remain.
func (s *Segment) Resolve(nodes map[int64]orb.Point) bool {
	ids := s.NodeIds[:0]
	s.Points = make([]orb.Point, 0, len(s.NodeIds))
	for _, id := range s.NodeIds {
		if p, ok := nodes[id]; ok {
			ids = append(ids, id)
			s.Points = append(s.Points, p)
		}
	}
	s.NodeIds = ids
	return len(s.NodeIds) > 1
}

// Importer reads the road segments of an OSM file
type Importer interface {
	Import() error
	Roads() []*Segment
}
