package geometry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ErrMissingCoordinate is returned when a node has no entry in a coordinate table.
var ErrMissingCoordinate = errors.New("geometry: missing coordinate")

// Point is a position in the plane
type Point orb.Point

func MakePoint(x, y float64) Point {
	return Point{x, y}
}

func NewPoint(x, y float64) *Point {
	p := MakePoint(x, y)
	return &p
}

func (p Point) X() float64 { return p[0] }
func (p Point) Y() float64 { return p[1] }

// Return the point as orb.Point
func (p Point) Orb() orb.Point { return orb.Point(p) }

// Return the straight line distance to the other point
func (p Point) DistanceTo(other Point) float64 {
	return planar.Distance(p.Orb(), other.Orb())
}

// Return the squared straight line distance to the other point
func (p Point) SquaredDistanceTo(other Point) float64 {
	return planar.DistanceSquared(p.Orb(), other.Orb())
}

func (p Point) String() string {
	return fmt.Sprintf("(%v, %v)", p[0], p[1])
}

// Centroid returns the arithmetic mean of the given points.
// It panics for an empty slice.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		panic("centroid of empty point set")
	}
	mp := make(orb.MultiPoint, len(points))
	for i, p := range points {
		mp[i] = p.Orb()
	}
	c, _ := planar.CentroidArea(mp)
	return Point(c)
}

// Coordinates maps node ids to their position.
type Coordinates map[int]Point

// Get the position of the node, or ErrMissingCoordinate
func (c Coordinates) Lookup(id int) (Point, error) {
	p, ok := c[id]
	if !ok {
		return Point{}, fmt.Errorf("node %d: %w", id, ErrMissingCoordinate)
	}
	return p, nil
}

// Return the positions of the given nodes in the same order
func (c Coordinates) Points(ids []int) ([]Point, error) {
	points := make([]Point, len(ids))
	for i, id := range ids {
		p, err := c.Lookup(id)
		if err != nil {
			return nil, err
		}
		points[i] = p
	}
	return points, nil
}

// Return all node ids of the table in ascending order
func (c Coordinates) Ids() []int {
	ids := make([]int, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Return the bounding box of all positions
func (c Coordinates) Bound() orb.Bound {
	if len(c) == 0 {
		return orb.Bound{}
	}
	mp := make(orb.MultiPoint, 0, len(c))
	for _, id := range c.Ids() {
		mp = append(mp, c[id].Orb())
	}
	return mp.Bound()
}
