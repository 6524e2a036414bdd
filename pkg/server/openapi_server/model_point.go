// SPDX-License-Identifier: MIT

package openapi_server

import "github.com/natevvv/osm-delivery-routing/pkg/geometry"

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func newPoint(p geometry.Point) Point {
	return Point{X: p.X(), Y: p.Y()}
}

func newPoints(points []geometry.Point) []Point {
	result := make([]Point, 0, len(points))
	for _, p := range points {
		result = append(result, newPoint(p))
	}
	return result
}
