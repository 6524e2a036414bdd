// SPDX-License-Identifier: MIT

package openapi_server

type RouteResult struct {
	Origin      int      `json:"origin"`
	Destination int      `json:"destination"`
	Reachable   bool     `json:"reachable"`
	Cost        *float64 `json:"cost,omitempty"` // only set for reachable destinations
	Path        []int    `json:"path"`
	Waypoints   []Point  `json:"waypoints"`
}
