// SPDX-License-Identifier: MIT

package openapi_server

type Node struct {
	Id int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type Nodes struct {
	Nodes []Node `json:"nodes"`
}

// SearchSpace holds the positions of the nodes which were settled by the last route query
type SearchSpace struct {
	Waypoints []Point `json:"waypoints"`
}
