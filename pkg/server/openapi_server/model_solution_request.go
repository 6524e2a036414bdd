// SPDX-License-Identifier: MIT

package openapi_server

import (
	"github.com/go-playground/validator/v10"

	"github.com/natevvv/osm-delivery-routing/pkg/dataset"
)

var validate = validator.New()

// SolutionRequest describes a delivery set to solve. Omitted optional values are taken from the server configuration.
type SolutionRequest struct {
	Origin        *int   `json:"origin,omitempty" validate:"omitempty,gte=0"`
	Deliveries    []int  `json:"deliveries" validate:"min=1,dive,gte=0"`
	K             int    `json:"k,omitempty" validate:"omitempty,gte=1"`
	Seed          *int64 `json:"seed,omitempty"`
	MaxIterations int    `json:"maxIterations,omitempty" validate:"omitempty,gte=1"`
	Mode          string `json:"mode,omitempty" validate:"omitempty,oneof=astar dijkstra"`
}

// Solution is the body of a solved request, the same document as solution.json
type Solution = dataset.SolutionDocument

// AssertSolutionRequestRequired checks if the required fields are not zero-ed
func AssertSolutionRequestRequired(obj SolutionRequest) error {
	elements := map[string]interface{}{
		"deliveries": obj.Deliveries,
	}
	for name, el := range elements {
		if isZero := IsZeroValue(el); isZero {
			return &RequiredError{Field: name}
		}
	}
	return validateRequest(obj)
}

func validateRequest(obj interface{}) error {
	if err := validate.Struct(obj); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}
