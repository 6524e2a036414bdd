// SPDX-License-Identifier: MIT

package openapi_server

type RouteRequest struct {
	Origin      *int `json:"origin" validate:"required,gte=0"`
	Destination *int `json:"destination" validate:"required,gte=0"`
}

// AssertRouteRequestRequired checks if the required fields are not zero-ed
func AssertRouteRequestRequired(obj RouteRequest) error {
	elements := map[string]interface{}{
		"origin":      obj.Origin,
		"destination": obj.Destination,
	}
	for name, el := range elements {
		if isZero := IsZeroValue(el); isZero {
			return &RequiredError{Field: name}
		}
	}
	return validateRequest(obj)
}
