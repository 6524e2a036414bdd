// SPDX-License-Identifier: MIT

package openapi_server

import "github.com/natevvv/osm-delivery-routing/pkg/route"

// NavigatorRequest selects the search of the following route queries
type NavigatorRequest struct {
	Navigator string `json:"navigator"`
}

// AssertNavigatorRequestRequired checks if the required fields are not zero-ed
func AssertNavigatorRequestRequired(obj NavigatorRequest) error {
	if IsZeroValue(obj.Navigator) {
		return &RequiredError{Field: "navigator"}
	}
	return nil
}

// SearchMode returns the requested search, an unknown navigator is an error
func (obj NavigatorRequest) SearchMode() (route.SearchMode, error) {
	return route.ParseSearchMode(obj.Navigator)
}
