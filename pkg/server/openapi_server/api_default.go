package openapi_server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

// DefaultApiController binds http requests to an api service and writes the service results to the http response
type DefaultApiController struct {
	service      DefaultApiServicer
	errorHandler ErrorHandler
}

// DefaultApiOption for how the controller is set up.
type DefaultApiOption func(*DefaultApiController)

// WithDefaultApiErrorHandler inject ErrorHandler into controller
func WithDefaultApiErrorHandler(h ErrorHandler) DefaultApiOption {
	return func(c *DefaultApiController) {
		c.errorHandler = h
	}
}

// NewDefaultApiController creates a default api controller
func NewDefaultApiController(s DefaultApiServicer, opts ...DefaultApiOption) Router {
	controller := &DefaultApiController{
		service:      s,
		errorHandler: DefaultErrorHandler,
	}

	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

// Routes returns all of the api route for the DefaultApiController
func (c *DefaultApiController) Routes() Routes {
	return Routes{
		{
			"CreateSolution",
			strings.ToUpper("Post"),
			"/solutions",
			c.CreateSolution,
		},
		{
			"GetSolution",
			strings.ToUpper("Get"),
			"/solutions/{solutionId}",
			c.GetSolution,
		},
		{
			"ComputeRoute",
			strings.ToUpper("Post"),
			"/routes",
			c.ComputeRoute,
		},
		{
			"GetNodes",
			strings.ToUpper("Get"),
			"/nodes",
			c.GetNodes,
		},
		{
			"GetNearestNode",
			strings.ToUpper("Get"),
			"/nodes/nearest",
			c.GetNearestNode,
		},
		{
			"GetSearchSpace",
			strings.ToUpper("Get"),
			"/searchSpace",
			c.GetSearchSpace,
		},
		{
			"SetNavigator",
			strings.ToUpper("Post"),
			"/navigator",
			c.SetNavigator,
		},
	}
}

// CreateSolution - Cluster and route a set of deliveries
func (c *DefaultApiController) CreateSolution(w http.ResponseWriter, r *http.Request) {
	solutionRequestParam := SolutionRequest{}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&solutionRequestParam); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	if err := AssertSolutionRequestRequired(solutionRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.CreateSolution(r.Context(), solutionRequestParam)
	// If an error occurred, encode the error with the status code
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	// If no error, encode the body and the result code
	c.encode(w, result, "POST")
}

// GetSolution - Fetch a previously computed solution
func (c *DefaultApiController) GetSolution(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	solutionIdParam := params["solutionId"]
	result, err := c.service.GetSolution(r.Context(), solutionIdParam)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	c.encode(w, result, "GET")
}

// ComputeRoute - Compute a new route
func (c *DefaultApiController) ComputeRoute(w http.ResponseWriter, r *http.Request) {
	routeRequestParam := RouteRequest{}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&routeRequestParam); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	if err := AssertRouteRequestRequired(routeRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.ComputeRoute(r.Context(), routeRequestParam)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	c.encode(w, result, "POST")
}

func (c *DefaultApiController) GetNodes(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetNodes(r.Context())
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	c.encode(w, result, "GET")
}

// GetNearestNode - Find the node closest to the position given by the x and y query parameters
func (c *DefaultApiController) GetNearestNode(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	xParam, err := parseFloat64Parameter(query.Get("x"), true)
	if err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	yParam, err := parseFloat64Parameter(query.Get("y"), true)
	if err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	result, err := c.service.GetNearestNode(r.Context(), Point{X: xParam, Y: yParam})
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	c.encode(w, result, "GET")
}

func (c *DefaultApiController) GetSearchSpace(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetSearchSpace(r.Context())
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	c.encode(w, result, "GET")
}

func (c *DefaultApiController) SetNavigator(w http.ResponseWriter, r *http.Request) {
	navigatorRequestParam := NavigatorRequest{}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&navigatorRequestParam); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	if err := AssertNavigatorRequestRequired(navigatorRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.SetNavigator(r.Context(), navigatorRequestParam)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	c.encode(w, result, "POST")
}

func (c *DefaultApiController) encode(w http.ResponseWriter, result ImplResponse, method string) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", method)
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	EncodeJSONResponse(result.Body, &result.Code, w)
}

// parseFloat64Parameter parses a string parameter to a float64.
func parseFloat64Parameter(param string, required bool) (float64, error) {
	if param == "" {
		if required {
			return 0, &RequiredError{Field: "query parameter"}
		}
		return 0, nil
	}
	return strconv.ParseFloat(param, 64)
}
