package openapi_server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/natevvv/osm-delivery-routing/pkg/cluster"
	"github.com/natevvv/osm-delivery-routing/pkg/dataset"
	"github.com/natevvv/osm-delivery-routing/pkg/geometry"
	"github.com/natevvv/osm-delivery-routing/pkg/route"
	"github.com/natevvv/osm-delivery-routing/pkg/routing"
	"github.com/natevvv/osm-delivery-routing/pkg/solver"
)

// ServiceConfig holds the values which are used when a request leaves them out
type ServiceConfig struct {
	Defaults         solver.Config
	SolveTimeout     time.Duration // no timeout if 0
	MaxStoredResults int
}

// DefaultApiService is a service that implements the logic for the DefaultApiServicer
// This service should implement the business logic for every endpoint for the DefaultApi API.
// Include any external packages or services that will be required by this service.
type DefaultApiService struct {
	solver  *solver.Solver
	router  *routing.Router
	store   *SolutionStore
	config  ServiceConfig
	metrics *Metrics
	logger  *zap.Logger
}

// NewDefaultApiService creates a default api service.
// Route queries use the solver's graph with the navigator of the default search mode.
func NewDefaultApiService(s *solver.Solver, config ServiceConfig, metrics *Metrics, logger *zap.Logger) (DefaultApiServicer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	router, err := routing.NewRouter(s.Graph(), s.Coordinates(), config.Defaults.Mode, logger)
	if err != nil {
		return nil, err
	}
	return &DefaultApiService{
		solver:  s,
		router:  router,
		store:   NewSolutionStore(config.MaxStoredResults),
		config:  config,
		metrics: metrics,
		logger:  logger,
	}, nil
}

// CreateSolution - Cluster and route a set of deliveries
func (s *DefaultApiService) CreateSolution(ctx context.Context, solutionRequest SolutionRequest) (ImplResponse, error) {
	config := s.config.Defaults
	if solutionRequest.Origin != nil {
		config.Origin = *solutionRequest.Origin
	}
	if solutionRequest.K > 0 {
		config.K = solutionRequest.K
	}
	if solutionRequest.Seed != nil {
		config.Seed = *solutionRequest.Seed
	}
	if solutionRequest.MaxIterations > 0 {
		config.MaxIterations = solutionRequest.MaxIterations
	}
	if solutionRequest.Mode != "" {
		mode, err := route.ParseSearchMode(solutionRequest.Mode)
		if err != nil {
			return Response(http.StatusBadRequest, nil), err
		}
		config.Mode = mode
	}

	if s.config.SolveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.SolveTimeout)
		defer cancel()
	}

	solution, err := s.solver.Solve(ctx, solutionRequest.Deliveries, config)
	if err != nil {
		return Response(errorCode(err), nil), err
	}
	s.metrics.observeSolution(solution)

	document := dataset.NewSolutionDocument(solution)
	s.metrics.setStoredSolutions(s.store.Put(solution.Id, document))
	s.logger.Info("stored solution", zap.String("id", document.Id), zap.Int("clusters", len(document.ClusterSolutions)))

	return Response(http.StatusCreated, document), nil
}

// GetSolution - Fetch a previously computed solution
func (s *DefaultApiService) GetSolution(ctx context.Context, solutionId string) (ImplResponse, error) {
	id, err := uuid.Parse(solutionId)
	if err != nil {
		return Response(http.StatusBadRequest, nil), &ParsingError{Err: err}
	}
	document, ok := s.store.Get(id)
	if !ok {
		return Response(http.StatusNotFound, nil), fmt.Errorf("solution %s not found", id)
	}
	return Response(http.StatusOK, document), nil
}

// ComputeRoute - Compute a new route
func (s *DefaultApiService) ComputeRoute(ctx context.Context, routeRequest RouteRequest) (ImplResponse, error) {
	r, err := s.router.ComputeRoute(ctx, *routeRequest.Origin, *routeRequest.Destination)
	if err != nil {
		return Response(errorCode(err), nil), err
	}
	s.metrics.addSearchPops(r.PqPops)

	routeResult := RouteResult{Origin: r.Origin, Destination: r.Destination, Path: []int{}, Waypoints: []Point{}}
	if r.Exists {
		cost := r.Length
		routeResult.Reachable = true
		routeResult.Cost = &cost
		routeResult.Path = r.Path
		routeResult.Waypoints = newPoints(r.Waypoints)
	}
	return Response(http.StatusOK, routeResult), nil
}

// GetNodes returns every node which has a position
func (s *DefaultApiService) GetNodes(ctx context.Context) (ImplResponse, error) {
	ids := s.router.GetNodes()
	nodes := Nodes{Nodes: make([]Node, 0, len(ids))}
	for _, id := range ids {
		if p, ok := s.router.GetPosition(id); ok {
			nodes.Nodes = append(nodes.Nodes, Node{Id: id, X: p.X(), Y: p.Y()})
		}
	}
	return Response(http.StatusOK, nodes), nil
}

func (s *DefaultApiService) GetNearestNode(ctx context.Context, point Point) (ImplResponse, error) {
	id, ok := s.router.FindNearestNode(geometry.MakePoint(point.X, point.Y))
	if !ok {
		return Response(http.StatusNotFound, nil), errors.New("graph has no positioned nodes")
	}
	p, _ := s.router.GetPosition(id)
	return Response(http.StatusOK, Node{Id: id, X: p.X(), Y: p.Y()}), nil
}

func (s *DefaultApiService) GetSearchSpace(ctx context.Context) (ImplResponse, error) {
	return Response(http.StatusOK, SearchSpace{Waypoints: newPoints(s.router.GetSearchSpace())}), nil
}

func (s *DefaultApiService) SetNavigator(ctx context.Context, navigatorRequest NavigatorRequest) (ImplResponse, error) {
	mode, err := navigatorRequest.SearchMode()
	if err == nil {
		err = s.router.SetNavigator(mode)
	}
	if err != nil {
		return Response(http.StatusBadRequest, ErrorResponse{Message: "Unknown Navigator"}), nil
	}
	return Response(http.StatusOK, NavigatorRequest{Navigator: string(mode)}), nil
}

// Map an error of the solver or the router to its status code
func errorCode(err error) int {
	switch {
	case errors.Is(err, routing.ErrUnknownNode):
		return http.StatusNotFound
	case errors.Is(err, solver.ErrUnknownOrigin),
		errors.Is(err, geometry.ErrMissingCoordinate),
		errors.Is(err, cluster.ErrInvalidClusterCount),
		errors.Is(err, cluster.ErrInvalidIterations):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
