package openapi_server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/natevvv/osm-delivery-routing/pkg/solver"
)

// Metrics holds the Prometheus collectors of the api.
// Every instance has its own registry. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Solver metrics
	SolveDuration    prometheus.Histogram
	SolvedClusters   prometheus.Counter
	UnreachableStops prometheus.Counter
	StoredSolutions  prometheus.Gauge

	// Route query metrics
	SearchPops prometheus.Counter
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		SolveDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "solve_duration_seconds",
				Help:      "Duration of clustering and routing a delivery set",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
			},
		),
		SolvedClusters: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "solved_clusters_total",
				Help:      "Total number of non-empty clusters which got a route",
			},
		),
		UnreachableStops: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "unreachable_stops_total",
				Help:      "Total number of deliveries which could not be reached from the origin",
			},
		),
		StoredSolutions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "stored_solutions",
				Help:      "Number of solutions which can be fetched by id",
			},
		),
		SearchPops: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_pq_pops_total",
				Help:      "Total number of priority queue pops of route queries",
			},
		),
	}
	m.registry.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.SolveDuration,
		m.SolvedClusters,
		m.UnreachableStops,
		m.StoredSolutions,
		m.SearchPops,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) observeSolution(s *solver.Solution) {
	if m == nil {
		return
	}
	m.SolveDuration.Observe(s.Duration.Seconds())
	m.SolvedClusters.Add(float64(len(s.Clusters)))
	for _, cs := range s.Clusters {
		m.UnreachableStops.Add(float64(len(cs.Route.Unreachable)))
	}
}

func (m *Metrics) setStoredSolutions(n int) {
	if m == nil {
		return
	}
	m.StoredSolutions.Set(float64(n))
}

func (m *Metrics) addSearchPops(n int) {
	if m == nil {
		return
	}
	m.SearchPops.Add(float64(n))
}
