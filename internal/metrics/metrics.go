package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "a5grid_http_requests_total",
		Help: "Total HTTP requests by route and status",
	}, []string{"method", "route", "status"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "a5grid_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"method", "route"})
	CellsEncodedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "a5grid_cells_encoded_total",
		Help: "Points encoded to cells by resolution",
	}, []string{"resolution"})
	CellsExpandedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "a5grid_cells_expanded_total",
		Help: "Cells produced by uncompact and children queries",
	})
	BoundaryCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "a5grid_boundary_cache_hits_total",
		Help: "Boundary cache hits",
	})
	BoundaryCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "a5grid_boundary_cache_misses_total",
		Help: "Boundary cache misses",
	})
	PointsIngestedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "a5grid_points_ingested_total",
		Help: "Points aggregated into stored cell counts",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(CellsEncodedTotal)
	prometheus.MustRegister(CellsExpandedTotal)
	prometheus.MustRegister(BoundaryCacheHitsTotal)
	prometheus.MustRegister(BoundaryCacheMissesTotal)
	prometheus.MustRegister(PointsIngestedTotal)
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
