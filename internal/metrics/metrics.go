package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "livemaze_generations_published_total",
		Help: "Total number of maze generations published, labelled by algorithm.",
	}, []string{"algorithm"})

	CarveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "livemaze_carve_duration_seconds",
		Help:    "Time spent building, carving and validating one generation.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"algorithm"})

	ValidationRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "livemaze_validation_retries_total",
		Help: "Total number of carves that failed validation and were reset.",
	})

	CarvesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "livemaze_carves_rejected_total",
		Help: "Total number of carve requests rejected because one was already in flight.",
	})

	OpenEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "livemaze_open_edges",
		Help: "Open (carved) edges in the published generation.",
	})

	ErosionSetSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "livemaze_erosion_set_size",
		Help: "Edges that stayed walls across the last two generations.",
	})

	TransitionsTriggered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "livemaze_transitions_triggered_total",
		Help: "Total number of wall transition effects triggered, labelled by kind.",
	}, []string{"kind"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "livemaze_http_requests_total",
		Help: "Total number of HTTP requests, labelled by method, path and status.",
	}, []string{"method", "path", "status"})
)
