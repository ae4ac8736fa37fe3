package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DatasetRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "immo_dataset_rows",
			Help: "Number of listings in the loaded dataset",
		},
	)

	DatasetLoadFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "immo_dataset_load_failures_total",
			Help: "Number of times the dataset source could not be read",
		},
	)

	FilteredRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "immo_filtered_rows",
			Help:    "Rows remaining after applying a filter selection",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	EmptyResults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "immo_empty_results_total",
			Help: "Filter selections that matched no listing",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "immo_http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "immo_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"route"},
	)

	SnapshotsTaken = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "immo_snapshots_total",
			Help: "Dashboard snapshots by outcome",
		},
		[]string{"outcome"},
	)
)
