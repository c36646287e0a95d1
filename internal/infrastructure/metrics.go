package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics exposed on /metrics. Registered once on the default
// registry; the load metrics are set by the loader, the request metrics by
// the HTTP middleware.
var (
	DatasetRows = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "shoplens",
		Subsystem: "dataset",
		Name:      "rows",
		Help:      "Number of rows in the cleaned, joined dataset.",
	})

	DroppedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shoplens",
		Subsystem: "dataset",
		Name:      "dropped_rows_total",
		Help:      "Rows dropped during load, by reason.",
	}, []string{"reason"})

	LoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "shoplens",
		Subsystem: "dataset",
		Name:      "load_duration_seconds",
		Help:      "Wall time of the load-clean-join pipeline.",
		Buckets:   prometheus.DefBuckets,
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shoplens",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by method, path and status.",
	}, []string{"method", "path", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "shoplens",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, by path.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"path"})
)
