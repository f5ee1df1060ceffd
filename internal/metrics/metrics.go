package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "experiment_tracker"

var (
	WarehouseQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "warehouse",
		Name:      "queries_total",
		Help:      "Warehouse queries executed, by operation and status.",
	}, []string{"op", "status"})

	WarehouseQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "warehouse",
		Name:      "query_duration_seconds",
		Help:      "Warehouse query latency.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"op"})

	RowsScanned = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rows_scanned_total",
		Help:      "Event rows folded into a response, by operation.",
	}, []string{"operation"})

	RowsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rows_skipped_total",
		Help:      "Event rows dropped before aggregation, by reason.",
	}, []string{"reason"})

	BlobDecodeFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blob_decode_fallbacks_total",
		Help:      "Bracket-wrapped cells that could not be parsed as a list and were kept whole.",
	}, []string{"column"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
