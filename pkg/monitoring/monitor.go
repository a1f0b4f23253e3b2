package monitoring

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	OperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_operations_total",
			Help: "Total number of content delete/restore operations",
		},
		[]string{"entity", "operation", "outcome"},
	)

	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "content_operation_duration_seconds",
			Help:    "Duration of content delete/restore operations",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"entity", "operation"},
	)

	RowsAffected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_rows_affected_total",
			Help: "Rows tombstoned, restored or annotated by content operations",
		},
		[]string{"kind"},
	)
)

func Init() {
	for _, c := range []prometheus.Collector{OperationCounter, OperationDuration, RowsAffected} {
		if err := prometheus.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				panic(err)
			}
		}
	}
}

// ObserveOperation records one finished operation.
func ObserveOperation(entity, operation, outcome string, start time.Time) {
	OperationCounter.WithLabelValues(entity, operation, outcome).Inc()
	OperationDuration.WithLabelValues(entity, operation).Observe(time.Since(start).Seconds())
}

func AddRows(kind string, n int64) {
	if n > 0 {
		RowsAffected.WithLabelValues(kind).Add(float64(n))
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve exposes /metrics on addr until the returned server is shut down.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		_ = srv.ListenAndServe()
	}()
	return srv
}
