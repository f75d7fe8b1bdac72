package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Count of key-value and relational store operations.",
	}, []string{"backend", "operation", "status"})
	storeOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of store operations.",
		Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"backend", "operation", "status"})
)

// Store tracks operations of one storage backend, e.g. postgres or redis.
type Store struct {
	backend string
}

func NewStore(backend string) *Store {
	return &Store{backend: orUnknown(backend)}
}

func (m Store) Observe(operation string, err error, started time.Time) {
	s := status(err)
	storeOperationsTotal.WithLabelValues(m.backend, operation, s).Inc()
	storeOperationDuration.WithLabelValues(m.backend, operation, s).Observe(time.Since(started).Seconds())
}
