package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/indexer"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

var (
	indexerPhase = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer",
		Name:      "phase",
		Help:      "Current phase of the indexing loop, 1 for the active phase.",
	}, []string{"network", "phase"})

	indexerProcessHeightTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer",
		Name:      "process_height_total",
		Help:      "Count of processed block heights.",
	}, []string{"network", "status"})

	indexerProcessHeightDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer",
		Name:      "process_height_duration_seconds",
		Help:      "Duration of fetching, transforming and committing one block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	indexerLastHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer",
		Name:      "last_processed_height",
		Help:      "Last height committed by the indexer.",
	}, []string{"network"})

	indexerRestartsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer",
		Name:      "restarts_total",
		Help:      "Count of resumptions from persisted indexed ranges.",
	}, []string{"network", "status"})

	indexerIndexedBlocks = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer",
		Name:      "indexed_blocks",
		Help:      "Number of heights covered by indexed ranges.",
	}, []string{"network"})
)

// Indexer tracks metrics for the resumable indexing loop of one network.
type Indexer struct {
	network string
}

// NewIndexer constructs an Indexer collector.
func NewIndexer(network model.Network) *Indexer {
	return &Indexer{network: orUnknown(network)}
}

// ObservePhase marks phase as the active one.
func (m Indexer) ObservePhase(phase indexer.Phase) {
	for _, p := range indexer.Phases {
		v := 0.0
		if p == phase {
			v = 1
		}
		indexerPhase.WithLabelValues(m.network, p.String()).Set(v)
	}
}

func (m Indexer) ObserveProcessHeight(err error, height uint64, started time.Time) {
	s := status(err)
	indexerProcessHeightTotal.WithLabelValues(m.network, s).Inc()
	indexerProcessHeightDuration.WithLabelValues(m.network, s).Observe(time.Since(started).Seconds())
	if err == nil {
		indexerLastHeight.WithLabelValues(m.network).Set(float64(height))
	}
}

func (m Indexer) ObserveRestart(err error) {
	indexerRestartsTotal.WithLabelValues(m.network, status(err)).Inc()
}

func (m Indexer) ObserveIndexed(total uint64) {
	indexerIndexedBlocks.WithLabelValues(m.network).Set(float64(total))
}
