package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	validatorRoundsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "validator",
		Name:      "rounds_total",
		Help:      "Count of scoring rounds.",
	}, []string{"status"})

	validatorRoundDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "validator",
		Name:      "round_duration_seconds",
		Help:      "Duration of a scoring round.",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600, 1200},
	}, []string{"status"})

	validatorRoundPeers = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "validator",
		Name:      "round_sampled_peers",
		Help:      "Number of peers sampled per round.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})

	validatorDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "validator",
		Name:      "decisions_total",
		Help:      "Count of per-peer reward decisions by reason.",
	}, []string{"reason"})
)

// Validator tracks scoring rounds.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ObserveRound records a round outcome, its duration and batch size.
func (m Validator) ObserveRound(err error, sampled int, started time.Time) {
	s := status(err)
	validatorRoundsTotal.WithLabelValues(s).Inc()
	validatorRoundDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
	validatorRoundPeers.Observe(float64(sampled))
}

func (m Validator) ObserveDecision(reason string) {
	validatorDecisionsTotal.WithLabelValues(orUnknown(reason)).Inc()
}
