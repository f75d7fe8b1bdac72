package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	peerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "peer_transport",
		Name:      "requests_total",
		Help:      "Count of requests sent to peers.",
	}, []string{"operation", "status"})
	peerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "peer_transport",
		Name:      "request_duration_seconds",
		Help:      "Latency of requests sent to peers.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
	}, []string{"operation", "status"})
)

// PeerTransport tracks discovery, challenge and benchmark requests.
type PeerTransport struct{}

func NewPeerTransport() *PeerTransport {
	return &PeerTransport{}
}

// Observe records a peer request outcome and its latency.
func (m PeerTransport) Observe(operation string, err error, started time.Time) {
	s := status(err)
	peerRequestsTotal.WithLabelValues(operation, s).Inc()
	peerRequestDuration.WithLabelValues(operation, s).Observe(time.Since(started).Seconds())
}
