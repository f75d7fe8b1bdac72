// Package reward folds the per round signals of a peer into one score.
package reward

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/benchmark"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/challenge"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/uptime"
)

const (
	DefaultTrustDivisor = 4
	// MinTipDistance is how far behind the chain tip a claimed end must be.
	MinTipDistance = 6
)

// Transition is the uptime change a decision implies.
type Transition int

const (
	NoTransition Transition = iota
	MarkUp
	MarkDown
)

// Signals are everything the round learned about one peer.
type Signals struct {
	Claim model.PeerClaim
	// TransportErr is set when discovery failed, timed out or returned a non 200 status.
	TransportErr error
	// DiscoveryErr is set when the discovery claim is structurally invalid.
	DiscoveryErr  error
	MetadataOK    bool
	CurrentHeight uint64
	Challenge     challenge.Outcome
	Benchmark     benchmark.Result

	MinLatency          time.Duration
	MaxLatency          time.Duration
	NetworkDistribution map[model.Network]int
	WorstEndHeight      uint64
}

// Decision is the outcome for one peer. Excluded peers get no reward and no transition.
type Decision struct {
	Score      float64
	Exclude    bool
	Transition Transition
	Reason     string
}

// Aggregator applies the reward gates in order.
type Aggregator struct {
	uptime  Uptime
	scorer  Scorer
	divisor float64
	logger  *zap.Logger
}

// NewAggregator constructs an Aggregator. A non positive divisor uses DefaultTrustDivisor.
func NewAggregator(uptime Uptime, scorer Scorer, divisor float64, logger *zap.Logger) (*Aggregator, error) {
	if uptime == nil {
		return nil, errors.New("reward uptime source is required")
	}
	if scorer == nil {
		return nil, errors.New("reward scorer is required")
	}
	if divisor <= 0 {
		divisor = DefaultTrustDivisor
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{uptime: uptime, scorer: scorer, divisor: divisor, logger: logger.Named("reward")}, nil
}

// Calculate returns the decision for one peer. An error means the uptime
// store failed and the peer should be skipped this round.
func (a *Aggregator) Calculate(ctx context.Context, s Signals) (Decision, error) {
	d := a.gate(s)
	logger := a.logger.With(
		zap.String("hotkey", s.Claim.Peer.Hotkey),
		zap.Uint16("uid", s.Claim.Peer.UID),
		zap.String("ip", s.Claim.Peer.IP))
	if d != nil {
		logger.Info("reward failed", zap.String("reason", d.Reason), zap.Float64("score", d.Score), zap.Bool("exclude", d.Exclude))
		return *d, nil
	}

	// The average excludes this round; the caller records MarkUp afterwards.
	avg, err := a.uptimeAverage(ctx, s.Claim.Peer.Hotkey)
	if err != nil {
		return Decision{}, err
	}
	score := a.scorer.Score(ScoreInput{
		Network:             s.Claim.Network,
		ResponseTime:        s.Benchmark.Latency,
		MinLatency:          s.MinLatency,
		MaxLatency:          s.MaxLatency,
		StartHeight:         s.Claim.StartHeight,
		EndHeight:           s.Claim.EndHeight,
		CurrentHeight:       s.CurrentHeight,
		NetworkDistribution: s.NetworkDistribution,
		UptimeAverage:       avg,
		WorstEndHeight:      s.WorstEndHeight,
	})
	logger.Info("score calculated",
		zap.Duration("response_time", s.Benchmark.Latency),
		zap.Uint64("start_height", s.Claim.StartHeight),
		zap.Uint64("end_height", s.Claim.EndHeight),
		zap.Uint64("current_height", s.CurrentHeight),
		zap.Float64("uptime_avg", avg),
		zap.Float64("score", score))
	return Decision{Score: score, Transition: MarkUp, Reason: "scored"}, nil
}

// Eligible reports whether the peer passes the gates that precede the
// challenge, so the round only challenges peers whose outcome can matter.
func (a *Aggregator) Eligible(s Signals) bool {
	return a.preChallenge(s) == nil
}

func (a *Aggregator) gate(s Signals) *Decision {
	if d := a.preChallenge(s); d != nil {
		return d
	}
	return a.postChallenge(s)
}

func (a *Aggregator) preChallenge(s Signals) *Decision {
	switch {
	case s.TransportErr != nil:
		return &Decision{Score: s.Claim.Peer.Trust / a.divisor, Transition: MarkDown, Reason: "transport_failure"}
	case s.DiscoveryErr != nil:
		return &Decision{Transition: MarkDown, Reason: "invalid_discovery"}
	case !s.MetadataOK:
		return &Decision{Transition: MarkDown, Reason: "metadata_invalid"}
	case s.Claim.EndHeight > s.CurrentHeight || s.CurrentHeight-s.Claim.EndHeight < MinTipDistance:
		return &Decision{Reason: "block_height_invalid"}
	}
	return nil
}

func (a *Aggregator) postChallenge(s Signals) *Decision {
	switch {
	case s.Challenge == challenge.Undetermined:
		return &Decision{Exclude: true, Reason: "challenge_undetermined"}
	case s.Challenge == challenge.Failed:
		return &Decision{Transition: MarkDown, Reason: "challenge_failed"}
	case s.Benchmark.Verdict == benchmark.Undetermined:
		return &Decision{Score: s.Claim.Peer.Trust / a.divisor, Transition: MarkDown, Reason: "benchmark_undetermined"}
	case s.Benchmark.Verdict == benchmark.Disagreed:
		return &Decision{Transition: MarkDown, Reason: "benchmark_failed"}
	}
	return nil
}

// uptimeAverage treats a peer without a record as freshly registered, which
// puts it inside the immunity grace.
func (a *Aggregator) uptimeAverage(ctx context.Context, hotkey string) (float64, error) {
	scores, err := a.uptime.UptimeScores(ctx, hotkey)
	if errors.Is(err, uptime.ErrNotFound) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("uptime of %s: %w", hotkey, err)
	}
	return scores.Average, nil
}
