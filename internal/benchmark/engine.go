// Package benchmark scores peers by majority agreement on randomized queries
// issued to small groups.
package benchmark

import (
	"context"
	"errors"
	"math/rand/v2"
	"sort"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/puzpuzpuz/xsync/v4"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/transport/peer"
)

const (
	defaultChunkSize = 5
	maxJitter        = 100

	DefaultFundsFlowTolerance       uint64 = 500
	DefaultBalanceTrackingTolerance uint64 = 1000
	// minLatencySpread widens the latency range when all answers tie.
	minLatencySpread = 100 * time.Millisecond
)

// Verdict is a peer's benchmark outcome for a round.
type Verdict int

const (
	Undetermined Verdict = iota
	Agreed
	Disagreed
)

func (v Verdict) String() string {
	switch v {
	case Agreed:
		return "agreed"
	case Disagreed:
		return "disagreed"
	default:
		return "undetermined"
	}
}

// Result aggregates a peer's answers over all model types.
type Result struct {
	Verdict Verdict
	// Latency is the mean latency of every answered query. It only feeds
	// scoring when the verdict is Agreed, where all answers agree.
	Latency time.Duration
}

// Results holds the outcome of one benchmark run.
type Results struct {
	peers      map[string]Result
	MinLatency time.Duration
	MaxLatency time.Duration
}

// NewResults wraps per-hotkey results with the round's latency bounds.
func NewResults(peers map[string]Result, minLatency, maxLatency time.Duration) Results {
	return Results{peers: peers, MinLatency: minLatency, MaxLatency: maxLatency}
}

// For returns the result of hotkey; peers without answers are undetermined.
func (r Results) For(hotkey string) Result {
	return r.peers[hotkey]
}

// Config tunes the engine.
type Config struct {
	ChunkSize int
	// Tolerances are the per model type window sizes before jitter.
	FundsFlowTolerance       uint64
	BalanceTrackingTolerance uint64
	Timeout                  time.Duration
}

// Engine runs benchmarks.
type Engine struct {
	transport Transport
	pool      pond.Pool
	builder   *QueryBuilder
	strategy  Strategy
	cfg       Config
	randN     func(n uint64) uint64
	logger    *zap.Logger
}

// NewEngine constructs an Engine issuing peer queries on pool.
func NewEngine(transport Transport, pool pond.Pool, cfg Config, logger *zap.Logger) *Engine {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	if cfg.FundsFlowTolerance == 0 {
		cfg.FundsFlowTolerance = DefaultFundsFlowTolerance
	}
	if cfg.BalanceTrackingTolerance == 0 {
		cfg.BalanceTrackingTolerance = DefaultBalanceTrackingTolerance
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		transport: transport,
		pool:      pool,
		builder:   NewQueryBuilder(),
		strategy:  GroupResponses,
		cfg:       cfg,
		randN:     rand.Uint64N,
		logger:    logger.Named("benchmark"),
	}
}

type answer struct {
	ok      bool
	output  string
	latency time.Duration
}

type observation struct {
	matches bool
	latency time.Duration
}

type job struct {
	network   model.Network
	modelType model.ModelType
	members   []model.PeerClaim
	query     string
	answers   []answer
	pending   atomic.Int32
}

// Run benchmarks claims. A canceled context aborts the run.
func (e *Engine) Run(ctx context.Context, claims []model.PeerClaim) (Results, error) {
	jobs := e.jobs(e.strategy(claims, e.cfg.ChunkSize))

	observations := xsync.NewMap[string, []observation]()
	group := e.pool.NewGroupContext(ctx)
	for _, j := range jobs {
		j.answers = make([]answer, len(j.members))
		j.pending.Store(int32(len(j.members)))
		for i := range j.members {
			group.Submit(func() {
				j.answers[i] = e.ask(ctx, j, j.members[i])
				if j.pending.Add(-1) == 0 {
					e.settle(j, observations)
				}
			})
		}
	}
	if err := group.Wait(); err != nil && !errors.Is(err, pond.ErrGroupStopped) {
		return Results{}, err
	}
	if err := ctx.Err(); err != nil {
		return Results{}, err
	}

	return e.aggregate(claims, observations), nil
}

func (e *Engine) jobs(groups map[model.Network][]Group) []*job {
	networks := make([]model.Network, 0, len(groups))
	for network := range groups {
		networks = append(networks, network)
	}
	sort.Slice(networks, func(i, j int) bool { return networks[i] < networks[j] })

	var jobs []*job
	for _, network := range networks {
		for gi, g := range groups[network] {
			e.logger.Info("benchmark group",
				zap.String("network", string(network)),
				zap.Int("chunk", gi),
				zap.Uint64("start", g.CommonStart),
				zap.Uint64("end", g.CommonEnd),
				zap.Int("members", len(g.Members)))

			for _, modelType := range model.ModelTypes {
				members, start, end := window(g, modelType)
				if len(members) == 0 {
					continue
				}
				query, err := e.builder.Build(modelType, network, start, end, e.jitter(modelType))
				if err != nil {
					e.logger.Warn("build benchmark query", zap.String("network", string(network)), zap.Error(err))
					continue
				}
				jobs = append(jobs, &job{network: network, modelType: modelType, members: members, query: query})
			}
		}
	}
	return jobs
}

// window selects the members and heights a model type is benchmarked on.
func window(g Group, modelType model.ModelType) ([]model.PeerClaim, uint64, uint64) {
	if modelType != model.BalanceTracking {
		return g.Members, g.CommonStart, g.CommonEnd
	}
	if g.BalanceEnd == 0 {
		return nil, 0, 0
	}
	var members []model.PeerClaim
	var start uint64
	for _, m := range g.Members {
		if m.BalanceHeight == 0 {
			continue
		}
		if len(members) == 0 || m.StartHeight < start {
			start = m.StartHeight
		}
		members = append(members, m)
	}
	if start > g.BalanceEnd {
		return nil, 0, 0
	}
	return members, start, g.BalanceEnd
}

func (e *Engine) jitter(modelType model.ModelType) uint64 {
	tolerance := e.cfg.FundsFlowTolerance
	if modelType == model.BalanceTracking {
		tolerance = e.cfg.BalanceTrackingTolerance
	}
	r := e.randN(maxJitter + 1)
	if r >= tolerance {
		return 0
	}
	return tolerance - r
}

func (e *Engine) ask(ctx context.Context, j *job, claim model.PeerClaim) answer {
	res, err := e.transport.Benchmark(ctx, claim.Peer, peer.BenchmarkRequest{
		Network:   j.network,
		ModelType: j.modelType,
		Query:     j.query,
	}, e.cfg.Timeout)
	if err != nil {
		e.logger.Info("benchmark failed",
			zap.String("hotkey", claim.Peer.Hotkey),
			zap.Uint16("uid", claim.Peer.UID),
			zap.String("ip", claim.Peer.IP),
			zap.Error(err))
		return answer{}
	}
	if res.Body.Output == nil {
		return answer{}
	}
	return answer{ok: true, output: *res.Body.Output, latency: res.Latency}
}

// settle computes the majority answer of a job. Ties go to the answer seen
// first in member order. Fewer than two answers yield no consensus.
func (e *Engine) settle(j *job, observations *xsync.Map[string, []observation]) {
	counts := make(map[string]int)
	var order []string
	responders := 0
	for _, a := range j.answers {
		if !a.ok {
			continue
		}
		responders++
		if counts[a.output] == 0 {
			order = append(order, a.output)
		}
		counts[a.output]++
	}
	if responders < 2 {
		e.logger.Info("benchmark without consensus",
			zap.String("network", string(j.network)),
			zap.String("model_type", string(j.modelType)),
			zap.Int("responders", responders))
		return
	}

	majority := order[0]
	for _, output := range order[1:] {
		if counts[output] > counts[majority] {
			majority = output
		}
	}

	for i, a := range j.answers {
		if !a.ok {
			continue
		}
		obs := observation{matches: a.output == majority, latency: a.latency}
		observations.Compute(j.members[i].Peer.Hotkey, func(old []observation, _ bool) ([]observation, xsync.ComputeOp) {
			return append(old, obs), xsync.UpdateOp
		})
	}
}

func (e *Engine) aggregate(claims []model.PeerClaim, observations *xsync.Map[string, []observation]) Results {
	results := Results{peers: make(map[string]Result, len(claims))}
	first := true
	observations.Range(func(hotkey string, obs []observation) bool {
		var total time.Duration
		verdict := Agreed
		for _, o := range obs {
			if !o.matches {
				verdict = Disagreed
			}
			total += o.latency
			if first || o.latency < results.MinLatency {
				results.MinLatency = o.latency
			}
			if first || o.latency > results.MaxLatency {
				results.MaxLatency = o.latency
			}
			first = false
		}
		results.peers[hotkey] = Result{Verdict: verdict, Latency: total / time.Duration(len(obs))}
		return true
	})
	if results.MaxLatency == results.MinLatency {
		results.MaxLatency = results.MinLatency + minLatencySpread
	}
	return results
}
