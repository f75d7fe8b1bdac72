// Package validator orchestrates one scoring round over a batch of peers.
package validator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/challenge"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/registry"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/reward"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/transport/peer"
)

const (
	defaultBatchSize        = 16
	defaultDiscoveryTimeout = 10 * time.Second
	defaultMaxInstances     = 9
)

// Config tunes a round. Zero values fall back to defaults.
type Config struct {
	BatchSize        int
	DiscoveryTimeout time.Duration
	// MinSamples enables data sample checks when positive.
	MinSamples   int
	MaxInstances int
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize
	}
	if c.DiscoveryTimeout <= 0 {
		c.DiscoveryTimeout = defaultDiscoveryTimeout
	}
	if c.MaxInstances <= 0 {
		c.MaxInstances = defaultMaxInstances
	}
	return c
}

// Dependencies are the collaborators of a round.
type Dependencies struct {
	Directory  Directory
	Discoverer Discoverer
	Registry   MetadataSource
	Nodes      Nodes
	Challenger Challenger
	Benchmark  Benchmarker
	Rewarder   Rewarder
	Ledger     Ledger
	Scoreboard Scoreboard
	Audit      Audit
	Metrics    Metrics
}

func (d Dependencies) validate() error {
	switch {
	case d.Directory == nil:
		return errors.New("peer directory is required")
	case d.Discoverer == nil:
		return errors.New("discovery transport is required")
	case d.Registry == nil:
		return errors.New("registry is required")
	case d.Nodes == nil:
		return errors.New("chain nodes are required")
	case d.Challenger == nil:
		return errors.New("challenge protocol is required")
	case d.Benchmark == nil:
		return errors.New("benchmark engine is required")
	case d.Rewarder == nil:
		return errors.New("reward aggregator is required")
	case d.Ledger == nil:
		return errors.New("uptime ledger is required")
	case d.Scoreboard == nil:
		return errors.New("scoreboard is required")
	case d.Metrics == nil:
		return errors.New("validator metrics is required")
	}
	return nil
}

// Summary describes a committed round.
type Summary struct {
	RoundID  string
	Sampled  int
	Scored   int
	Excluded int
}

// Validator runs rounds. Rounds must not overlap.
type Validator struct {
	deps   Dependencies
	cfg    Config
	pool   pond.Pool
	logger *zap.Logger

	now     func() time.Time
	shuffle func(n int, swap func(i, j int))
	roundID func() string
}

// New constructs a Validator fanning peer calls out on pool.
func New(deps Dependencies, cfg Config, pool pond.Pool, logger *zap.Logger) (*Validator, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if pool == nil {
		return nil, errors.New("worker pool is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{
		deps:    deps,
		cfg:     cfg.withDefaults(),
		pool:    pool,
		logger:  logger.Named("validator"),
		now:     time.Now,
		shuffle: rand.Shuffle,
		roundID: uuid.NewString,
	}, nil
}

// peerState collects what the round learned about one sampled peer.
type peerState struct {
	signals reward.Signals
	node    chain.Node
	// skip names a failure on the validator side. Skipped peers are excluded.
	skip     string
	decision reward.Decision
}

func (s *peerState) info() model.PeerInfo {
	return s.signals.Claim.Peer
}

func (s *peerState) usable() bool {
	return s.skip == "" && s.signals.TransportErr == nil && s.signals.DiscoveryErr == nil
}

// RunRound scores one batch. Nothing is committed when ctx ends before every
// peer is decided.
func (v *Validator) RunRound(ctx context.Context) (summary Summary, err error) {
	started := v.now()
	summary.RoundID = v.roundID()
	logger := v.logger.With(zap.String("round_id", summary.RoundID))
	defer func() {
		v.deps.Metrics.ObserveRound(err, summary.Sampled, started)
	}()

	all, err := v.deps.Directory.Peers(ctx)
	if err != nil {
		return summary, fmt.Errorf("load peers: %w", err)
	}
	batch := v.sample(all)
	summary.Sampled = len(batch)
	if len(batch) == 0 {
		logger.Info("no serving peers to sample")
		return summary, nil
	}

	meta, err := v.deps.Registry.Build(ctx, all)
	if err != nil {
		return summary, fmt.Errorf("build peer metadata: %w", err)
	}

	states := make([]*peerState, len(batch))
	for i, p := range batch {
		states[i] = &peerState{signals: reward.Signals{Claim: model.PeerClaim{Peer: p}}}
	}

	if err := v.fanOut(ctx, states, func(ctx context.Context, s *peerState) { v.discover(ctx, s, meta) }); err != nil {
		return summary, err
	}
	v.applyChainTips(ctx, logger, states)

	eligible := make([]*peerState, 0, len(states))
	for _, s := range states {
		if s.usable() && v.deps.Rewarder.Eligible(s.signals) {
			eligible = append(eligible, s)
		}
	}
	if err := v.fanOut(ctx, eligible, func(ctx context.Context, s *peerState) {
		s.signals.Challenge = v.deps.Challenger.CrossValidate(ctx, s.node, s.signals.Claim)
	}); err != nil {
		return summary, err
	}
	if err := v.runBenchmarks(ctx, eligible); err != nil {
		return summary, err
	}

	for _, s := range states {
		v.decide(ctx, logger, s)
	}
	if err := ctx.Err(); err != nil {
		logger.Warn("round abandoned before commit", zap.Error(err))
		return summary, err
	}

	summary.Scored, summary.Excluded, err = v.commit(context.WithoutCancel(ctx), logger, summary.RoundID, states)
	if err != nil {
		return summary, err
	}
	logger.Info("round committed",
		zap.Int("sampled", summary.Sampled),
		zap.Int("scored", summary.Scored),
		zap.Int("excluded", summary.Excluded),
		zap.Duration("took", v.now().Sub(started)))
	return summary, nil
}

// sample picks up to BatchSize serving peers at random.
func (v *Validator) sample(all []model.PeerInfo) []model.PeerInfo {
	serving := make([]model.PeerInfo, 0, len(all))
	for _, p := range all {
		if p.Serving {
			serving = append(serving, p)
		}
	}
	v.shuffle(len(serving), func(i, j int) { serving[i], serving[j] = serving[j], serving[i] })
	if len(serving) > v.cfg.BatchSize {
		serving = serving[:v.cfg.BatchSize]
	}
	return serving
}

// fanOut runs fn for every state on the pool and waits for all of them. A
// panic in fn excludes that peer only.
func (v *Validator) fanOut(ctx context.Context, states []*peerState, fn func(context.Context, *peerState)) error {
	if len(states) == 0 {
		return nil
	}
	group := v.pool.NewGroupContext(ctx)
	for _, s := range states {
		group.Submit(func() {
			v.guard(s, func() { fn(ctx, s) })
		})
	}
	if err := group.Wait(); err != nil && !errors.Is(err, pond.ErrGroupStopped) {
		return err
	}
	return ctx.Err()
}

func (v *Validator) guard(s *peerState, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			p := s.info()
			v.logger.Error("peer evaluation panicked",
				zap.String("hotkey", p.Hotkey),
				zap.Uint16("uid", p.UID),
				zap.String("ip", p.IP),
				zap.Any("panic", r))
			s.skip = "panic"
		}
	}()
	fn()
}

func (v *Validator) discover(ctx context.Context, s *peerState, meta *registry.Metadata) {
	p := s.info()
	res, err := v.deps.Discoverer.Discovery(ctx, p, peer.DiscoveryRequest{MinSamples: v.cfg.MinSamples}, v.cfg.DiscoveryTimeout)
	if err != nil {
		s.signals.TransportErr = err
		return
	}

	claim, err := validateDiscovery(p, res, v.deps.Nodes.Supported)
	s.signals.Claim = claim
	if err != nil {
		s.signals.DiscoveryErr = err
		return
	}

	node, err := v.deps.Nodes.Node(claim.Network)
	if err != nil {
		v.logger.Error("chain node unavailable", zap.String("network", string(claim.Network)), zap.Error(err))
		s.skip = "node_unavailable"
		return
	}
	s.node = node

	if v.cfg.MinSamples > 0 {
		ok, err := node.ValidateSamples(ctx, res.Body.DataSamples, v.cfg.MinSamples)
		if err != nil {
			v.logger.Warn("data sample check failed", zap.String("hotkey", p.Hotkey), zap.Error(err))
			s.skip = "sample_check"
			return
		}
		if !ok {
			s.signals.DiscoveryErr = fmt.Errorf("%w: data samples rejected", ErrInvalidDiscovery)
			return
		}
	}

	if m, ok := meta.ForHotkey(p.Hotkey); ok && m.Network == claim.Network {
		s.signals.MetadataOK = meta.IsClaimWithinLimits(claim, v.cfg.MaxInstances)
	}
	s.signals.NetworkDistribution = meta.NetworkDistribution()
	s.signals.WorstEndHeight, _ = meta.WorstEndBlock(claim.Network)
}

// applyChainTips fetches each claimed network's tip once per round.
func (v *Validator) applyChainTips(ctx context.Context, logger *zap.Logger, states []*peerState) {
	byNetwork := make(map[model.Network][]*peerState)
	for _, s := range states {
		if s.usable() {
			byNetwork[s.signals.Claim.Network] = append(byNetwork[s.signals.Claim.Network], s)
		}
	}
	networks := make([]model.Network, 0, len(byNetwork))
	for network := range byNetwork {
		networks = append(networks, network)
	}
	sort.Slice(networks, func(i, j int) bool { return networks[i] < networks[j] })

	for _, network := range networks {
		members := byNetwork[network]
		tip, err := members[0].node.LatestHeight(ctx)
		if err != nil {
			logger.Error("chain tip unavailable", zap.String("network", string(network)), zap.Error(err))
		}
		for _, s := range members {
			if err != nil {
				s.skip = "chain_tip"
				continue
			}
			s.signals.CurrentHeight = tip
		}
	}
}

func (v *Validator) runBenchmarks(ctx context.Context, eligible []*peerState) error {
	claims := make([]model.PeerClaim, 0, len(eligible))
	passed := make([]*peerState, 0, len(eligible))
	for _, s := range eligible {
		if s.skip == "" && s.signals.Challenge == challenge.Passed {
			claims = append(claims, s.signals.Claim)
			passed = append(passed, s)
		}
	}
	if len(claims) == 0 {
		return nil
	}

	results, err := v.deps.Benchmark.Run(ctx, claims)
	if err != nil {
		return fmt.Errorf("run benchmarks: %w", err)
	}
	for _, s := range passed {
		s.signals.Benchmark = results.For(s.info().Hotkey)
		s.signals.MinLatency = results.MinLatency
		s.signals.MaxLatency = results.MaxLatency
	}
	return nil
}

func (v *Validator) decide(ctx context.Context, logger *zap.Logger, s *peerState) {
	if s.skip != "" {
		s.decision = reward.Decision{Exclude: true, Reason: s.skip}
		return
	}
	v.guard(s, func() {
		d, err := v.deps.Rewarder.Calculate(ctx, s.signals)
		if err != nil {
			p := s.info()
			logger.Error("reward failed",
				zap.String("hotkey", p.Hotkey),
				zap.Uint16("uid", p.UID),
				zap.String("ip", p.IP),
				zap.Error(err))
			s.skip = "storage_failure"
			return
		}
		s.decision = d
	})
	if s.skip != "" {
		s.decision = reward.Decision{Exclude: true, Reason: s.skip}
	}
}

// commit applies uptime transitions, then the scoreboard, then the audit trail.
func (v *Validator) commit(ctx context.Context, logger *zap.Logger, roundID string, states []*peerState) (scored, excluded int, err error) {
	now := v.now()
	results := make([]model.RewardResult, 0, len(states))
	for _, s := range states {
		p := s.info()
		d := s.decision
		if err := v.transition(ctx, p, d.Transition); err != nil {
			logger.Error("uptime update failed",
				zap.String("hotkey", p.Hotkey),
				zap.Uint16("uid", p.UID),
				zap.String("ip", p.IP),
				zap.Error(err))
			d = reward.Decision{Exclude: true, Reason: "storage_failure"}
		}
		v.deps.Metrics.ObserveDecision(d.Reason)

		result := model.RewardResult{Hotkey: p.Hotkey, UID: p.UID, Score: d.Score, Exclude: d.Exclude, Reason: d.Reason}
		results = append(results, result)
		if d.Exclude {
			excluded++
		} else {
			scored++
		}
		if v.deps.Audit != nil {
			if err := v.deps.Audit.Add(ctx, model.RewardAudit{RoundID: roundID, Result: result, CreatedAt: now}); err != nil {
				logger.Warn("reward audit dropped", zap.String("hotkey", p.Hotkey), zap.Error(err))
			}
		}
	}

	if _, err := v.deps.Scoreboard.Update(results); err != nil {
		return scored, excluded, fmt.Errorf("update scoreboard: %w", err)
	}
	return scored, excluded, nil
}

func (v *Validator) transition(ctx context.Context, p model.PeerInfo, t reward.Transition) error {
	switch t {
	case reward.MarkUp:
		return v.deps.Ledger.Up(ctx, p.UID, p.Hotkey)
	case reward.MarkDown:
		return v.deps.Ledger.Down(ctx, p.UID, p.Hotkey)
	}
	return nil
}
