// Package indexer runs the resumable block indexing loop.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/graph"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
	"go.uber.org/zap"
)

// Config tunes the loop. Zero values fall back to defaults.
type Config struct {
	Network        model.Network
	Direction      Direction
	StartHeight    uint64
	EndHeight      uint64
	Lag            uint64
	FloodThreshold int
	FloodDelay     time.Duration
	CommitBackoff  time.Duration
	RestartDelay   time.Duration
	PollInterval   time.Duration
	CommitTimeout  time.Duration
}

func (c Config) withDefaults() Config {
	if c.Direction == "" {
		c.Direction = Forward
	}
	if c.Lag == 0 {
		c.Lag = defaultLag
	}
	if c.EndHeight == 0 {
		c.EndHeight = defaultFloor
	}
	if c.FloodThreshold == 0 {
		c.FloodThreshold = defaultFloodThreshold
	}
	if c.FloodDelay == 0 {
		c.FloodDelay = defaultFloodDelay
	}
	if c.CommitBackoff == 0 {
		c.CommitBackoff = defaultCommitBackoff
	}
	if c.RestartDelay == 0 {
		c.RestartDelay = defaultRestartDelay
	}
	if c.PollInterval == 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.CommitTimeout == 0 {
		c.CommitTimeout = defaultCommitTimeout
	}
	return c
}

// Service indexes blocks from a source into a graph sink.
type Service struct {
	logger      *zap.Logger
	cfg         Config
	source      BlockSource
	sink        GraphSink
	metrics     Metrics
	build       func(*model.Block) (*graph.BlockGraph, error)
	sleep       func(context.Context, time.Duration) error
	blockSignal <-chan struct{}

	state          *IndexingState
	phase          Phase
	backwardCursor uint64
}

// NewService builds a Service. blockSignal may be nil, in which case the loop polls.
func NewService(
	source BlockSource,
	sink GraphSink,
	metrics Metrics,
	cfg Config,
	logger *zap.Logger,
	blockSignal <-chan struct{},
) (*Service, error) {
	if source == nil {
		return nil, errors.New("block source is required")
	}
	if sink == nil {
		return nil, errors.New("graph sink is required")
	}
	if metrics == nil {
		return nil, errors.New("indexer metrics is required")
	}
	cfg = cfg.withDefaults()
	if cfg.Direction != Forward && cfg.Direction != Backward {
		return nil, fmt.Errorf("unknown direction %q", cfg.Direction)
	}
	if cfg.Direction == Backward && cfg.StartHeight != 0 && cfg.StartHeight < cfg.EndHeight {
		return nil, fmt.Errorf("start height %d is below floor %d", cfg.StartHeight, cfg.EndHeight)
	}

	return &Service{
		logger: logger.With(
			zap.String("network", string(cfg.Network)),
			zap.String("direction", string(cfg.Direction)),
		),
		cfg:         cfg,
		source:      source,
		sink:        sink,
		metrics:     metrics,
		build:       graph.Build,
		sleep:       clock.SleepWithContext,
		blockSignal: blockSignal,
	}, nil
}

// State returns the coverage derived by the latest iteration.
func (s *Service) State() *IndexingState {
	return s.state
}

// Run indexes until the context is canceled or a backward sweep reaches its floor.
// Failed iterations are retried forever after RestartDelay.
func (s *Service) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			s.setPhase(PhaseShuttingDown)
			return ctx.Err()
		}
		err := s.run(ctx)
		if err == nil {
			s.logger.Info("indexing sweep finished")
			return nil
		}
		if ctx.Err() != nil {
			s.setPhase(PhaseShuttingDown)
			return ctx.Err()
		}
		s.metrics.ObserveRestart(err)
		s.logger.Warn("run iteration failed, backing off", zap.Error(err), zap.Duration("sleep", s.cfg.RestartDelay))
		if sleepErr := s.sleep(ctx, s.cfg.RestartDelay); sleepErr != nil {
			s.setPhase(PhaseShuttingDown)
			return sleepErr
		}
	}
}

func (s *Service) run(ctx context.Context) error {
	s.setPhase(PhaseCatchingUp)
	state, tip, err := s.restoreState(ctx)
	if err != nil {
		return err
	}
	s.state = state
	s.metrics.ObserveIndexed(state.TotalIndexed())
	s.logger.Info("indexing state restored",
		zap.Uint64("tip", tip),
		zap.Int("ranges", len(state.indexedRanges)),
		zap.Int("unindexed", len(state.unindexed)),
		zap.Uint64("total_indexed", state.TotalIndexed()),
	)

	if s.cfg.Direction == Backward {
		return s.backward(ctx, state, tip)
	}
	return s.forward(ctx, state)
}

// restoreState re-reads coverage from the sink so a restart never trusts memory.
func (s *Service) restoreState(ctx context.Context) (*IndexingState, uint64, error) {
	tip, err := s.source.LatestHeight(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("latest height: %w", err)
	}
	ranges, err := s.sink.IndexedRanges(ctx, s.cfg.Network)
	if err != nil {
		return nil, 0, fmt.Errorf("indexed ranges: %w", err)
	}
	return NewIndexingState(ranges, tip), tip, nil
}

func (s *Service) forward(ctx context.Context, state *IndexingState) error {
	for {
		s.setPhase(PhaseCatchingUp)
		tip, err := s.source.LatestHeight(ctx)
		if err != nil {
			return fmt.Errorf("latest height: %w", err)
		}
		state.Observe(tip)

		target := safeHeight(tip, s.cfg.Lag)
		processed := 0
		for {
			height, ok := state.NextUnindexed(target)
			if !ok {
				break
			}
			if err := s.processHeight(ctx, state, height); err != nil {
				return err
			}
			processed++
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		if processed == 0 {
			s.setPhase(PhaseWaitingForChain)
			s.logger.Debug("no heights below safe tip; waiting",
				zap.Uint64("tip", tip),
				zap.Uint64("safe_height", target),
				zap.Duration("poll", s.cfg.PollInterval),
			)
			if err := s.wait(ctx, s.cfg.PollInterval); err != nil {
				return err
			}
		}
	}
}

func (s *Service) backward(ctx context.Context, state *IndexingState, tip uint64) error {
	start := s.cfg.StartHeight
	if start == 0 {
		start = safeHeight(tip, s.cfg.Lag)
	}
	if s.backwardCursor != 0 && s.backwardCursor < start {
		start = s.backwardCursor
	}

	for height := start; height >= s.cfg.EndHeight && height > 0; height-- {
		s.backwardCursor = height
		if err := s.processHeight(ctx, state, height); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) processHeight(ctx context.Context, state *IndexingState, height uint64) error {
	s.setPhase(PhaseProcessingBlock)
	for {
		started := time.Now()
		txCount, err := s.indexBlock(ctx, height)
		s.metrics.ObserveProcessHeight(err, height, started)
		if err == nil {
			state.MarkIndexed(height)
			s.metrics.ObserveIndexed(state.TotalIndexed())
			if txCount > s.cfg.FloodThreshold {
				s.logger.Debug("flood threshold exceeded; delaying",
					zap.Uint64("height", height),
					zap.Int("transactions", txCount),
					zap.Duration("delay", s.cfg.FloodDelay),
				)
				return s.sleep(ctx, s.cfg.FloodDelay)
			}
			return nil
		}
		if !errors.Is(err, ErrCommitRejected) {
			return err
		}

		s.logger.Warn("block commit failed; retrying height",
			zap.Uint64("height", height),
			zap.Error(err),
			zap.Duration("backoff", s.cfg.CommitBackoff),
		)
		if sleepErr := s.sleep(ctx, s.cfg.CommitBackoff); sleepErr != nil {
			return sleepErr
		}
	}
}

func (s *Service) indexBlock(ctx context.Context, height uint64) (int, error) {
	block, err := s.source.FetchBlock(ctx, height)
	if err != nil {
		return 0, fmt.Errorf("fetch block %d: %w", height, err)
	}
	g, err := s.build(block)
	if err != nil {
		return 0, fmt.Errorf("build graph for block %d: %w", height, err)
	}

	// The commit outlives cancellation so shutdown never lands mid-commit.
	commitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.CommitTimeout)
	defer cancel()
	if err := s.sink.CommitBlock(commitCtx, g); err != nil {
		return 0, fmt.Errorf("commit block %d: %w", height, err)
	}
	return g.TxCount(), nil
}

func (s *Service) wait(ctx context.Context, d time.Duration) error {
	if s.blockSignal == nil {
		return s.sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.blockSignal:
		return nil
	case <-timer.C:
		return nil
	}
}

func (s *Service) setPhase(phase Phase) {
	if s.phase != phase {
		s.logger.Debug("phase transition", zap.Stringer("from", s.phase), zap.Stringer("to", phase))
		s.phase = phase
	}
	s.metrics.ObservePhase(phase)
}

func safeHeight(tip, lag uint64) uint64 {
	if tip <= lag {
		return 0
	}
	return tip - lag
}
