package reward

import (
	"math"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

// recencyFloor keeps the worst claimed end block from scoring zero recency.
const recencyFloor = 100

// ScoreInput is the scoring view of a peer that passed every gate.
type ScoreInput struct {
	Network             model.Network
	ResponseTime        time.Duration
	MinLatency          time.Duration
	MaxLatency          time.Duration
	StartHeight         uint64
	EndHeight           uint64
	CurrentHeight       uint64
	NetworkDistribution map[model.Network]int
	UptimeAverage       float64
	WorstEndHeight      uint64
}

// Weights of the five partial scores.
type Weights struct {
	ProcessTime float64
	BlockHeight float64
	Recency     float64
	Blockchain  float64
	Uptime      float64
}

// ScorerConfig tunes WeightedScorer.
type ScorerConfig struct {
	Weights Weights
	// Timeout is the benchmark timeout; slower answers score zero.
	Timeout time.Duration
	// Importance is the target share of each network. Unlisted networks use DefaultImportance.
	Importance        map[model.Network]float64
	DefaultImportance float64
	// MinBlocks is the coverage a network claim needs before it scores at all.
	MinBlocks map[model.Network]uint64
}

// DefaultScorerConfig returns equal weights with bitcoin as the favoured network.
func DefaultScorerConfig(timeout time.Duration) ScorerConfig {
	return ScorerConfig{
		Weights:           Weights{ProcessTime: 1, BlockHeight: 1, Recency: 1, Blockchain: 1, Uptime: 1},
		Timeout:           timeout,
		Importance:        map[model.Network]float64{model.Bitcoin: 0.9},
		DefaultImportance: 0.1,
	}
}

// WeightedScorer is the default Scorer.
type WeightedScorer struct {
	cfg ScorerConfig
}

func NewWeightedScorer(cfg ScorerConfig) *WeightedScorer {
	return &WeightedScorer{cfg: cfg}
}

func (w *WeightedScorer) Score(in ScoreInput) float64 {
	processTime := performanceScore(in.ResponseTime, in.MinLatency, in.MaxLatency, w.cfg.Timeout)
	blockHeight := blockHeightScore(in.StartHeight, in.EndHeight, in.CurrentHeight, w.cfg.MinBlocks[in.Network])
	recency := recencyScore(in.EndHeight, in.CurrentHeight, in.WorstEndHeight)
	if processTime == 0 || blockHeight == 0 || recency == 0 {
		return 0
	}
	blockchain := w.blockchainScore(in.Network, in.NetworkDistribution)

	weights := w.cfg.Weights
	total := processTime*weights.ProcessTime +
		blockHeight*weights.BlockHeight +
		recency*weights.Recency +
		blockchain*weights.Blockchain +
		in.UptimeAverage*weights.Uptime
	sum := weights.ProcessTime + weights.BlockHeight + weights.Recency + weights.Blockchain + weights.Uptime
	if sum <= 0 {
		return 0
	}
	return clamp(total / sum)
}

func performanceScore(t, best, worst, timeout time.Duration) float64 {
	if timeout > 0 && t >= timeout {
		return 0
	}
	if t <= best {
		return 1
	}
	if worst <= best {
		return 0.1
	}
	score := 0.1 + 0.9*float64(worst-t)/float64(worst-best)
	return math.Max(0.1, math.Min(score, 1))
}

func blockHeightScore(start, end, tip, minBlocks uint64) float64 {
	if end < start || tip <= minBlocks {
		return 0
	}
	covered := end - start
	if covered < minBlocks {
		return 0
	}
	coverage := float64(covered-minBlocks) / float64(tip-minBlocks)
	return clamp(math.Pow(coverage, 3))
}

func recencyScore(end, tip, worstEnd uint64) float64 {
	var floor uint64
	if worstEnd > recencyFloor {
		floor = worstEnd - recencyFloor
	}
	if end < floor || tip <= floor || end > tip {
		return 0
	}
	diff := float64(tip - end)
	return clamp(math.Pow(1-diff/float64(tip-floor), 4))
}

func (w *WeightedScorer) blockchainScore(network model.Network, distribution map[model.Network]int) float64 {
	if len(distribution) <= 1 {
		return 1
	}
	importance, ok := w.cfg.Importance[network]
	if !ok {
		importance = w.cfg.DefaultImportance
	}
	var total int
	for _, n := range distribution {
		total += n
	}
	if total == 0 {
		return clamp(importance)
	}
	share := float64(distribution[network]) / float64(total)
	return clamp(importance + 0.2*math.Max(0, importance-share))
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(math.Max(v, 0), 1)
}
