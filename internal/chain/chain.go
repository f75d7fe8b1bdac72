// Package chain defines the node capability used by the indexer and the validator
// and a registry of per-network node constructors.
package chain

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

// ErrUnsupportedNetwork is returned when no node is registered for a network.
var ErrUnsupportedNetwork = errors.New("unsupported network")

type (
	// Node is the per-network chain capability.
	Node interface {
		LatestHeight(ctx context.Context) (uint64, error)
		FetchBlock(ctx context.Context, height uint64) (*model.Block, error)
		// ValidateSamples reports whether every sample matches the chain. Fewer
		// than minSamples samples never validate.
		ValidateSamples(ctx context.Context, samples []model.DataSample, minSamples int) (bool, error)
		// CreateChallenge returns a task drawn from [start, end] together with the expected answer.
		CreateChallenge(ctx context.Context, kind model.ChallengeKind, start, end uint64) (model.ChallengeTask, string, error)
		ValidateChallengeResponse(ctx context.Context, task model.ChallengeTask, answer string) (bool, error)
	}

	// Constructor builds a node on first use.
	Constructor func() (Node, error)
)

// Factory lazily constructs nodes and memoizes them per network.
type Factory struct {
	mu           sync.Mutex
	constructors map[model.Network]Constructor
	nodes        map[model.Network]Node
}

// NewFactory returns an empty factory.
func NewFactory() *Factory {
	return &Factory{
		constructors: make(map[model.Network]Constructor),
		nodes:        make(map[model.Network]Node),
	}
}

// Register adds a constructor for network, replacing an earlier one.
func (f *Factory) Register(network model.Network, ctor Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.constructors[network] = ctor
	delete(f.nodes, network)
}

// Supported reports whether a constructor is registered for network.
func (f *Factory) Supported(network model.Network) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.constructors[network]
	return ok
}

// Networks returns the registered networks in lexical order.
func (f *Factory) Networks() []model.Network {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Network, 0, len(f.constructors))
	for network := range f.constructors {
		out = append(out, network)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Node returns the node for network, constructing it if needed. A failed
// construction is not cached.
func (f *Factory) Node(network model.Network) (Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if node, ok := f.nodes[network]; ok {
		return node, nil
	}
	ctor, ok := f.constructors[network]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedNetwork, network)
	}
	node, err := ctor()
	if err != nil {
		return nil, fmt.Errorf("construct %s node: %w", network, err)
	}
	f.nodes[network] = node
	return node, nil
}
