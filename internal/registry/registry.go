// Package registry resolves peer commitments into per-round metadata and the
// distribution statistics used by the fairness gate.
package registry

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

// Registry reads and publishes commitments.
type Registry struct {
	store  CommitmentStore
	logger *zap.Logger
}

// New constructs a Registry.
func New(store CommitmentStore, logger *zap.Logger) (*Registry, error) {
	if store == nil {
		return nil, errors.New("nil commitment store")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{store: store, logger: logger.Named("registry")}, nil
}

// Build resolves the commitment of every serving peer. Peers whose commitment
// is absent, malformed or not a peer record are left out of the metadata.
// A store failure fails the build.
func (r *Registry) Build(ctx context.Context, peers []model.PeerInfo) (*Metadata, error) {
	hotkeys := make([]string, 0, len(peers))
	for _, p := range peers {
		if p.Serving {
			hotkeys = append(hotkeys, p.Hotkey)
		}
	}

	raw := map[string]string{}
	if len(hotkeys) > 0 {
		var err error
		raw, err = r.store.Commitments(ctx, hotkeys)
		if err != nil {
			return nil, fmt.Errorf("load commitments: %w", err)
		}
	}

	m := newMetadata()
	for _, p := range peers {
		if !p.Serving {
			continue
		}
		s, ok := raw[p.Hotkey]
		if !ok {
			continue
		}
		meta, err := peerMetadata(s, p)
		if err != nil {
			r.logger.Debug("skipping commitment", zap.String("hotkey", p.Hotkey), zap.Error(err))
			continue
		}
		m.add(p.Hotkey, meta)
	}
	m.finish()

	r.logger.Info("built peer metadata",
		zap.Int("peers", len(peers)),
		zap.Int("resolved", len(m.peers)))
	return m, nil
}

// Publish stores the commitment under hotkey.
func (r *Registry) Publish(ctx context.Context, hotkey string, c Commitment) error {
	s, err := c.Encode()
	if err != nil {
		return err
	}
	if err := r.store.SetCommitment(ctx, hotkey, s); err != nil {
		return fmt.Errorf("publish commitment for %s: %w", hotkey, err)
	}
	r.logger.Info("published commitment", zap.String("hotkey", hotkey), zap.String("commitment", s))
	return nil
}

// PublishValidator stores the validator commitment under hotkey unless the
// hotkey already carries a peer commitment, as a hotkey shared by a miner and
// a validator keeps advertising its served data. It reports whether the
// commitment was written.
func (r *Registry) PublishValidator(ctx context.Context, hotkey string, v ValidatorCommitment) (bool, error) {
	existing, err := r.store.Commitments(ctx, []string{hotkey})
	if err != nil {
		return false, fmt.Errorf("load commitment of %s: %w", hotkey, err)
	}
	if s, ok := existing[hotkey]; ok {
		if c, err := ParseCommitment(s); err == nil && c.Kind == KindPeer {
			r.logger.Info("skipping validator commitment, hotkey serves as a miner", zap.String("hotkey", hotkey))
			return false, nil
		}
	}
	if err := r.Publish(ctx, hotkey, Commitment{Kind: KindValidator, Validator: &v}); err != nil {
		return false, err
	}
	return true, nil
}

func peerMetadata(s string, p model.PeerInfo) (model.PeerMetadata, error) {
	c, err := ParseCommitment(s)
	if err != nil {
		return model.PeerMetadata{}, err
	}
	if c.Kind != KindPeer {
		return model.PeerMetadata{}, fmt.Errorf("%w: %s record", ErrMalformedCommitment, c.Kind)
	}
	network, ok := model.NetworkByID(c.Peer.Network)
	if !ok {
		return model.PeerMetadata{}, fmt.Errorf("%w: unknown network id %d", ErrMalformedCommitment, c.Peer.Network)
	}
	modelType, ok := model.ModelTypeByID(c.Peer.ModelType)
	if !ok {
		return model.PeerMetadata{}, fmt.Errorf("%w: unknown model type id %d", ErrMalformedCommitment, c.Peer.ModelType)
	}
	blocks, err := model.NewBlockRange(c.Peer.StartBlock, c.Peer.LastBlock)
	if err != nil {
		return model.PeerMetadata{}, fmt.Errorf("%w: %v", ErrMalformedCommitment, err)
	}
	meta := model.PeerMetadata{
		Network:     network,
		ModelType:   modelType,
		StartBlock:  blocks.Start,
		EndBlock:    blocks.End,
		CodeVersion: c.Peer.CodeVersion,
		IP:          p.IP,
		Coldkey:     p.Coldkey,
	}
	if c.Peer.BalanceBlock != nil {
		meta.BalanceEndBlock = *c.Peer.BalanceBlock
	}
	return meta, nil
}

// PeerCommitmentFor builds the commitment a miner publishes for its served window.
func PeerCommitmentFor(network model.Network, modelType model.ModelType, start, end uint64, balanceEnd *uint64, codeVersion string) (Commitment, error) {
	nid, ok := network.ID()
	if !ok {
		return Commitment{}, fmt.Errorf("no id for network %q", network)
	}
	mid, ok := modelType.ID()
	if !ok {
		return Commitment{}, fmt.Errorf("no id for model type %q", modelType)
	}
	return Commitment{Kind: KindPeer, Peer: &PeerCommitment{
		StartBlock:   start,
		LastBlock:    end,
		BalanceBlock: balanceEnd,
		Network:      nid,
		ModelType:    mid,
		CodeVersion:  codeVersion,
	}}, nil
}
