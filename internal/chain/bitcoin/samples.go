package bitcoin

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/pkg/workerpool"
)

var errSampleMismatch = errors.New("sample mismatch")

// ValidateSamples checks every sample's transaction count against the chain.
// Samples above the tip fail validation without an RPC lookup.
func (n *Node) ValidateSamples(ctx context.Context, samples []model.DataSample, minSamples int) (bool, error) {
	if len(samples) == 0 || len(samples) < minSamples {
		return false, nil
	}
	tip, err := n.LatestHeight(ctx)
	if err != nil {
		return false, err
	}
	for _, sample := range samples {
		if sample.BlockHeight > tip || sample.TransactionCount < 0 {
			return false, nil
		}
	}

	err = workerpool.Process(ctx, n.cfg.Workers, samples, func(ctx context.Context, sample model.DataSample) error {
		hash, err := n.blockHash(ctx, sample.BlockHeight)
		if err != nil {
			return err
		}
		block, err := n.rpc.GetBlockVerbose(hash)
		if err != nil {
			return fmt.Errorf("get block %d: %w", sample.BlockHeight, err)
		}
		if len(block.Tx) != sample.TransactionCount {
			return fmt.Errorf("%w: block %d has %d transactions, sample claims %d",
				errSampleMismatch, sample.BlockHeight, len(block.Tx), sample.TransactionCount)
		}
		return nil
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errSampleMismatch):
		return false, nil
	default:
		return false, err
	}
}
