package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/graph"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/indexer"
)

const (
	insertEdgesQuery        = `INSERT INTO graph_edges (network, block_height, tx_id, direction, position, address, value)`
	insertTransactionsQuery = `INSERT INTO graph_transactions (network, block_height, tx_id, in_total, out_total, is_coinbase)`
	insertBlockQuery        = `INSERT INTO graph_blocks (network, height, hash, prev_hash, timestamp, tx_count)`
)

// CommitBlock writes the graph of one block. The block row goes last so that
// its presence marks a complete commit. Transport failures are reported as
// indexer.ErrCommitRejected.
func (r *Repository) CommitBlock(ctx context.Context, g *graph.BlockGraph) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("commit_block", g.Network, err, start)
	}()

	if len(g.Edges) > 0 {
		err = r.sendBatch(ctx, insertEdgesQuery, func(batch driver.Batch) error {
			for _, e := range g.Edges {
				if appendErr := batch.Append(string(g.Network), g.Height, e.TxID, string(e.Direction), e.Position, e.Address, e.Value); appendErr != nil {
					return appendErr
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("insert edges of block %d: %w", g.Height, err)
		}
	}

	if len(g.Transactions) > 0 {
		err = r.sendBatch(ctx, insertTransactionsQuery, func(batch driver.Batch) error {
			for _, tx := range g.Transactions {
				if appendErr := batch.Append(string(g.Network), g.Height, tx.TxID, tx.InTotal, tx.OutTotal, tx.IsCoinbase); appendErr != nil {
					return appendErr
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("insert transactions of block %d: %w", g.Height, err)
		}
	}

	err = r.sendBatch(ctx, insertBlockQuery, func(batch driver.Batch) error {
		return batch.Append(string(g.Network), g.Height, g.Hash, g.PrevHash, g.Timestamp, uint32(g.TxCount()))
	})
	if err != nil {
		return fmt.Errorf("insert block %d: %w", g.Height, err)
	}
	return nil
}

func (r *Repository) sendBatch(ctx context.Context, query string, fill func(driver.Batch) error) error {
	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("%w: prepare batch: %w", indexer.ErrCommitRejected, err)
	}
	if err := fill(batch); err != nil {
		_ = batch.Abort()
		return fmt.Errorf("append batch: %w", err)
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("%w: send batch: %w", indexer.ErrCommitRejected, err)
	}
	return nil
}
