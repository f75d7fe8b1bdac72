package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

const blockSamplesQuery = `SELECT height, tx_count
FROM graph_blocks FINAL
WHERE network = ?
ORDER BY rand()
LIMIT ?`

// BlockSamples returns up to limit randomly chosen committed blocks with their transaction counts.
func (r *Repository) BlockSamples(ctx context.Context, network model.Network, limit int) (samples []model.DataSample, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block_samples", network, err, start)
	}()

	rows, err := r.conn.Query(ctx, blockSamplesQuery, string(network), uint64(limit))
	if err != nil {
		return nil, fmt.Errorf("query block samples: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var (
			height  uint64
			txCount uint32
		)
		if err = rows.Scan(&height, &txCount); err != nil {
			return nil, fmt.Errorf("scan block sample: %w", err)
		}
		samples = append(samples, model.DataSample{BlockHeight: height, TransactionCount: int(txCount)})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate block samples: %w", err)
	}
	return samples, nil
}
