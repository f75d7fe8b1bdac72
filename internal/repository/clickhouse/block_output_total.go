package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

const blockOutputTotalQuery = `SELECT sum(out_total), count()
FROM graph_transactions FINAL
WHERE network = ? AND block_height = ?`

// BlockOutputTotal sums the output values of a committed block.
func (r *Repository) BlockOutputTotal(ctx context.Context, network model.Network, height uint64) (uint64, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("block_output_total", network, err, start)
	}()

	var total, count uint64
	if err = r.conn.QueryRow(ctx, blockOutputTotalQuery, string(network), height).Scan(&total, &count); err != nil {
		return 0, false, fmt.Errorf("query block output total: %w", err)
	}
	return total, count > 0, nil
}
