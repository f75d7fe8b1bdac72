package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

const findTransactionQuery = `SELECT tx_id
FROM graph_transactions FINAL
WHERE network = ? AND NOT is_coinbase AND in_total = ? AND out_total = ? AND endsWith(tx_id, ?)
ORDER BY block_height
LIMIT 1`

// FindTransaction looks up a non-coinbase transaction by its totals and id suffix.
func (r *Repository) FindTransaction(ctx context.Context, network model.Network, inTotal, outTotal uint64, suffix string) (txID string, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("find_transaction", network, err, start)
	}()

	rows, err := r.conn.Query(ctx, findTransactionQuery, string(network), inTotal, outTotal, suffix)
	if err != nil {
		return "", false, fmt.Errorf("query transaction: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		return "", false, rows.Err()
	}
	if err = rows.Scan(&txID); err != nil {
		return "", false, fmt.Errorf("scan transaction: %w", err)
	}
	return txID, true, nil
}
