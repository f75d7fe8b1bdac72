package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

const indexedRangesQuery = `SELECT
    min(height) AS start_height,
    max(height) AS end_height
FROM
(
    SELECT
        height,
        toInt64(height) - toInt64(row_number() OVER (ORDER BY height)) AS grp
    FROM (SELECT DISTINCT height FROM graph_blocks WHERE network = ?)
)
GROUP BY grp
ORDER BY start_height`

// IndexedRanges returns the contiguous committed height ranges of a network.
func (r *Repository) IndexedRanges(ctx context.Context, network model.Network) (ranges []model.BlockRange, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("indexed_ranges", network, err, start)
	}()

	rows, err := r.conn.Query(ctx, indexedRangesQuery, string(network))
	if err != nil {
		return nil, fmt.Errorf("query indexed ranges: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var from, to uint64
		if err = rows.Scan(&from, &to); err != nil {
			return nil, fmt.Errorf("scan indexed range: %w", err)
		}
		var br model.BlockRange
		if br, err = model.NewBlockRange(from, to); err != nil {
			return nil, fmt.Errorf("indexed range: %w", err)
		}
		ranges = append(ranges, br)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate indexed ranges: %w", err)
	}
	return ranges, nil
}
