package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

const latestIndexedHeightQuery = `SELECT max(height) FROM graph_blocks WHERE network = ?`

// LatestIndexedHeight returns the highest committed height, or 0 when nothing is indexed.
func (r *Repository) LatestIndexedHeight(ctx context.Context, network model.Network) (uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("latest_indexed_height", network, err, start)
	}()

	var height uint64
	if err = r.conn.QueryRow(ctx, latestIndexedHeightQuery, string(network)).Scan(&height); err != nil {
		return 0, fmt.Errorf("query latest indexed height: %w", err)
	}
	return height, nil
}
