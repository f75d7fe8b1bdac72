package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

const insertRewardsQuery = `INSERT INTO validator_rewards (round_id, hotkey, uid, score, excluded, reason, created_at)`

// InsertRewards appends reward decisions to the audit table.
func (r *Repository) InsertRewards(ctx context.Context, rows []model.RewardAudit) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_rewards", "", err, start)
	}()

	if len(rows) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertRewardsQuery)
	if err != nil {
		return fmt.Errorf("prepare rewards batch: %w", err)
	}
	for _, row := range rows {
		res := row.Result
		if err = batch.Append(row.RoundID, res.Hotkey, res.UID, res.Score, res.Exclude, res.Reason, row.CreatedAt); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append reward row: %w", err)
		}
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("send rewards batch: %w", err)
	}
	return nil
}
