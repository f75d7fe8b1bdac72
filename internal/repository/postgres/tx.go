package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/uptime"
)

// tx implements uptime.Tx on an open transaction.
type tx struct {
	exec Executor
}

const activeRecordQuery = `SELECT id, peer_id, hotkey, uid, uptime_start, is_deregistered, deregistered_at
FROM uptime_peers
WHERE peer_id = $1 AND NOT is_deregistered
FOR UPDATE`

func (t *tx) ActiveRecord(ctx context.Context, peerID string) (model.UptimeRecord, error) {
	return scanRecord(t.exec.QueryRow(ctx, activeRecordQuery, peerID))
}

const createRecordQuery = `INSERT INTO uptime_peers (peer_id, hotkey, uid, uptime_start)
VALUES ($1, $2, $3, $4)
RETURNING id`

func (t *tx) CreateRecord(ctx context.Context, rec model.UptimeRecord) (model.UptimeRecord, error) {
	if err := t.exec.QueryRow(ctx, createRecordQuery, rec.PeerID, rec.Hotkey, int32(rec.UID), rec.UptimeStart).Scan(&rec.ID); err != nil {
		return model.UptimeRecord{}, fmt.Errorf("insert uptime record: %w", err)
	}
	return rec, nil
}

const deregisterQuery = `UPDATE uptime_peers
SET is_deregistered = TRUE, deregistered_at = $2
WHERE id = $1 AND NOT is_deregistered`

func (t *tx) Deregister(ctx context.Context, recordID int64, at time.Time) error {
	tag, err := t.exec.Exec(ctx, deregisterQuery, recordID, at)
	if err != nil {
		return fmt.Errorf("deregister record %d: %w", recordID, err)
	}
	if tag.RowsAffected() == 0 {
		return uptime.ErrNotFound
	}
	return nil
}

const latestDowntimeQuery = `SELECT id, record_id, start_at, end_at
FROM uptime_downtimes
WHERE record_id = $1
ORDER BY start_at DESC, id DESC
LIMIT 1`

func (t *tx) LatestDowntime(ctx context.Context, recordID int64) (model.DowntimeInterval, error) {
	var d model.DowntimeInterval
	err := t.exec.QueryRow(ctx, latestDowntimeQuery, recordID).Scan(&d.ID, &d.RecordID, &d.Start, &d.End)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.DowntimeInterval{}, uptime.ErrNotFound
	}
	if err != nil {
		return model.DowntimeInterval{}, fmt.Errorf("scan latest downtime: %w", err)
	}
	return d, nil
}

const openDowntimeQuery = `INSERT INTO uptime_downtimes (record_id, start_at) VALUES ($1, $2)`

func (t *tx) OpenDowntime(ctx context.Context, recordID int64, start time.Time) error {
	if _, err := t.exec.Exec(ctx, openDowntimeQuery, recordID, start); err != nil {
		return fmt.Errorf("open downtime of record %d: %w", recordID, err)
	}
	return nil
}

const closeDowntimeQuery = `UPDATE uptime_downtimes SET end_at = $2 WHERE record_id = $1 AND end_at IS NULL`

func (t *tx) CloseDowntime(ctx context.Context, recordID int64, end time.Time) error {
	if _, err := t.exec.Exec(ctx, closeDowntimeQuery, recordID, end); err != nil {
		return fmt.Errorf("close downtime of record %d: %w", recordID, err)
	}
	return nil
}
