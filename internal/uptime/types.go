package uptime

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

type (
	// Store persists uptime records. InTx runs fn in one transaction that
	// excludes concurrent transactions on the same peer.
	Store interface {
		InTx(ctx context.Context, peerID string, fn func(ctx context.Context, tx Tx) error) error
		// ActiveRecordByHotkey returns the active record of hotkey with its downtimes in start order.
		ActiveRecordByHotkey(ctx context.Context, hotkey string) (model.UptimeRecord, []model.DowntimeInterval, error)
	}
	// Tx is the per peer transactional view. Missing rows yield ErrNotFound.
	Tx interface {
		ActiveRecord(ctx context.Context, peerID string) (model.UptimeRecord, error)
		CreateRecord(ctx context.Context, rec model.UptimeRecord) (model.UptimeRecord, error)
		Deregister(ctx context.Context, recordID int64, at time.Time) error
		LatestDowntime(ctx context.Context, recordID int64) (model.DowntimeInterval, error)
		OpenDowntime(ctx context.Context, recordID int64, start time.Time) error
		CloseDowntime(ctx context.Context, recordID int64, end time.Time) error
	}
)
