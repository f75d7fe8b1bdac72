// Package uptime tracks peer up and down transitions and scores availability
// over trailing windows.
package uptime

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

// ErrNotFound is returned when no matching record exists.
var ErrNotFound = errors.New("uptime record not found")

const (
	Day   = 24 * time.Hour
	Week  = 7 * Day
	Month = 2629746 * time.Second

	// DefaultImmunity is 8000 blocks of 12 seconds.
	DefaultImmunity = 8000 * 12 * time.Second
)

// Ledger applies transitions through a Store.
type Ledger struct {
	store    Store
	immunity time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewLedger constructs a Ledger. A zero immunity disables the grace period.
func NewLedger(store Store, immunity time.Duration, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{
		store:    store,
		immunity: immunity,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger.Named("uptime"),
	}
}

// PeerID is the slot identity of a uid.
func PeerID(uid uint16) string {
	return strconv.FormatUint(uint64(uid), 10)
}

// Up marks the peer as serving and closes its open downtime interval.
func (l *Ledger) Up(ctx context.Context, uid uint16, hotkey string) error {
	peerID := PeerID(uid)
	return l.store.InTx(ctx, peerID, func(ctx context.Context, tx Tx) error {
		now := l.now()
		rec, created, err := l.ensureRecord(ctx, tx, peerID, uid, hotkey, now)
		if err != nil {
			return err
		}
		if created {
			return nil
		}
		if err := tx.CloseDowntime(ctx, rec.ID, now); err != nil {
			return fmt.Errorf("close downtime of %s: %w", peerID, err)
		}
		return nil
	})
}

// Down opens a downtime interval unless one is already open.
func (l *Ledger) Down(ctx context.Context, uid uint16, hotkey string) error {
	peerID := PeerID(uid)
	return l.store.InTx(ctx, peerID, func(ctx context.Context, tx Tx) error {
		now := l.now()
		rec, _, err := l.ensureRecord(ctx, tx, peerID, uid, hotkey, now)
		if err != nil {
			return err
		}
		latest, err := tx.LatestDowntime(ctx, rec.ID)
		switch {
		case errors.Is(err, ErrNotFound):
		case err != nil:
			return fmt.Errorf("latest downtime of %s: %w", peerID, err)
		case latest.End == nil:
			return nil
		}
		if err := tx.OpenDowntime(ctx, rec.ID, now); err != nil {
			return fmt.Errorf("open downtime of %s: %w", peerID, err)
		}
		return nil
	})
}

// ensureRecord returns the active record of peerID, starting a new one when
// none exists or the slot changed hands.
func (l *Ledger) ensureRecord(ctx context.Context, tx Tx, peerID string, uid uint16, hotkey string, now time.Time) (model.UptimeRecord, bool, error) {
	rec, err := tx.ActiveRecord(ctx, peerID)
	switch {
	case err == nil && rec.Hotkey == hotkey:
		return rec, false, nil
	case err == nil:
		if err := tx.Deregister(ctx, rec.ID, now); err != nil {
			return model.UptimeRecord{}, false, fmt.Errorf("deregister %s: %w", peerID, err)
		}
		l.logger.Info("peer slot changed hands",
			zap.String("peer_id", peerID),
			zap.String("old_hotkey", rec.Hotkey),
			zap.String("hotkey", hotkey))
	case !errors.Is(err, ErrNotFound):
		return model.UptimeRecord{}, false, fmt.Errorf("active record of %s: %w", peerID, err)
	}

	rec, err = tx.CreateRecord(ctx, model.UptimeRecord{
		PeerID:      peerID,
		Hotkey:      hotkey,
		UID:         uid,
		UptimeStart: now,
	})
	if err != nil {
		return model.UptimeRecord{}, false, fmt.Errorf("create record for %s: %w", peerID, err)
	}
	return rec, true, nil
}

// CalculateUptime returns the uptime ratio of hotkey for every period.
func (l *Ledger) CalculateUptime(ctx context.Context, hotkey string, periods []time.Duration) (map[time.Duration]float64, error) {
	rec, downtimes, err := l.store.ActiveRecordByHotkey(ctx, hotkey)
	if err != nil {
		return nil, fmt.Errorf("load uptime of %s: %w", hotkey, err)
	}
	now := l.now()
	out := make(map[time.Duration]float64, len(periods))
	for _, period := range periods {
		out[period] = Ratio(now, rec.UptimeStart.Add(l.immunity), period, downtimes)
	}
	return out, nil
}

// UptimeScores returns the daily, weekly and monthly ratios and their mean.
func (l *Ledger) UptimeScores(ctx context.Context, hotkey string) (model.UptimeScores, error) {
	ratios, err := l.CalculateUptime(ctx, hotkey, []time.Duration{Day, Week, Month})
	if err != nil {
		return model.UptimeScores{}, err
	}
	scores := model.UptimeScores{
		Daily:   ratios[Day],
		Weekly:  ratios[Week],
		Monthly: ratios[Month],
	}
	scores.Average = (scores.Daily + scores.Weekly + scores.Monthly) / 3
	return scores, nil
}

// Ratio is the share of [now-period, now], clipped to start no earlier than
// activeFrom, not covered by downtime. An empty window scores 1. Open
// intervals count as down until now.
func Ratio(now, activeFrom time.Time, period time.Duration, downtimes []model.DowntimeInterval) float64 {
	windowStart := now.Add(-period)
	if activeFrom.After(windowStart) {
		windowStart = activeFrom
	}
	if !windowStart.Before(now) {
		return 1
	}
	window := now.Sub(windowStart)

	var down time.Duration
	for _, d := range downtimes {
		end := now
		if d.End != nil && d.End.Before(now) {
			end = *d.End
		}
		start := d.Start
		if start.Before(windowStart) {
			start = windowStart
		}
		if end.After(start) {
			down += end.Sub(start)
		}
	}
	if down >= window {
		return 0
	}
	return float64(window-down) / float64(window)
}
