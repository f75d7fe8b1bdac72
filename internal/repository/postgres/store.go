// Package postgres persists the uptime ledger in PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/uptime"
	"github.com/goodnatureofminers/blockinsight7000-validator/pkg/safe"
)

// PoolConfig sizes the connection pool.
type PoolConfig struct {
	MinConns        int32
	MaxConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolConfig returns the pool settings used by the validator.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MinConns:        2,
		MaxConns:        10,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 2 * time.Minute,
	}
}

// Store implements uptime.Store.
type Store struct {
	db      DB
	metrics Metrics
	close   func()
}

// NewStore opens a pool on dsn and verifies it with a ping.
func NewStore(ctx context.Context, dsn string, poolConfig PoolConfig, metrics Metrics, logger *zap.Logger) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}
	if metrics == nil {
		return nil, errors.New("postgres store metrics is required")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	config.MinConns = poolConfig.MinConns
	config.MaxConns = poolConfig.MaxConns
	config.MaxConnLifetime = poolConfig.ConnMaxLifetime
	config.MaxConnIdleTime = poolConfig.ConnMaxIdleTime

	connCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connCtx, config)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(connCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if logger != nil {
		logger.Info("postgres pool configured",
			zap.Int32("min_conns", poolConfig.MinConns),
			zap.Int32("max_conns", poolConfig.MaxConns),
			zap.Duration("conn_max_lifetime", poolConfig.ConnMaxLifetime),
			zap.Duration("conn_max_idle_time", poolConfig.ConnMaxIdleTime))
	}

	s := newStore(pool, metrics)
	s.close = pool.Close
	return s, nil
}

func newStore(db DB, metrics Metrics) *Store {
	return &Store{db: db, metrics: metrics, close: func() {}}
}

// Close releases the pool.
func (s *Store) Close() {
	s.close()
}

const lockPeerQuery = `SELECT pg_advisory_xact_lock(hashtext($1))`

// InTx runs fn in a transaction holding the advisory lock of peerID.
func (s *Store) InTx(ctx context.Context, peerID string, fn func(ctx context.Context, tx uptime.Tx) error) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("in_tx", err, started)
	}()

	err = pgx.BeginFunc(ctx, s.db, func(pgTx pgx.Tx) error {
		if _, err := pgTx.Exec(ctx, lockPeerQuery, peerID); err != nil {
			return fmt.Errorf("lock peer %s: %w", peerID, err)
		}
		return fn(ctx, &tx{exec: pgTx})
	})
	return err
}

const activeRecordByHotkeyQuery = `SELECT id, peer_id, hotkey, uid, uptime_start, is_deregistered, deregistered_at
FROM uptime_peers
WHERE hotkey = $1 AND NOT is_deregistered
ORDER BY uptime_start DESC
LIMIT 1`

// ActiveRecordByHotkey returns the newest active record of hotkey and its downtimes.
func (s *Store) ActiveRecordByHotkey(ctx context.Context, hotkey string) (rec model.UptimeRecord, downtimes []model.DowntimeInterval, err error) {
	started := time.Now()
	defer func() {
		if errors.Is(err, uptime.ErrNotFound) {
			s.metrics.Observe("active_record_by_hotkey", nil, started)
			return
		}
		s.metrics.Observe("active_record_by_hotkey", err, started)
	}()

	rec, err = scanRecord(s.db.QueryRow(ctx, activeRecordByHotkeyQuery, hotkey))
	if err != nil {
		return model.UptimeRecord{}, nil, err
	}
	downtimes, err = listDowntimes(ctx, s.db, rec.ID)
	if err != nil {
		return model.UptimeRecord{}, nil, err
	}
	return rec, downtimes, nil
}

func scanRecord(row pgx.Row) (model.UptimeRecord, error) {
	var (
		rec model.UptimeRecord
		uid int32
	)
	err := row.Scan(&rec.ID, &rec.PeerID, &rec.Hotkey, &uid, &rec.UptimeStart, &rec.IsDeregistered, &rec.DeregisteredAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.UptimeRecord{}, uptime.ErrNotFound
	}
	if err != nil {
		return model.UptimeRecord{}, fmt.Errorf("scan uptime record: %w", err)
	}
	if rec.UID, err = safe.Uint16(uid); err != nil {
		return model.UptimeRecord{}, fmt.Errorf("scan uptime record uid: %w", err)
	}
	return rec, nil
}

const listDowntimesQuery = `SELECT id, record_id, start_at, end_at
FROM uptime_downtimes
WHERE record_id = $1
ORDER BY start_at, id`

func listDowntimes(ctx context.Context, exec Executor, recordID int64) ([]model.DowntimeInterval, error) {
	rows, err := exec.Query(ctx, listDowntimesQuery, recordID)
	if err != nil {
		return nil, fmt.Errorf("query downtimes of record %d: %w", recordID, err)
	}
	downtimes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.DowntimeInterval, error) {
		var d model.DowntimeInterval
		err := row.Scan(&d.ID, &d.RecordID, &d.Start, &d.End)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect downtimes of record %d: %w", recordID, err)
	}
	return downtimes, nil
}
