// Package redis stores peer commitments in Redis under commitment:<hotkey>.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "commitment:"

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Store implements the registry commitment store.
type Store struct {
	client  Client
	metrics Metrics
}

// NewStore connects to Redis and checks the connection.
func NewStore(ctx context.Context, opts Options, metrics Metrics) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}
	return newStore(client, metrics), nil
}

func newStore(client Client, metrics Metrics) *Store {
	return &Store{client: client, metrics: metrics}
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

// Commitments loads the commitments of hotkeys with a single MGET.
func (s *Store) Commitments(ctx context.Context, hotkeys []string) (result map[string]string, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("commitments", err, started)
	}()

	result = make(map[string]string, len(hotkeys))
	if len(hotkeys) == 0 {
		return result, nil
	}

	keys := make([]string, len(hotkeys))
	for i, hotkey := range hotkeys {
		keys[i] = key(hotkey)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("mget commitments: %w", err)
	}
	if len(values) != len(hotkeys) {
		return nil, fmt.Errorf("mget returned %d values for %d keys", len(values), len(hotkeys))
	}
	for i, v := range values {
		switch value := v.(type) {
		case nil:
		case string:
			result[hotkeys[i]] = value
		default:
			return nil, fmt.Errorf("unexpected value type %T for %s", v, keys[i])
		}
	}
	return result, nil
}

// SetCommitment stores value for hotkey without expiry.
func (s *Store) SetCommitment(ctx context.Context, hotkey, value string) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("set_commitment", err, started)
	}()

	if err = s.client.Set(ctx, key(hotkey), value, 0).Err(); err != nil {
		return fmt.Errorf("set commitment %s: %w", hotkey, err)
	}
	return nil
}

func key(hotkey string) string {
	return keyPrefix + hotkey
}
