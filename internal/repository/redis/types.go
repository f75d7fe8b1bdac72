package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Client is the part of *redis.Client the store uses.
	Client interface {
		MGet(ctx context.Context, keys ...string) *goredis.SliceCmd
		Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
		Ping(ctx context.Context) *goredis.StatusCmd
		Close() error
	}
	// Metrics records store operations.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
