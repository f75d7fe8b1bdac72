package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Executor is implemented by *pgxpool.Pool and pgx.Tx.
	Executor interface {
		Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
		Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
		QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	}
	// DB is the pool surface the store uses.
	DB interface {
		Executor
		Begin(ctx context.Context) (pgx.Tx, error)
	}
	// Metrics records store operations.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
