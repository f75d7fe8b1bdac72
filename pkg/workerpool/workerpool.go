// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"
	"errors"

	"github.com/alitto/pond/v2"
)

// Process runs process for every item on at most workerCount goroutines. The
// first error cancels the context handed to the remaining calls and is returned.
func Process[T any](ctx context.Context, workerCount int, items []T, process func(context.Context, T) error) error {
	if len(items) == 0 {
		return ctx.Err()
	}
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(items) {
		workerCount = len(items)
	}

	pool := pond.NewPool(workerCount)
	defer pool.StopAndWait()

	group := pool.NewGroupContext(ctx)
	groupCtx := group.Context()
	for _, item := range items {
		group.SubmitErr(func() error {
			return process(groupCtx, item)
		})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, pond.ErrGroupStopped) {
		return err
	}
	return ctx.Err()
}
