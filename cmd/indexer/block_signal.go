//go:build !zmq

package main

import (
	"context"

	"go.uber.org/zap"
)

// startBlockSignal without zmq support leaves the indexer polling.
func startBlockSignal(_ context.Context, addr string, logger *zap.Logger) (<-chan struct{}, error) {
	if addr != "" {
		logger.Warn("built without zmq, ignoring block signal endpoint", zap.String("addr", addr))
	}
	return nil, nil
}
