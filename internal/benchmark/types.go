package benchmark

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/transport/peer"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Transport interface {
		Benchmark(ctx context.Context, p model.PeerInfo, req peer.BenchmarkRequest, timeout time.Duration) (peer.Result[peer.BenchmarkResponse], error)
	}
)
