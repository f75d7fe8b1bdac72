package indexer

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/graph"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	BlockSource interface {
		LatestHeight(ctx context.Context) (uint64, error)
		FetchBlock(ctx context.Context, height uint64) (*model.Block, error)
	}
	GraphSink interface {
		CommitBlock(ctx context.Context, g *graph.BlockGraph) error
		IndexedRanges(ctx context.Context, network model.Network) ([]model.BlockRange, error)
	}
	Metrics interface {
		ObservePhase(phase Phase)
		ObserveProcessHeight(err error, height uint64, started time.Time)
		ObserveRestart(err error)
		ObserveIndexed(total uint64)
	}
)
