package minerapi

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/registry"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Graph is the read side of the local graph store.
	Graph interface {
		IndexedRanges(ctx context.Context, network model.Network) ([]model.BlockRange, error)
		BlockSamples(ctx context.Context, network model.Network, limit int) ([]model.DataSample, error)
		FindTransaction(ctx context.Context, network model.Network, inTotal, outTotal uint64, suffix string) (string, bool, error)
		BlockOutputTotal(ctx context.Context, network model.Network, height uint64) (uint64, bool, error)
		RunQuery(ctx context.Context, query string) ([][]any, error)
	}
	// Publisher stores the peer commitment on chain.
	Publisher interface {
		Publish(ctx context.Context, hotkey string, c registry.Commitment) error
	}
)
