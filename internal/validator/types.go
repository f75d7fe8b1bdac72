package validator

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/benchmark"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/challenge"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/registry"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/reward"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/transport/peer"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Directory interface {
		Peers(ctx context.Context) ([]model.PeerInfo, error)
	}
	Discoverer interface {
		Discovery(ctx context.Context, p model.PeerInfo, req peer.DiscoveryRequest, timeout time.Duration) (peer.Result[peer.DiscoveryResponse], error)
	}
	MetadataSource interface {
		Build(ctx context.Context, peers []model.PeerInfo) (*registry.Metadata, error)
	}
	Nodes interface {
		Supported(network model.Network) bool
		Node(network model.Network) (chain.Node, error)
	}
	Challenger interface {
		CrossValidate(ctx context.Context, node challenge.Node, claim model.PeerClaim) challenge.Outcome
	}
	Benchmarker interface {
		Run(ctx context.Context, claims []model.PeerClaim) (benchmark.Results, error)
	}
	Rewarder interface {
		Eligible(s reward.Signals) bool
		Calculate(ctx context.Context, s reward.Signals) (reward.Decision, error)
	}
	Ledger interface {
		Up(ctx context.Context, uid uint16, hotkey string) error
		Down(ctx context.Context, uid uint16, hotkey string) error
	}
	Scoreboard interface {
		Update(results []model.RewardResult) (map[string]float64, error)
	}
	Audit interface {
		Add(ctx context.Context, row model.RewardAudit) error
	}
	Metrics interface {
		ObserveRound(err error, sampled int, started time.Time)
		ObserveDecision(reason string)
	}
)
