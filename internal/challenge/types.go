package challenge

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/transport/peer"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Node is the trusted source challenges are built from.
	Node interface {
		CreateChallenge(ctx context.Context, kind model.ChallengeKind, start, end uint64) (model.ChallengeTask, string, error)
		ValidateChallengeResponse(ctx context.Context, task model.ChallengeTask, answer string) (bool, error)
	}
	Transport interface {
		Challenge(ctx context.Context, p model.PeerInfo, task model.ChallengeTask, timeout time.Duration) (peer.Result[peer.ChallengeResponse], error)
	}
)
