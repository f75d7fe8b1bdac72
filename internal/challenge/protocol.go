// Package challenge builds proof tasks from a trusted node and verifies peer answers.
package challenge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/transport/peer"
)

// Outcome of a cross validation.
type Outcome int

const (
	// Undetermined means the validator could not reach a verdict, e.g. the
	// peer timed out or the trusted node failed.
	Undetermined Outcome = iota
	Passed
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return "undetermined"
	}
}

// Protocol runs one challenge per claim.
type Protocol struct {
	transport Transport
	timeout   time.Duration
	logger    *zap.Logger
}

// NewProtocol constructs a Protocol that waits at most timeout for a peer answer.
func NewProtocol(transport Transport, timeout time.Duration, logger *zap.Logger) *Protocol {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Protocol{
		transport: transport,
		timeout:   timeout,
		logger:    logger.Named("challenge"),
	}
}

// KindFor maps a claim to the challenge kind and height window it is tested on.
func KindFor(claim model.PeerClaim) (model.ChallengeKind, uint64, uint64, error) {
	switch claim.ModelType {
	case model.FundsFlow, "":
		return model.ChallengeFundsFlow, claim.StartHeight, claim.EndHeight, nil
	case model.BalanceTracking:
		end := claim.BalanceHeight
		if end == 0 {
			end = claim.EndHeight
		}
		return model.ChallengeBalanceTracking, claim.StartHeight, end, nil
	default:
		return "", 0, 0, fmt.Errorf("no challenge for model type %q", claim.ModelType)
	}
}

// Verify reports whether answer solves task.
func Verify(ctx context.Context, node Node, task model.ChallengeTask, expected, answer string) (bool, error) {
	if answer == "" {
		return false, nil
	}
	if answer == expected {
		return true, nil
	}
	return node.ValidateChallengeResponse(ctx, task, answer)
}

// CrossValidate challenges the peer behind claim.
func (p *Protocol) CrossValidate(ctx context.Context, node Node, claim model.PeerClaim) Outcome {
	logger := p.logger.With(
		zap.String("hotkey", claim.Peer.Hotkey),
		zap.Uint16("uid", claim.Peer.UID),
		zap.String("ip", claim.Peer.IP))

	kind, start, end, err := KindFor(claim)
	if err != nil {
		logger.Info("cross validation failed", zap.String("reason", "model_type"), zap.Error(err))
		return Failed
	}

	task, expected, err := node.CreateChallenge(ctx, kind, start, end)
	if err != nil {
		logger.Warn("cross validation undetermined", zap.String("reason", "create_challenge"), zap.Error(err))
		return Undetermined
	}

	res, err := p.transport.Challenge(ctx, claim.Peer, task, p.timeout)
	switch {
	case errors.Is(err, peer.ErrTimeout), ctx.Err() != nil:
		logger.Info("cross validation undetermined", zap.String("reason", "timeout"), zap.Error(err))
		return Undetermined
	case err != nil:
		logger.Info("cross validation failed", zap.String("reason", "transport"), zap.Error(err))
		return Failed
	}

	ok, err := Verify(ctx, node, task, expected, res.Body.Output)
	if err != nil {
		logger.Warn("cross validation undetermined", zap.String("reason", "verify"), zap.Error(err))
		return Undetermined
	}
	if !ok {
		logger.Info("cross validation failed",
			zap.String("reason", "expected_response"),
			zap.String("output", res.Body.Output),
			zap.String("expected", expected))
		return Failed
	}
	logger.Debug("cross validation passed", zap.Duration("latency", res.Latency))
	return Passed
}
