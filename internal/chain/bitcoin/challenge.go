package bitcoin

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

const txIDSuffixLen = 6

var errNoChallengeCandidate = errors.New("no non-coinbase transaction in sampled blocks")

// CreateChallenge draws a task from [start, end] and returns it with the expected answer.
func (n *Node) CreateChallenge(ctx context.Context, kind model.ChallengeKind, start, end uint64) (model.ChallengeTask, string, error) {
	if start > end {
		return model.ChallengeTask{}, "", fmt.Errorf("invalid challenge range [%d, %d]", start, end)
	}
	switch kind {
	case model.ChallengeFundsFlow:
		return n.fundsFlowChallenge(ctx, start, end)
	case model.ChallengeBalanceTracking:
		return n.balanceChallenge(ctx, start, end)
	default:
		return model.ChallengeTask{}, "", fmt.Errorf("unsupported challenge kind %q", kind)
	}
}

func (n *Node) fundsFlowChallenge(ctx context.Context, start, end uint64) (model.ChallengeTask, string, error) {
	for attempt := 0; attempt < n.cfg.ChallengeAttempts; attempt++ {
		height := n.pick(start, end)
		src, err := n.verboseBlock(ctx, height)
		if err != nil {
			return model.ChallengeTask{}, "", err
		}
		candidates := make([]int, 0, len(src.Tx))
		for i := range src.Tx {
			if len(src.Tx[i].Vin) > 0 && !src.Tx[i].Vin[0].IsCoinBase() {
				candidates = append(candidates, i)
			}
		}
		if len(candidates) == 0 {
			continue
		}

		raw := &src.Tx[candidates[n.randN(uint64(len(candidates)))]]
		tx, err := convertTransaction(raw, n.decoder)
		if err != nil {
			return model.ChallengeTask{}, "", err
		}
		txs := []model.Transaction{tx}
		if err := n.resolveInputs(ctx, txs); err != nil {
			return model.ChallengeTask{}, "", fmt.Errorf("resolve challenge tx %s: %w", tx.TxID, err)
		}
		return model.ChallengeTask{
			Kind:       model.ChallengeFundsFlow,
			Network:    n.network,
			InTotal:    txs[0].InTotal(),
			OutTotal:   txs[0].OutTotal(),
			TxIDSuffix: suffix(tx.TxID),
		}, tx.TxID, nil
	}
	return model.ChallengeTask{}, "", errNoChallengeCandidate
}

func (n *Node) balanceChallenge(ctx context.Context, start, end uint64) (model.ChallengeTask, string, error) {
	height := n.pick(start, end)
	total, err := n.blockOutputTotal(ctx, height)
	if err != nil {
		return model.ChallengeTask{}, "", err
	}
	return model.ChallengeTask{
		Kind:        model.ChallengeBalanceTracking,
		Network:     n.network,
		BlockHeight: height,
	}, strconv.FormatUint(total, 10), nil
}

// ValidateChallengeResponse re-derives the task parameters from answer.
// A txid unknown to the node is a wrong answer, not an error.
func (n *Node) ValidateChallengeResponse(ctx context.Context, task model.ChallengeTask, answer string) (bool, error) {
	answer = strings.TrimSpace(answer)
	switch task.Kind {
	case model.ChallengeFundsFlow:
		return n.validateFundsFlow(ctx, task, strings.ToLower(answer))
	case model.ChallengeBalanceTracking:
		value, err := strconv.ParseUint(answer, 10, 64)
		if err != nil {
			return false, nil
		}
		total, err := n.blockOutputTotal(ctx, task.BlockHeight)
		if err != nil {
			return false, err
		}
		return value == total, nil
	default:
		return false, fmt.Errorf("unsupported challenge kind %q", task.Kind)
	}
}

func (n *Node) validateFundsFlow(ctx context.Context, task model.ChallengeTask, answer string) (bool, error) {
	if len(answer) != 64 || !strings.HasSuffix(answer, strings.ToLower(task.TxIDSuffix)) {
		return false, nil
	}
	if _, err := hex.DecodeString(answer); err != nil {
		return false, nil
	}

	raw, err := n.rawTransaction(ctx, answer)
	if err != nil {
		if isTxNotFound(err) {
			return false, nil
		}
		return false, err
	}
	tx, err := convertTransaction(raw, n.decoder)
	if err != nil {
		return false, err
	}
	if tx.IsCoinbase {
		return false, nil
	}
	txs := []model.Transaction{tx}
	if err := n.resolveInputs(ctx, txs); err != nil {
		return false, err
	}
	return txs[0].InTotal() == task.InTotal && txs[0].OutTotal() == task.OutTotal, nil
}

func (n *Node) blockOutputTotal(ctx context.Context, height uint64) (uint64, error) {
	src, err := n.verboseBlock(ctx, height)
	if err != nil {
		return 0, err
	}
	var total uint64
	for _, tx := range src.Tx {
		for _, vout := range tx.Vout {
			value, err := BtcToSatoshis(vout.Value)
			if err != nil {
				return 0, fmt.Errorf("block %d tx %s: %w", height, tx.Txid, err)
			}
			total += value
		}
	}
	return total, nil
}

func suffix(txID string) string {
	if len(txID) <= txIDSuffixLen {
		return txID
	}
	return txID[len(txID)-txIDSuffixLen:]
}
