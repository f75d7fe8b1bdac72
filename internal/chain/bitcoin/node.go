package bitcoin

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/pkg/safe"
)

const (
	defaultWorkers           = 8
	defaultChallengeAttempts = 10
)

var _ chain.Node = (*Node)(nil)

// NodeConfig tunes a Node.
type NodeConfig struct {
	// Workers bounds concurrent RPC lookups.
	Workers int
	// ChallengeAttempts bounds the number of blocks drawn while looking for a
	// block with a non-coinbase transaction.
	ChallengeAttempts int
}

// Node implements chain.Node for Bitcoin.
type Node struct {
	rpc     RPC
	decoder *scriptDecoder
	network model.Network
	cfg     NodeConfig
	randN   func(n uint64) uint64
}

// NewNode constructs a node for network.
func NewNode(rpc RPC, network model.Network, cfg NodeConfig) (*Node, error) {
	if rpc == nil {
		return nil, errors.New("nil rpc client")
	}
	decoder, err := newScriptDecoder(network)
	if err != nil {
		return nil, err
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.ChallengeAttempts <= 0 {
		cfg.ChallengeAttempts = defaultChallengeAttempts
	}
	return &Node{
		rpc:     rpc,
		decoder: decoder,
		network: network,
		cfg:     cfg,
		randN:   rand.Uint64N,
	}, nil
}

// LatestHeight returns the height of the best block.
func (n *Node) LatestHeight(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count, err := n.rpc.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", err)
	}
	return safe.Uint64(count)
}

// FetchBlock returns the block at height with the previous output of every
// input resolved. Funds-flow challenges match on the resolved input total.
func (n *Node) FetchBlock(ctx context.Context, height uint64) (*model.Block, error) {
	src, err := n.verboseBlock(ctx, height)
	if err != nil {
		return nil, err
	}
	block, err := convertBlock(src, n.network, n.decoder)
	if err != nil {
		return nil, err
	}
	if err := n.resolveInputs(ctx, block.Transactions); err != nil {
		return nil, fmt.Errorf("resolve inputs of block %d: %w", height, err)
	}
	return block, nil
}

func (n *Node) blockHash(ctx context.Context, height uint64) (*chainhash.Hash, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if height > math.MaxInt64 {
		return nil, fmt.Errorf("height %d out of range", height)
	}
	hash, err := n.rpc.GetBlockHash(int64(height))
	if err != nil {
		return nil, fmt.Errorf("get block hash %d: %w", height, err)
	}
	return hash, nil
}

func (n *Node) verboseBlock(ctx context.Context, height uint64) (*btcjson.GetBlockVerboseTxResult, error) {
	hash, err := n.blockHash(ctx, height)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	block, err := n.rpc.GetBlockVerboseTx(hash)
	if err != nil {
		return nil, fmt.Errorf("get block %d: %w", height, err)
	}
	return block, nil
}

func (n *Node) rawTransaction(ctx context.Context, txID string) (*btcjson.TxRawResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := chainhash.NewHashFromStr(txID)
	if err != nil {
		return nil, fmt.Errorf("parse txid %q: %w", txID, err)
	}
	tx, err := n.rpc.GetRawTransactionVerbose(hash)
	if err != nil {
		return nil, fmt.Errorf("get transaction %s: %w", txID, err)
	}
	return tx, nil
}

// pick returns a uniform height in [start, end].
func (n *Node) pick(start, end uint64) uint64 {
	span := end - start
	if span == math.MaxUint64 {
		return n.randN(math.MaxUint64)
	}
	return start + n.randN(span+1)
}

func isTxNotFound(err error) bool {
	var rpcErr *btcjson.RPCError
	return errors.As(err, &rpcErr) && rpcErr.Code == btcjson.ErrRPCNoTxInfo
}
