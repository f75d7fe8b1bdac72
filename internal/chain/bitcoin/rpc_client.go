package bitcoin

import (
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// RPCClient wraps an RPC backend with metrics instrumentation.
type RPCClient struct {
	client  RPC
	metrics RPCMetrics
}

// NewRPCClient constructs an instrumented RPC client. client is usually a *rpcclient.Client.
func NewRPCClient(client RPC, metrics RPCMetrics) *RPCClient {
	return &RPCClient{
		client:  client,
		metrics: metrics,
	}
}

// GetBlockCount returns the latest block count.
func (r *RPCClient) GetBlockCount() (count int64, err error) {
	defer r.observe("get_block_count", time.Now(), &err)
	return r.client.GetBlockCount()
}

// GetBlockHash returns the block hash for a height.
func (r *RPCClient) GetBlockHash(blockHeight int64) (hash *chainhash.Hash, err error) {
	defer r.observe("get_block_hash", time.Now(), &err)
	return r.client.GetBlockHash(blockHeight)
}

// GetBlockVerbose returns a block with transaction ids only.
func (r *RPCClient) GetBlockVerbose(blockHash *chainhash.Hash) (res *btcjson.GetBlockVerboseResult, err error) {
	defer r.observe("get_block_verbose", time.Now(), &err)
	return r.client.GetBlockVerbose(blockHash)
}

// GetBlockVerboseTx returns a verbose block with transactions.
func (r *RPCClient) GetBlockVerboseTx(blockHash *chainhash.Hash) (res *btcjson.GetBlockVerboseTxResult, err error) {
	defer r.observe("get_block_verbose_tx", time.Now(), &err)
	return r.client.GetBlockVerboseTx(blockHash)
}

// GetRawTransactionVerbose returns a decoded transaction. The node must run with txindex.
func (r *RPCClient) GetRawTransactionVerbose(txHash *chainhash.Hash) (res *btcjson.TxRawResult, err error) {
	defer r.observe("get_raw_transaction_verbose", time.Now(), &err)
	return r.client.GetRawTransactionVerbose(txHash)
}

func (r *RPCClient) observe(operation string, started time.Time, err *error) {
	r.metrics.Observe(operation, *err, started)
}
