// Package bitcoin implements the chain node capability on top of bitcoind JSON-RPC.
package bitcoin

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/pkg/safe"
)

// BtcToSatoshis converts BTC amount to satoshis with overflow checks.
func BtcToSatoshis(value float64) (uint64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return safe.Uint64(int64(amt))
}

// convertBlock maps a verbose block into model.Block. Input values and
// addresses stay empty; they are filled by the input resolver.
func convertBlock(src *btcjson.GetBlockVerboseTxResult, network model.Network, decoder *scriptDecoder) (*model.Block, error) {
	height, err := safe.Uint64(src.Height)
	if err != nil {
		return nil, fmt.Errorf("block height %d: %w", src.Height, err)
	}

	txs := make([]model.Transaction, 0, len(src.Tx))
	for i := range src.Tx {
		tx, err := convertTransaction(&src.Tx[i], decoder)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", height, err)
		}
		txs = append(txs, tx)
	}

	return &model.Block{
		Network:      network,
		Height:       height,
		Hash:         src.Hash,
		PrevHash:     src.PreviousHash,
		Timestamp:    time.Unix(src.Time, 0).UTC(),
		Transactions: txs,
	}, nil
}

func convertTransaction(src *btcjson.TxRawResult, decoder *scriptDecoder) (model.Transaction, error) {
	tx := model.Transaction{
		TxID:    src.Txid,
		Inputs:  make([]model.TransactionInput, 0, len(src.Vin)),
		Outputs: make([]model.TransactionOutput, 0, len(src.Vout)),
	}
	for _, vin := range src.Vin {
		if vin.IsCoinBase() {
			tx.IsCoinbase = true
			continue
		}
		tx.Inputs = append(tx.Inputs, model.TransactionInput{PrevTxID: vin.Txid, Vout: vin.Vout})
	}
	for _, vout := range src.Vout {
		out, err := convertOutput(vout, decoder)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("tx %s output %d: %w", src.Txid, vout.N, err)
		}
		tx.Outputs = append(tx.Outputs, out)
	}
	return tx, nil
}

func convertOutput(vout btcjson.Vout, decoder *scriptDecoder) (model.TransactionOutput, error) {
	value, err := BtcToSatoshis(vout.Value)
	if err != nil {
		return model.TransactionOutput{}, err
	}
	address, err := decoder.address(vout)
	if err != nil {
		return model.TransactionOutput{}, err
	}
	return model.TransactionOutput{Index: vout.N, Address: address, Value: value}, nil
}
