package model

import (
	"fmt"
	"time"
)

// BlockRange is an inclusive interval of block heights.
type BlockRange struct {
	Start uint64
	End   uint64
}

// NewBlockRange validates start <= end.
func NewBlockRange(start, end uint64) (BlockRange, error) {
	if start > end {
		return BlockRange{}, fmt.Errorf("invalid block range [%d, %d]", start, end)
	}
	return BlockRange{Start: start, End: end}, nil
}

// Size returns the number of heights covered by the range.
func (r BlockRange) Size() uint64 {
	return r.End - r.Start + 1
}

// Contains reports whether height lies within the range.
func (r BlockRange) Contains(height uint64) bool {
	return height >= r.Start && height <= r.End
}

// Block is a raw block as returned by a chain node.
type Block struct {
	Network      Network
	Height       uint64
	Hash         string
	PrevHash     string
	Timestamp    time.Time
	Transactions []Transaction
}

// Transaction is a block transaction with resolved values in base units.
type Transaction struct {
	TxID       string
	IsCoinbase bool
	Inputs     []TransactionInput
	Outputs    []TransactionOutput
}

// TransactionInput references a previous output. Address and Value are empty
// when the previous output could not be resolved by the node.
type TransactionInput struct {
	PrevTxID string
	Vout     uint32
	Address  string
	Value    uint64
}

// TransactionOutput is a single output with its decoded address.
type TransactionOutput struct {
	Index   uint32
	Address string
	Value   uint64
}

// InTotal sums resolved input values.
func (t Transaction) InTotal() uint64 {
	var total uint64
	for _, in := range t.Inputs {
		total += in.Value
	}
	return total
}

// OutTotal sums output values.
func (t Transaction) OutTotal() uint64 {
	var total uint64
	for _, out := range t.Outputs {
		total += out.Value
	}
	return total
}

// DataSample is a peer-reported fact about a block used for spot checks.
type DataSample struct {
	BlockHeight      uint64 `json:"block_height"`
	TransactionCount int    `json:"transaction_count"`
}
