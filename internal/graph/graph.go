// Package graph turns raw blocks into the funds-flow graph committed by the indexer.
package graph

import (
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

// Direction of an edge relative to its transaction.
type Direction string

var (
	// In is an address spending into a transaction.
	In Direction = "in"
	// Out is a transaction paying an address.
	Out Direction = "out"
)

// Edge links an address and a transaction.
type Edge struct {
	TxID      string
	Address   string
	Direction Direction
	// Position is the input or output index inside the transaction.
	Position uint32
	Value    uint64
}

// TxNode is a transaction vertex with its aggregated totals.
type TxNode struct {
	TxID       string
	InTotal    uint64
	OutTotal   uint64
	IsCoinbase bool
}

// BlockGraph is the in-memory graph for a single block.
type BlockGraph struct {
	Network      model.Network
	Height       uint64
	Hash         string
	PrevHash     string
	Timestamp    time.Time
	Transactions []TxNode
	Edges        []Edge
}

// TxCount returns the number of transactions in the block.
func (g *BlockGraph) TxCount() int {
	return len(g.Transactions)
}

// Build converts a block into its graph. Inputs without a resolved address do
// not produce edges, coinbase inputs included.
func Build(block *model.Block) (*BlockGraph, error) {
	if block == nil {
		return nil, errors.New("nil block")
	}

	g := &BlockGraph{
		Network:      block.Network,
		Height:       block.Height,
		Hash:         block.Hash,
		PrevHash:     block.PrevHash,
		Timestamp:    block.Timestamp,
		Transactions: make([]TxNode, 0, len(block.Transactions)),
	}

	for _, tx := range block.Transactions {
		g.Transactions = append(g.Transactions, TxNode{
			TxID:       tx.TxID,
			InTotal:    tx.InTotal(),
			OutTotal:   tx.OutTotal(),
			IsCoinbase: tx.IsCoinbase,
		})
		if !tx.IsCoinbase {
			for i, in := range tx.Inputs {
				if in.Address == "" {
					continue
				}
				g.Edges = append(g.Edges, Edge{TxID: tx.TxID, Address: in.Address, Direction: In, Position: uint32(i), Value: in.Value})
			}
		}
		for _, out := range tx.Outputs {
			if out.Address == "" {
				continue
			}
			g.Edges = append(g.Edges, Edge{TxID: tx.TxID, Address: out.Address, Direction: Out, Position: out.Index, Value: out.Value})
		}
	}
	return g, nil
}
