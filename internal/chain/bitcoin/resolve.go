package bitcoin

import (
	"context"
	"fmt"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/pkg/workerpool"
)

// resolveInputs fills the address and value of every input in txs. Spends of
// outputs created within txs are resolved locally; the rest are fetched.
func (n *Node) resolveInputs(ctx context.Context, txs []model.Transaction) error {
	local := make(map[string]*model.Transaction, len(txs))
	for i := range txs {
		local[txs[i].TxID] = &txs[i]
	}

	seen := make(map[string]struct{})
	var remote []string
	for _, tx := range txs {
		for _, in := range tx.Inputs {
			if _, ok := local[in.PrevTxID]; ok {
				continue
			}
			if _, ok := seen[in.PrevTxID]; ok {
				continue
			}
			seen[in.PrevTxID] = struct{}{}
			remote = append(remote, in.PrevTxID)
		}
	}

	fetched := xsync.NewMap[string, model.Transaction]()
	err := workerpool.Process(ctx, n.cfg.Workers, remote, func(ctx context.Context, txID string) error {
		raw, err := n.rawTransaction(ctx, txID)
		if err != nil {
			return err
		}
		prev, err := convertTransaction(raw, n.decoder)
		if err != nil {
			return err
		}
		fetched.Store(txID, prev)
		return nil
	})
	if err != nil {
		return err
	}

	for i := range txs {
		for j := range txs[i].Inputs {
			in := &txs[i].Inputs[j]
			prev, ok := local[in.PrevTxID]
			if !ok {
				tx, found := fetched.Load(in.PrevTxID)
				if !found {
					return fmt.Errorf("previous transaction %s not fetched", in.PrevTxID)
				}
				prev = &tx
			}
			out, ok := findOutput(prev.Outputs, in.Vout)
			if !ok {
				return fmt.Errorf("tx %s spends missing output %s:%d", txs[i].TxID, in.PrevTxID, in.Vout)
			}
			in.Address = out.Address
			in.Value = out.Value
		}
	}
	return nil
}

func findOutput(outputs []model.TransactionOutput, index uint32) (model.TransactionOutput, bool) {
	if int(index) < len(outputs) && outputs[index].Index == index {
		return outputs[index], true
	}
	for _, out := range outputs {
		if out.Index == index {
			return out, true
		}
	}
	return model.TransactionOutput{}, false
}
