// Package model defines domain models shared by the indexer, the miner API and the validator.
package model

// Network names a blockchain a peer may index.
type Network string

// ModelType names the kind of graph index a peer serves.
type ModelType string

var (
	Bitcoin  Network = "bitcoin"
	Dogecoin Network = "doge"
	Ethereum Network = "ethereum"
)

var (
	FundsFlow       ModelType = "funds_flow"
	BalanceTracking ModelType = "balance_tracking"
)

// ModelTypes lists the model types benchmarked every round, in query order.
var ModelTypes = []ModelType{FundsFlow, BalanceTracking}

// Numeric ids are used by the commitment encoding.
var (
	networkIDs = map[Network]uint64{
		Bitcoin:  1,
		Dogecoin: 2,
		Ethereum: 3,
	}
	modelTypeIDs = map[ModelType]uint64{
		FundsFlow:       2,
		BalanceTracking: 3,
	}
)

// ID returns the numeric id of the network.
func (n Network) ID() (uint64, bool) {
	id, ok := networkIDs[n]
	return id, ok
}

// NetworkByID resolves a numeric network id.
func NetworkByID(id uint64) (Network, bool) {
	for network, nid := range networkIDs {
		if nid == id {
			return network, true
		}
	}
	return "", false
}

// ID returns the numeric id of the model type.
func (m ModelType) ID() (uint64, bool) {
	id, ok := modelTypeIDs[m]
	return id, ok
}

// ModelTypeByID resolves a numeric model type id.
func ModelTypeByID(id uint64) (ModelType, bool) {
	for modelType, mid := range modelTypeIDs {
		if mid == id {
			return modelType, true
		}
	}
	return "", false
}
