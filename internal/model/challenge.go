package model

// ChallengeKind selects the proof task family.
type ChallengeKind string

const (
	ChallengeFundsFlow       ChallengeKind = "funds_flow"
	ChallengeBalanceTracking ChallengeKind = "balance_tracking"
)

// ChallengeTask is sent to a peer. Only the parameters relevant to Kind are set.
type ChallengeTask struct {
	Kind       ChallengeKind `json:"kind"`
	Network    Network       `json:"network"`
	InTotal    uint64        `json:"in_total_amount,omitempty"`
	OutTotal   uint64        `json:"out_total_amount,omitempty"`
	TxIDSuffix string        `json:"tx_id_last_6_chars,omitempty"`
	// BlockHeight names the block of a balance-tracking challenge.
	BlockHeight uint64 `json:"block_height,omitempty"`
}
