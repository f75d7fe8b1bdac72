package model

import "time"

// PeerInfo describes a peer the validator may sample, as listed by the peer directory.
type PeerInfo struct {
	UID     uint16  `yaml:"uid"`
	Hotkey  string  `yaml:"hotkey"`
	Coldkey string  `yaml:"coldkey"`
	IP      string  `yaml:"ip"`
	Port    int     `yaml:"port"`
	Serving bool    `yaml:"serving"`
	Trust   float64 `yaml:"trust"`
}

// PeerClaim is a validated discovery response for the current round.
type PeerClaim struct {
	Peer          PeerInfo
	Network       Network
	ModelType     ModelType
	StartHeight   uint64
	EndHeight     uint64
	BalanceHeight uint64
	Version       string
	StatusCode    int
}

// PeerMetadata is the structured form of a peer commitment.
type PeerMetadata struct {
	Network         Network
	ModelType       ModelType
	StartBlock      uint64
	EndBlock        uint64
	BalanceEndBlock uint64
	CodeVersion     string
	IP              string
	Coldkey         string
}

// RewardResult is the per-round reward for one peer.
type RewardResult struct {
	Hotkey  string
	UID     uint16
	Score   float64
	Exclude bool
	Reason  string
}

// RewardAudit is one reward decision as stored in the audit trail.
type RewardAudit struct {
	RoundID   string
	Result    RewardResult
	CreatedAt time.Time
}
