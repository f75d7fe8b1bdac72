package peer

import "github.com/goodnatureofminers/blockinsight7000-validator/internal/model"

const (
	DiscoveryPath = "/v1/discovery"
	ChallengePath = "/v1/challenge"
	BenchmarkPath = "/v1/benchmark"

	// HotkeyHeader carries the identity of the answering peer.
	HotkeyHeader = "X-Peer-Hotkey"
)

// DiscoveryRequest asks a peer what it serves.
type DiscoveryRequest struct {
	// MinSamples is the number of data samples the validator wants back.
	MinSamples int `json:"min_samples,omitempty"`
}

// DiscoveryResponse is a peer's claim. Heights are signed pointers so that
// absent and negative values reach validation instead of failing to decode.
type DiscoveryResponse struct {
	Network       model.Network      `json:"network"`
	ModelType     model.ModelType    `json:"model_type"`
	StartHeight   *int64             `json:"start_block_height"`
	EndHeight     *int64             `json:"block_height"`
	BalanceHeight *int64             `json:"balance_model_last_block"`
	Version       string             `json:"version"`
	DataSamples   []model.DataSample `json:"data_samples,omitempty"`
}

// ChallengeResponse carries the peer's answer. An empty Output means no answer.
type ChallengeResponse struct {
	Output string `json:"output"`
}

// BenchmarkRequest is the query issued to every member of a benchmark group.
type BenchmarkRequest struct {
	Network   model.Network   `json:"network"`
	ModelType model.ModelType `json:"query_type"`
	Query     string          `json:"query"`
}

// BenchmarkResponse carries the rendered first cell of the query result. A nil
// Output means no answer.
type BenchmarkResponse struct {
	Output *string `json:"output"`
}
