package registry

import "github.com/goodnatureofminers/blockinsight7000-validator/internal/model"

// Metadata is the registry view for one round.
type Metadata struct {
	peers map[string]model.PeerMetadata
	// ips counts resolved peers per IP.
	ips map[string]int
	// coldkeys maps a hotkey to the number of resolved peers sharing its coldkey.
	coldkeys        map[string]int
	coldkeyPeers map[string]int
	networks     map[model.Network]int
	worstEnd     map[model.Network]uint64
}

func newMetadata() *Metadata {
	return &Metadata{
		peers:        make(map[string]model.PeerMetadata),
		ips:          make(map[string]int),
		coldkeys:     make(map[string]int),
		coldkeyPeers: make(map[string]int),
		networks:     make(map[model.Network]int),
		worstEnd:     make(map[model.Network]uint64),
	}
}

// NewMetadata builds a view from resolved metadata keyed by hotkey.
func NewMetadata(peers map[string]model.PeerMetadata) *Metadata {
	m := newMetadata()
	for hotkey, meta := range peers {
		m.add(hotkey, meta)
	}
	m.finish()
	return m
}

func (m *Metadata) add(hotkey string, meta model.PeerMetadata) {
	m.peers[hotkey] = meta
	if meta.IP != "" {
		m.ips[meta.IP]++
	}
	if meta.Coldkey != "" {
		m.coldkeyPeers[meta.Coldkey]++
	}
	m.networks[meta.Network]++
	if worst, ok := m.worstEnd[meta.Network]; !ok || meta.EndBlock < worst {
		m.worstEnd[meta.Network] = meta.EndBlock
	}
}

func (m *Metadata) finish() {
	for hotkey, meta := range m.peers {
		if meta.Coldkey != "" {
			m.coldkeys[hotkey] = m.coldkeyPeers[meta.Coldkey]
		}
	}
}

// ForHotkey returns the resolved metadata of a peer.
func (m *Metadata) ForHotkey(hotkey string) (model.PeerMetadata, bool) {
	meta, ok := m.peers[hotkey]
	return meta, ok
}

// Len returns the number of resolved peers.
func (m *Metadata) Len() int {
	return len(m.peers)
}

// IPCount returns the number of resolved peers announcing ip.
func (m *Metadata) IPCount(ip string) int {
	return m.ips[ip]
}

// ColdkeyCount returns how many resolved peers share the coldkey of hotkey.
func (m *Metadata) ColdkeyCount(hotkey string) int {
	return m.coldkeys[hotkey]
}

// NetworkDistribution returns a copy of the per network peer counts.
func (m *Metadata) NetworkDistribution() map[model.Network]int {
	out := make(map[model.Network]int, len(m.networks))
	for network, n := range m.networks {
		out[network] = n
	}
	return out
}

// WorstEndBlock returns the lowest claimed end block on network.
func (m *Metadata) WorstEndBlock(network model.Network) (uint64, bool) {
	v, ok := m.worstEnd[network]
	return v, ok
}

// IsClaimWithinLimits rejects a claim whose IP or coldkey is shared by more
// than maxInstances resolved peers.
func (m *Metadata) IsClaimWithinLimits(claim model.PeerClaim, maxInstances int) bool {
	if m == nil {
		return false
	}
	if m.ips[claim.Peer.IP] > maxInstances {
		return false
	}
	return m.coldkeys[claim.Peer.Hotkey] <= maxInstances
}
