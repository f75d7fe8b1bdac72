package benchmark

import (
	"sort"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

// Group is a set of peers on one network that receive the same queries.
type Group struct {
	Network     model.Network
	Members     []model.PeerClaim
	CommonStart uint64
	CommonEnd   uint64
	// BalanceEnd is the lowest balance-tracking height among members serving
	// balance tracking, 0 when none does.
	BalanceEnd uint64
}

// Strategy partitions claims into benchmark groups.
type Strategy func(claims []model.PeerClaim, chunkSize int) map[model.Network][]Group

// GroupResponses sorts the claims of each network by IP and deals them
// round-robin into ceil(n/chunkSize) groups, so peers with neighbouring
// addresses land in different groups.
func GroupResponses(claims []model.PeerClaim, chunkSize int) map[model.Network][]Group {
	if chunkSize <= 0 {
		chunkSize = 1
	}
	byNetwork := make(map[model.Network][]model.PeerClaim)
	for _, c := range claims {
		byNetwork[c.Network] = append(byNetwork[c.Network], c)
	}

	out := make(map[model.Network][]Group, len(byNetwork))
	for network, items := range byNetwork {
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Peer.IP != items[j].Peer.IP {
				return items[i].Peer.IP < items[j].Peer.IP
			}
			return items[i].Peer.Hotkey < items[j].Peer.Hotkey
		})

		count := (len(items) + chunkSize - 1) / chunkSize
		groups := make([]Group, count)
		for i, item := range items {
			g := &groups[i%count]
			g.Members = append(g.Members, item)
		}
		for i := range groups {
			groups[i].Network = network
			groups[i].commonWindow()
		}
		out[network] = groups
	}
	return out
}

func (g *Group) commonWindow() {
	for i, m := range g.Members {
		if i == 0 || m.StartHeight < g.CommonStart {
			g.CommonStart = m.StartHeight
		}
		if i == 0 || m.EndHeight < g.CommonEnd {
			g.CommonEnd = m.EndHeight
		}
		if m.BalanceHeight > 0 && (g.BalanceEnd == 0 || m.BalanceHeight < g.BalanceEnd) {
			g.BalanceEnd = m.BalanceHeight
		}
	}
}
