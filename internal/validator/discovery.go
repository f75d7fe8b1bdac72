package validator

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/transport/peer"
	"github.com/goodnatureofminers/blockinsight7000-validator/pkg/safe"
)

// ErrInvalidDiscovery marks a structurally invalid discovery claim.
var ErrInvalidDiscovery = errors.New("invalid discovery response")

// validateDiscovery turns a discovery response into a claim. The returned
// claim always carries the peer, also on error.
func validateDiscovery(p model.PeerInfo, res peer.Result[peer.DiscoveryResponse], supported func(model.Network) bool) (model.PeerClaim, error) {
	body := res.Body
	claim := model.PeerClaim{
		Peer:       p,
		Network:    body.Network,
		ModelType:  body.ModelType,
		Version:    body.Version,
		StatusCode: res.StatusCode,
	}

	if res.Hotkey != "" && res.Hotkey != p.Hotkey {
		return claim, fmt.Errorf("%w: answered by %s", ErrInvalidDiscovery, res.Hotkey)
	}
	if body.StartHeight == nil || body.EndHeight == nil || body.BalanceHeight == nil {
		return claim, fmt.Errorf("%w: missing block heights", ErrInvalidDiscovery)
	}
	if *body.StartHeight <= 0 || *body.StartHeight >= *body.EndHeight {
		return claim, fmt.Errorf("%w: block range [%d, %d]", ErrInvalidDiscovery, *body.StartHeight, *body.EndHeight)
	}
	start, end := uint64(*body.StartHeight), uint64(*body.EndHeight)
	balance, err := safe.Uint64(*body.BalanceHeight)
	if err != nil {
		return claim, fmt.Errorf("%w: balance height: %v", ErrInvalidDiscovery, err)
	}
	if _, ok := body.ModelType.ID(); !ok {
		return claim, fmt.Errorf("%w: model type %q", ErrInvalidDiscovery, body.ModelType)
	}
	if !supported(body.Network) {
		return claim, fmt.Errorf("%w: network %q", ErrInvalidDiscovery, body.Network)
	}

	claim.StartHeight = start
	claim.EndHeight = end
	claim.BalanceHeight = balance
	return claim, nil
}
