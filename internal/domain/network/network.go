package network

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/xssnick/tonutils-go/address"
)

// Network identifies the blockchain a project mints on.
type Network string

const (
	Ethereum Network = "Ethereum"
	Polygon  Network = "Polygon"
	Solana   Network = "Solana"
	Aptos    Network = "Aptos"
	Sui      Network = "Sui"
	Cardano  Network = "Cardano"
	Bitcoin  Network = "Bitcoin"
	TON      Network = "TON"

	// TBD marks a project that has not picked a chain yet.
	TBD Network = "TBD"
)

var known = map[Network]struct{}{
	Ethereum: {}, Polygon: {}, Solana: {}, Aptos: {}, Sui: {},
	Cardano: {}, Bitcoin: {}, TON: {}, TBD: {},
}

func (n Network) IsValid() bool {
	_, ok := known[n]
	return ok
}

func (n Network) IsEVM() bool {
	return n == Ethereum || n == Polygon
}

// ValidateTokenAddress checks that addr is a plausible token or contract
// address on this network.
func (n Network) ValidateTokenAddress(addr string) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return fmt.Errorf("token address is required")
	}
	switch {
	case !n.IsValid():
		return fmt.Errorf("unknown network: %q", n)
	case n == TBD:
		return fmt.Errorf("network must be chosen before configuring a token")
	case n.IsEVM():
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("invalid %s address: %s", n, addr)
		}
	case n == TON:
		if _, err := address.ParseAddr(addr); err != nil {
			return fmt.Errorf("invalid TON address: %w", err)
		}
	}
	return nil
}
