// Package launch holds the curve-creation arithmetic: seed reserves, token
// metadata limits, and the artist's supply allocation. The resulting State is
// what the on-chain program writes at token launch; everything here must stay
// in agreement with it.
package launch

import (
	"fmt"

	"github.com/fanstake/curve-go-sdk/pkg/constants"
	"github.com/fanstake/curve-go-sdk/pkg/curve"
	"github.com/fanstake/curve-go-sdk/pkg/safemath"
	"github.com/fanstake/curve-go-sdk/pkg/types"
)

// TokenMeta is the artist token's descriptive metadata. Hosting the metadata
// document itself is the caller's concern; only the on-chain length limits
// are enforced here.
type TokenMeta struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	URI    string `json:"uri"`
}

// Validate enforces the on-chain length limits.
func (m TokenMeta) Validate() error {
	if len(m.Name) > constants.MaxNameLen {
		return types.NewValidationError("name",
			fmt.Sprintf("must be %d characters or less", constants.MaxNameLen))
	}
	if len(m.Symbol) > constants.MaxSymbolLen {
		return types.NewValidationError("symbol",
			fmt.Sprintf("must be %d characters or less", constants.MaxSymbolLen))
	}
	if len(m.URI) > constants.MaxURILen {
		return types.NewValidationError("uri",
			fmt.Sprintf("must be %d characters or less", constants.MaxURILen))
	}
	return nil
}

// Config seeds a new curve. DefaultConfig matches the on-chain launch values;
// overriding them is only meaningful for test curves.
type Config struct {
	VirtualSolReserves   uint64 `json:"virtual_sol_reserves"`
	VirtualTokenReserves uint64 `json:"virtual_token_reserves"`
	RealTokenReserves    uint64 `json:"real_token_reserves"`
	TotalSupply          uint64 `json:"total_supply"`
	FeeBps               uint16 `json:"fee_bps"`
}

// DefaultConfig returns the production seed reserves with the given platform
// fee rate.
func DefaultConfig(feeBps uint16) Config {
	return Config{
		VirtualSolReserves:   constants.SeedVirtualSolReserves,
		VirtualTokenReserves: constants.SeedVirtualTokenReserves,
		RealTokenReserves:    constants.SeedRealTokenReserves,
		TotalSupply:          constants.TotalSupply,
		FeeBps:               feeBps,
	}
}

// NewState creates the initial curve state for a fresh token: the full
// sellable supply in the token reserves, no real SOL yet, trading active.
func NewState(cfg Config) (curve.State, error) {
	if err := types.ValidateFeeBps(cfg.FeeBps); err != nil {
		return curve.State{}, err
	}
	if cfg.VirtualSolReserves == 0 || cfg.VirtualTokenReserves == 0 {
		return curve.State{}, types.NewValidationError("reserves",
			"virtual reserves must be greater than 0")
	}
	if cfg.TotalSupply == 0 {
		return curve.State{}, types.NewValidationError("totalSupply",
			"must be greater than 0")
	}

	s := curve.State{
		VirtualSolReserves:   cfg.VirtualSolReserves,
		VirtualTokenReserves: cfg.VirtualTokenReserves,
		RealSolReserves:      0,
		RealTokenReserves:    cfg.RealTokenReserves,
		TotalSupply:          cfg.TotalSupply,
		FeeBps:               cfg.FeeBps,
		Active:               true,
	}
	if err := curve.CheckState(s); err != nil {
		return curve.State{}, err
	}
	return s, nil
}

// ArtistShareTokens computes the artist's allocation of the initial supply,
// minted to the artist's wallet at launch and vested separately. The share is
// capped at 20% of supply.
func ArtistShareTokens(totalSupply uint64, shareBps uint16) (uint64, error) {
	if shareBps > constants.MaxArtistShareBps {
		return 0, types.ErrArtistShareTooHigh
	}
	return safemath.MulDiv(totalSupply, uint64(shareBps), constants.BpsDenominator)
}
