package curve

import (
	"math/big"

	"github.com/fanstake/curve-go-sdk/pkg/constants"
	"github.com/fanstake/curve-go-sdk/pkg/safemath"
	"github.com/fanstake/curve-go-sdk/pkg/types"
)

// CurrentPrice returns the instantaneous curve price as an exact rational:
// virtualSolReserves / virtualTokenReserves, in lamports per raw token unit.
// Zero virtual token reserves should never occur under the curve invariants
// but is checked defensively.
func (s State) CurrentPrice() (*big.Rat, error) {
	if s.VirtualTokenReserves == 0 {
		return nil, types.ErrDivisionByZero
	}
	return new(big.Rat).SetFrac(
		new(big.Int).SetUint64(s.VirtualSolReserves),
		new(big.Int).SetUint64(s.VirtualTokenReserves),
	), nil
}

// SpotPriceLamports returns the curve price scaled by 1e9, the fixed-point
// convention used across quotes (e.g. 30_000 = 0.00003 lamports per raw unit).
func (s State) SpotPriceLamports() (uint64, error) {
	if s.VirtualTokenReserves == 0 {
		return 0, types.ErrDivisionByZero
	}
	return safemath.MulDiv(s.VirtualSolReserves, constants.PriceScale, s.VirtualTokenReserves)
}
