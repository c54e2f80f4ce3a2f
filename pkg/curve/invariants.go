package curve

import (
	"github.com/holiman/uint256"

	"github.com/fanstake/curve-go-sdk/pkg/constants"
	"github.com/fanstake/curve-go-sdk/pkg/types"
)

// CheckState validates the static invariants of a curve snapshot. Violations
// are fatal and never silently corrected.
func CheckState(s State) error {
	if s.FeeBps >= constants.BpsDenominator {
		return types.NewInvariantError("fee-bps",
			"fee %d bps would consume the entire trade", s.FeeBps)
	}
	if s.RealTokenReserves > s.TotalSupply {
		return types.NewInvariantError("supply",
			"real token reserves %d exceed total supply %d",
			s.RealTokenReserves, s.TotalSupply)
	}
	if s.VirtualTokenReserves < s.TotalSupply-s.RealTokenReserves {
		return types.NewInvariantError("sold-tracker",
			"virtual token reserves %d below tokens sold %d",
			s.VirtualTokenReserves, s.TotalSupply-s.RealTokenReserves)
	}
	return nil
}

// CheckTransition validates that next is a legal trade transition from prev.
// It re-derives the invariants from the resulting state rather than trusting
// the arithmetic that produced it:
//
//   - the constant product k never decreases across an accepted trade, and
//     grows by less than one output unit's worth of counter-reserve (the
//     floor-rounding loss bound);
//   - virtual and real reserve deltas move in lockstep on both legs;
//   - total supply and the fee rate are immutable;
//   - no trade touches an inactive curve.
func CheckTransition(prev, next State) error {
	if err := CheckState(next); err != nil {
		return err
	}
	if !prev.Active || !next.Active {
		return types.NewInvariantError("lifecycle", "trade applied to inactive curve")
	}
	if next.TotalSupply != prev.TotalSupply {
		return types.NewInvariantError("supply",
			"total supply changed %d -> %d", prev.TotalSupply, next.TotalSupply)
	}
	if next.FeeBps != prev.FeeBps {
		return types.NewInvariantError("fee-bps",
			"fee changed %d -> %d", prev.FeeBps, next.FeeBps)
	}

	var dir Direction
	switch {
	case next.VirtualSolReserves > prev.VirtualSolReserves:
		dir = DirectionBuy
	case next.VirtualSolReserves < prev.VirtualSolReserves:
		dir = DirectionSell
	default:
		return types.NewInvariantError("reserves", "trade moved no SOL")
	}

	// Reserve deltas must match across the virtual and real legs.
	switch dir {
	case DirectionBuy:
		solIn := next.VirtualSolReserves - prev.VirtualSolReserves
		if next.RealSolReserves-prev.RealSolReserves != solIn {
			return types.NewInvariantError("reserves",
				"buy SOL delta mismatch: virtual +%d, real +%d",
				solIn, next.RealSolReserves-prev.RealSolReserves)
		}
		if next.VirtualTokenReserves >= prev.VirtualTokenReserves {
			return types.NewInvariantError("reserves", "buy did not reduce virtual token reserves")
		}
		tokensOut := prev.VirtualTokenReserves - next.VirtualTokenReserves
		if prev.RealTokenReserves-next.RealTokenReserves != tokensOut {
			return types.NewInvariantError("reserves",
				"buy token delta mismatch: virtual -%d, real -%d",
				tokensOut, prev.RealTokenReserves-next.RealTokenReserves)
		}
	case DirectionSell:
		solOut := prev.VirtualSolReserves - next.VirtualSolReserves
		if prev.RealSolReserves-next.RealSolReserves != solOut {
			return types.NewInvariantError("reserves",
				"sell SOL delta mismatch: virtual -%d, real -%d",
				solOut, prev.RealSolReserves-next.RealSolReserves)
		}
		if next.VirtualTokenReserves <= prev.VirtualTokenReserves {
			return types.NewInvariantError("reserves", "sell did not grow virtual token reserves")
		}
		tokensIn := next.VirtualTokenReserves - prev.VirtualTokenReserves
		if next.RealTokenReserves-prev.RealTokenReserves != tokensIn {
			return types.NewInvariantError("reserves",
				"sell token delta mismatch: virtual +%d, real +%d",
				tokensIn, next.RealTokenReserves-prev.RealTokenReserves)
		}
	}

	// Constant product: floor rounding keeps the remainder in the curve, so
	// k may only grow, and by less than one output unit of the reserve on
	// the trade's incoming side.
	kPrev := reserveProduct(prev)
	kNext := reserveProduct(next)
	if kNext.Lt(kPrev) {
		return types.NewInvariantError("constant-product",
			"k decreased: %s -> %s", kPrev, kNext)
	}
	loss := new(uint256.Int).Sub(kNext, kPrev)
	var bound *uint256.Int
	if dir == DirectionBuy {
		bound = uint256.NewInt(next.VirtualSolReserves)
	} else {
		bound = uint256.NewInt(next.VirtualTokenReserves)
	}
	if loss.Gt(bound) {
		return types.NewInvariantError("constant-product",
			"rounding loss %s exceeds bound %s", loss, bound)
	}

	return nil
}

func reserveProduct(s State) *uint256.Int {
	return new(uint256.Int).Mul(
		uint256.NewInt(s.VirtualSolReserves),
		uint256.NewInt(s.VirtualTokenReserves),
	)
}
