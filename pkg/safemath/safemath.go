// Package safemath provides overflow-checked integer arithmetic for curve
// pricing. All multiply-then-divide steps run through a double-width
// intermediate and truncate toward zero, matching the integer-lamport and
// raw-token-unit semantics of the on-chain program. Rounding is always floor:
// the curve keeps the sub-unit remainder, never the trader.
package safemath

import (
	"math/bits"

	"github.com/holiman/uint256"

	"github.com/fanstake/curve-go-sdk/pkg/types"
)

// MulDiv computes floor(a*b/denom) with a wide intermediate product.
// It fails with ErrDivisionByZero when denom is 0 and with
// ErrArithmeticOverflow when the quotient does not fit in a uint64.
func MulDiv(a, b, denom uint64) (uint64, error) {
	if denom == 0 {
		return 0, types.ErrDivisionByZero
	}

	product := new(uint256.Int).Mul(
		new(uint256.Int).SetUint64(a),
		new(uint256.Int).SetUint64(b),
	)
	quotient := product.Div(product, new(uint256.Int).SetUint64(denom))
	if !quotient.IsUint64() {
		return 0, types.ErrArithmeticOverflow
	}
	return quotient.Uint64(), nil
}

// CheckedAdd computes a+b, failing with ErrArithmeticOverflow on wraparound.
func CheckedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, types.ErrArithmeticOverflow
	}
	return sum, nil
}

// CheckedSub computes a-b, failing with ErrArithmeticOverflow when b > a.
// Reserve fields are unsigned; an operation that would drive one below zero
// is rejected entirely.
func CheckedSub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, types.ErrArithmeticOverflow
	}
	return diff, nil
}

// CheckedMul computes a*b, failing with ErrArithmeticOverflow when the
// product does not fit in a uint64.
func CheckedMul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, types.ErrArithmeticOverflow
	}
	return lo, nil
}
