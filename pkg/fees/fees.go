// Package fees implements the platform fee policy. The fee is always taken
// from the gross SOL leg of a trade: deducted from incoming SOL before it
// hits the curve on a buy, and from outgoing SOL after the curve computes
// gross proceeds on a sell.
package fees

import (
	"github.com/fanstake/curve-go-sdk/pkg/constants"
	"github.com/fanstake/curve-go-sdk/pkg/safemath"
	"github.com/fanstake/curve-go-sdk/pkg/types"
)

// Policy carries the platform's trading policy. It is threaded as a value so
// the engine stays independently testable against multiple fee
// configurations; nothing in this package reads ambient globals.
type Policy struct {
	// FeeBps is the platform fee in basis points, applied identically to
	// buys and sells. Must be in [0, 10000).
	FeeBps uint16

	// MinBuyLamports is the minimum gross SOL size of a buy. On a freshly
	// seeded curve a sub-minimum buy can floor-round to zero tokens out,
	// and the vault account needs a viable minimum balance; the exact
	// threshold is deployment policy, not curve arithmetic.
	MinBuyLamports uint64
}

// Validate checks the policy fields.
func (p Policy) Validate() error {
	return types.ValidateFeeBps(p.FeeBps)
}

// Apply computes the platform fee taken from a gross lamport amount:
// fee = floor(gross * feeBps / 10000), net = gross - fee.
func Apply(grossLamports uint64, feeBps uint16) (net, fee uint64, err error) {
	if err := types.ValidateFeeBps(feeBps); err != nil {
		return 0, 0, err
	}
	fee, err = safemath.MulDiv(grossLamports, uint64(feeBps), constants.BpsDenominator)
	if err != nil {
		return 0, 0, err
	}
	return grossLamports - fee, fee, nil
}

// ApplySlippage reduces an expected output by a slippage tolerance in basis
// points, yielding the minimum acceptable output for trade submission.
func ApplySlippage(amount, slippageBps uint64) (uint64, error) {
	if err := types.ValidateSlippage(slippageBps); err != nil {
		return 0, err
	}
	return safemath.MulDiv(amount, constants.BpsDenominator-slippageBps, constants.BpsDenominator)
}
