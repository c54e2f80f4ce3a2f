package types

// ValidateSlippage validates slippage basis points.
func ValidateSlippage(slippageBps uint64) error {
	if slippageBps > 10000 {
		return NewValidationError("slippageBps", "must be <= 10000 (100%)")
	}
	return nil
}

// ValidateFeeBps validates a platform fee rate. A fee that would consume the
// entire trade amount is rejected.
func ValidateFeeBps(feeBps uint16) error {
	if feeBps >= 10000 {
		return ErrInvalidFee
	}
	return nil
}
