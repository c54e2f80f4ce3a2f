package curve

// State is a snapshot of one artist token's bonding curve. The engine never
// owns the canonical copy: callers source it from the on-chain account, pass
// it in by value, and persist whatever next state an apply operation returns.
type State struct {
	// VirtualSolReserves is the synthetic SOL reserve shaping the price
	// curve (lamports).
	VirtualSolReserves uint64 `json:"virtual_sol_reserves"`

	// VirtualTokenReserves is the synthetic token reserve (raw units,
	// 6 decimals).
	VirtualTokenReserves uint64 `json:"virtual_token_reserves"`

	// RealSolReserves is the SOL actually held by the curve vault
	// (lamports). Bounds what sells can pay out.
	RealSolReserves uint64 `json:"real_sol_reserves"`

	// RealTokenReserves is the token amount still available for sale
	// (raw units). Bounds what buys can receive.
	RealTokenReserves uint64 `json:"real_token_reserves"`

	// TotalSupply is the fixed supply minted at curve creation.
	TotalSupply uint64 `json:"total_supply"`

	// FeeBps is the platform fee in basis points, fixed at creation and
	// applied identically to buys and sells.
	FeeBps uint16 `json:"fee_bps"`

	// Active reports whether trading is permitted. The only transition is
	// Active -> inactive, and it is terminal.
	Active bool `json:"active"`
}

// TokensSold returns how many tokens have been sold into circulation:
// totalSupply - realTokenReserves. Saturates at zero if the supply invariant
// is broken; the invariant checker reports that case loudly.
func (s State) TokensSold() uint64 {
	if s.RealTokenReserves > s.TotalSupply {
		return 0
	}
	return s.TotalSupply - s.RealTokenReserves
}

// Deactivate returns a copy of the state with trading permanently halted.
// No operation restores an inactive curve.
func (s State) Deactivate() State {
	s.Active = false
	return s
}
