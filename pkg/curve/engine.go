// Package curve implements the constant-product bonding-curve pricing engine
// for artist tokens. It is the single implementation both the client preview
// and the trade-submission path call into, so quoted and executed amounts
// cannot drift.
//
// All operations are pure: they take a State snapshot and return outputs (and
// for apply operations, the next State) without touching shared state, so
// concurrent quoting against one snapshot is safe. Serializing apply results
// against the canonical on-chain copy is the caller's job.
//
// Example usage:
//
//	eng := curve.New(fees.Policy{FeeBps: 100, MinBuyLamports: 1_000_000})
//	q, err := eng.QuoteBuy(state, 1_000_000_000, 500) // 1 SOL, 5% slippage
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Expected tokens: %d\n", q.ExpectedOut)
package curve

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/fanstake/curve-go-sdk/pkg/constants"
	"github.com/fanstake/curve-go-sdk/pkg/fees"
	"github.com/fanstake/curve-go-sdk/pkg/safemath"
	"github.com/fanstake/curve-go-sdk/pkg/types"
)

// Direction identifies which side of the curve a trade hits.
type Direction uint8

const (
	DirectionUnknown Direction = iota
	DirectionBuy
	DirectionSell
)

func (d Direction) String() string {
	switch d {
	case DirectionBuy:
		return "buy"
	case DirectionSell:
		return "sell"
	default:
		return "unknown"
	}
}

// Quote contains the result of a price quote.
type Quote struct {
	// ExpectedOut is the computed output amount (tokens for buy, lamports
	// for sell), after the platform fee.
	ExpectedOut uint64

	// Fee is the platform fee taken from the gross SOL leg (lamports).
	Fee uint64

	// MinOut is the minimum output with slippage applied.
	MinOut uint64

	// SpotPrice is the pre-trade curve price (lamports per raw token
	// unit, scaled by 1e9).
	SpotPrice uint64

	// ExecutionPrice is the effective price of this trade (same scale).
	ExecutionPrice uint64

	// PriceImpactBps is the estimated price impact in basis points.
	PriceImpactBps uint64
}

// TradeReceipt records what an accepted trade moved.
type TradeReceipt struct {
	Direction Direction `json:"direction"`

	// GrossSolLamports is the SOL leg before the fee: SOL spent on a buy,
	// gross curve proceeds on a sell.
	GrossSolLamports uint64 `json:"gross_sol_lamports"`

	// NetSolLamports is the SOL leg after the fee: what reached the vault
	// on a buy, what the seller receives on a sell.
	NetSolLamports uint64 `json:"net_sol_lamports"`

	// Tokens is the token leg: tokens granted on a buy, tokens returned
	// on a sell.
	Tokens uint64 `json:"tokens"`

	// Fee is routed to the platform fee vault, outside curve state.
	Fee uint64 `json:"fee"`
}

// Engine computes all pricing for a bonding curve from reserve snapshots.
type Engine struct {
	policy fees.Policy
	log    zerolog.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger attaches a logger for trade-level debug output.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an engine with the given platform policy.
func New(policy fees.Policy, opts ...Option) *Engine {
	e := &Engine{
		policy: policy,
		log:    zerolog.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the platform policy the engine was built with.
func (e *Engine) Policy() fees.Policy {
	return e.policy
}

// QuoteBuy estimates the token output for a given gross SOL input.
//
// The fee comes off the incoming SOL first; the remainder trades against the
// virtual reserves: tokensOut = floor(net * vTok / (vSol + net)). This is the
// floor-rounded multiply-before-divide form the on-chain program uses, so the
// result is bit-exact against authoritative execution.
func (e *Engine) QuoteBuy(s State, grossSolLamports uint64, slippageBps ...uint64) (*Quote, error) {
	if !s.Active {
		return nil, types.ErrInactiveCurve
	}
	if grossSolLamports == 0 {
		return nil, types.ErrInvalidAmount
	}

	net, fee, err := fees.Apply(grossSolLamports, s.FeeBps)
	if err != nil {
		return nil, err
	}

	denom, err := safemath.CheckedAdd(s.VirtualSolReserves, net)
	if err != nil {
		return nil, err
	}
	tokensOut, err := safemath.MulDiv(net, s.VirtualTokenReserves, denom)
	if err != nil {
		return nil, err
	}

	// Dust trade: floor rounding would grant nothing.
	if tokensOut == 0 {
		return nil, types.ErrInsufficientLiquidity
	}
	// Cannot sell more than what remains un-sold.
	if tokensOut > s.RealTokenReserves {
		return nil, types.ErrInsufficientLiquidity
	}

	minOut, err := applySlippageOpt(tokensOut, slippageBps)
	if err != nil {
		return nil, err
	}

	spot, exec, impact := priceMetrics(s, net, tokensOut, DirectionBuy)

	return &Quote{
		ExpectedOut:    tokensOut,
		Fee:            fee,
		MinOut:         minOut,
		SpotPrice:      spot,
		ExecutionPrice: exec,
		PriceImpactBps: impact,
	}, nil
}

// ApplyBuy quotes a buy and transitions the curve state. minTokensOut is the
// caller's slippage guard; pass 0 to accept any quoted output. The fee is not
// added to RealSolReserves: it is routed to the platform fee vault by the
// caller, outside curve state.
//
// The returned state is a fresh value; on any error the input state is
// untouched and must not be replaced.
func (e *Engine) ApplyBuy(s State, grossSolLamports, minTokensOut uint64) (State, *TradeReceipt, error) {
	if s.Active && grossSolLamports < e.policy.MinBuyLamports {
		return s, nil, types.ErrBelowMinimumTrade
	}

	q, err := e.QuoteBuy(s, grossSolLamports)
	if err != nil {
		return s, nil, err
	}
	if q.ExpectedOut < minTokensOut {
		return s, nil, types.ErrSlippageExceeded
	}

	net := grossSolLamports - q.Fee

	next := s
	if next.VirtualSolReserves, err = safemath.CheckedAdd(s.VirtualSolReserves, net); err != nil {
		return s, nil, err
	}
	if next.VirtualTokenReserves, err = safemath.CheckedSub(s.VirtualTokenReserves, q.ExpectedOut); err != nil {
		return s, nil, err
	}
	if next.RealSolReserves, err = safemath.CheckedAdd(s.RealSolReserves, net); err != nil {
		return s, nil, err
	}
	if next.RealTokenReserves, err = safemath.CheckedSub(s.RealTokenReserves, q.ExpectedOut); err != nil {
		return s, nil, err
	}

	if err := CheckTransition(s, next); err != nil {
		return s, nil, err
	}

	receipt := &TradeReceipt{
		Direction:        DirectionBuy,
		GrossSolLamports: grossSolLamports,
		NetSolLamports:   net,
		Tokens:           q.ExpectedOut,
		Fee:              q.Fee,
	}

	e.log.Debug().
		Uint64("gross_sol", grossSolLamports).
		Uint64("net_sol", net).
		Uint64("tokens_out", q.ExpectedOut).
		Uint64("fee", q.Fee).
		Msg("buy applied")

	return next, receipt, nil
}

// QuoteSell estimates the SOL output for a given token input.
//
// The curve computes gross proceeds first: grossOut = floor(in * vSol /
// (vTok + in)), then the fee comes off the outgoing SOL. Same floor-rounded
// form as the on-chain program.
func (e *Engine) QuoteSell(s State, tokenAmountIn uint64, slippageBps ...uint64) (*Quote, error) {
	if !s.Active {
		return nil, types.ErrInactiveCurve
	}
	if tokenAmountIn == 0 {
		return nil, types.ErrInvalidAmount
	}
	// Cannot sell tokens that were never sold into circulation.
	if tokenAmountIn > s.TokensSold() {
		return nil, types.ErrInvalidAmount
	}

	denom, err := safemath.CheckedAdd(s.VirtualTokenReserves, tokenAmountIn)
	if err != nil {
		return nil, err
	}
	grossOut, err := safemath.MulDiv(tokenAmountIn, s.VirtualSolReserves, denom)
	if err != nil {
		return nil, err
	}

	if grossOut == 0 {
		return nil, types.ErrInsufficientLiquidity
	}
	// Vault cannot cover the payout.
	if grossOut > s.RealSolReserves {
		return nil, types.ErrInsufficientLiquidity
	}

	net, fee, err := fees.Apply(grossOut, s.FeeBps)
	if err != nil {
		return nil, err
	}

	minOut, err := applySlippageOpt(net, slippageBps)
	if err != nil {
		return nil, err
	}

	spot, exec, impact := priceMetrics(s, net, tokenAmountIn, DirectionSell)

	return &Quote{
		ExpectedOut:    net,
		Fee:            fee,
		MinOut:         minOut,
		SpotPrice:      spot,
		ExecutionPrice: exec,
		PriceImpactBps: impact,
	}, nil
}

// ApplySell quotes a sell and transitions the curve state. minSolOut is the
// caller's slippage guard; pass 0 to accept any quoted output. The gross
// proceeds leave the vault: the net goes to the seller and the fee to the
// platform fee vault.
func (e *Engine) ApplySell(s State, tokenAmountIn, minSolOut uint64) (State, *TradeReceipt, error) {
	q, err := e.QuoteSell(s, tokenAmountIn)
	if err != nil {
		return s, nil, err
	}
	if q.ExpectedOut < minSolOut {
		return s, nil, types.ErrSlippageExceeded
	}

	grossOut := q.ExpectedOut + q.Fee

	next := s
	if next.VirtualSolReserves, err = safemath.CheckedSub(s.VirtualSolReserves, grossOut); err != nil {
		return s, nil, err
	}
	if next.VirtualTokenReserves, err = safemath.CheckedAdd(s.VirtualTokenReserves, tokenAmountIn); err != nil {
		return s, nil, err
	}
	if next.RealSolReserves, err = safemath.CheckedSub(s.RealSolReserves, grossOut); err != nil {
		return s, nil, err
	}
	if next.RealTokenReserves, err = safemath.CheckedAdd(s.RealTokenReserves, tokenAmountIn); err != nil {
		return s, nil, err
	}

	if err := CheckTransition(s, next); err != nil {
		return s, nil, err
	}

	receipt := &TradeReceipt{
		Direction:        DirectionSell,
		GrossSolLamports: grossOut,
		NetSolLamports:   q.ExpectedOut,
		Tokens:           tokenAmountIn,
		Fee:              q.Fee,
	}

	e.log.Debug().
		Uint64("tokens_in", tokenAmountIn).
		Uint64("gross_sol", grossOut).
		Uint64("net_sol", q.ExpectedOut).
		Uint64("fee", q.Fee).
		Msg("sell applied")

	return next, receipt, nil
}

// --- internal helpers ---

func applySlippageOpt(amount uint64, slippageBps []uint64) (uint64, error) {
	slip := uint64(0)
	if len(slippageBps) > 0 {
		slip = slippageBps[0]
	}
	return fees.ApplySlippage(amount, slip)
}

// priceMetrics derives spot price, execution price, and price impact for a
// quote. solAmount is the net SOL leg, tokenAmount the token leg. Metrics are
// informational; errors collapse to zero values rather than failing the quote.
func priceMetrics(s State, solAmount, tokenAmount uint64, dir Direction) (spot, exec, impactBps uint64) {
	if s.VirtualTokenReserves == 0 || tokenAmount == 0 {
		return 0, 0, 0
	}

	spot, err := safemath.MulDiv(s.VirtualSolReserves, constants.PriceScale, s.VirtualTokenReserves)
	if err != nil {
		return 0, 0, 0
	}
	exec, err = safemath.MulDiv(solAmount, constants.PriceScale, tokenAmount)
	if err != nil {
		return spot, 0, 0
	}

	if spot > 0 {
		switch dir {
		case DirectionBuy:
			if exec > spot {
				impactBps, _ = safemath.MulDiv(exec-spot, constants.BpsDenominator, spot)
			}
		case DirectionSell:
			if spot > exec {
				impactBps, _ = safemath.MulDiv(spot-exec, constants.BpsDenominator, spot)
			}
		}
	}

	return spot, exec, impactBps
}
