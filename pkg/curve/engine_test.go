package curve_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fanstake/curve-go-sdk/pkg/curve"
	"github.com/fanstake/curve-go-sdk/pkg/fees"
	"github.com/fanstake/curve-go-sdk/pkg/types"
)

// freshState is a newly launched curve with the full supply sellable:
// 30 SOL virtual reserves against 1e15 raw token units, 1% fee.
func freshState() curve.State {
	return curve.State{
		VirtualSolReserves:   30_000_000_000,
		VirtualTokenReserves: 1_000_000_000_000_000,
		RealSolReserves:      0,
		RealTokenReserves:    1_000_000_000_000_000,
		TotalSupply:          1_000_000_000_000_000,
		FeeBps:               100,
		Active:               true,
	}
}

func newEngine() *curve.Engine {
	return curve.New(fees.Policy{FeeBps: 100, MinBuyLamports: 1_000_000})
}

func TestQuoteBuyOneSOL(t *testing.T) {
	eng := newEngine()

	q, err := eng.QuoteBuy(freshState(), 1_000_000_000)
	require.NoError(t, err)

	// tokensOut = floor(990_000_000 * 1e15 / (30e9 + 990_000_000)),
	// exact integer result, not an approximation.
	require.Equal(t, uint64(31_945_788_964_181), q.ExpectedOut)
	require.Equal(t, uint64(10_000_000), q.Fee)
	require.Equal(t, q.ExpectedOut, q.MinOut) // no slippage requested
	require.Equal(t, uint64(30_000), q.SpotPrice)
	require.Equal(t, uint64(30_990), q.ExecutionPrice)
	require.Equal(t, uint64(330), q.PriceImpactBps)
}

func TestQuoteBuyWithSlippage(t *testing.T) {
	eng := newEngine()

	q, err := eng.QuoteBuy(freshState(), 1_000_000_000, 500)
	require.NoError(t, err)
	require.Equal(t, uint64(30_348_499_515_971), q.MinOut)
}

func TestQuoteBuyZeroAmount(t *testing.T) {
	eng := newEngine()

	_, err := eng.QuoteBuy(freshState(), 0)
	require.ErrorIs(t, err, types.ErrInvalidAmount)
}

func TestQuoteBuyDustRejected(t *testing.T) {
	eng := curve.New(fees.Policy{})

	// Virtual SOL dwarfs virtual tokens, so a small buy floors to zero
	// tokens out. Never silently accepted.
	s := curve.State{
		VirtualSolReserves:   1_000_000_000_000,
		VirtualTokenReserves: 1_000,
		RealTokenReserves:    1_000,
		TotalSupply:          1_000,
		FeeBps:               0,
		Active:               true,
	}
	_, err := eng.QuoteBuy(s, 1_000)
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

func TestQuoteBuyExceedsSellableSupply(t *testing.T) {
	eng := newEngine()

	s := freshState()
	s.RealTokenReserves = 1_000_000 // nearly sold out
	s.TotalSupply = 1_000_000_000_000_000

	_, err := eng.QuoteBuy(s, 1_000_000_000)
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

func TestApplyBuyTransitionsReserves(t *testing.T) {
	eng := newEngine()
	prev := freshState()

	next, receipt, err := eng.ApplyBuy(prev, 1_000_000_000, 0)
	require.NoError(t, err)

	require.Equal(t, curve.DirectionBuy, receipt.Direction)
	require.Equal(t, uint64(1_000_000_000), receipt.GrossSolLamports)
	require.Equal(t, uint64(990_000_000), receipt.NetSolLamports)
	require.Equal(t, uint64(31_945_788_964_181), receipt.Tokens)
	require.Equal(t, uint64(10_000_000), receipt.Fee)

	require.Equal(t, uint64(30_990_000_000), next.VirtualSolReserves)
	require.Equal(t, uint64(968_054_211_035_819), next.VirtualTokenReserves)
	// The fee never reaches the vault: net only.
	require.Equal(t, uint64(990_000_000), next.RealSolReserves)
	require.Equal(t, uint64(968_054_211_035_819), next.RealTokenReserves)
	require.Equal(t, prev.TotalSupply, next.TotalSupply)
	require.Equal(t, receipt.Tokens, next.TokensSold())
}

func TestBuyThenSellRoundTripLeaksFee(t *testing.T) {
	eng := newEngine()

	next, receipt, err := eng.ApplyBuy(freshState(), 1_000_000_000, 0)
	require.NoError(t, err)

	q, err := eng.QuoteSell(next, receipt.Tokens)
	require.NoError(t, err)

	// Fee charged on both legs: strictly less than the net spent comes back.
	require.Equal(t, uint64(980_100_000), q.ExpectedOut)
	require.Less(t, q.ExpectedOut, uint64(990_000_000))
	require.Equal(t, uint64(9_899_999), q.Fee)

	final, sellReceipt, err := eng.ApplySell(next, receipt.Tokens, 0)
	require.NoError(t, err)
	require.Equal(t, q.ExpectedOut, sellReceipt.NetSolLamports)
	require.Equal(t, uint64(989_999_999), sellReceipt.GrossSolLamports)
	require.Zero(t, final.TokensSold())
}

func TestQuoteSellZeroAmount(t *testing.T) {
	eng := newEngine()

	_, err := eng.QuoteSell(freshState(), 0)
	require.ErrorIs(t, err, types.ErrInvalidAmount)
}

func TestQuoteSellMoreThanEverSold(t *testing.T) {
	eng := newEngine()

	// Nothing sold yet: selling even one raw unit is invalid.
	_, err := eng.QuoteSell(freshState(), 1)
	require.ErrorIs(t, err, types.ErrInvalidAmount)

	next, receipt, err := eng.ApplyBuy(freshState(), 1_000_000_000, 0)
	require.NoError(t, err)

	_, err = eng.QuoteSell(next, receipt.Tokens+1)
	require.ErrorIs(t, err, types.ErrInvalidAmount)
}

func TestQuoteSellVaultCannotCover(t *testing.T) {
	eng := newEngine()

	next, receipt, err := eng.ApplyBuy(freshState(), 1_000_000_000, 0)
	require.NoError(t, err)

	// Drain the vault out from under the curve.
	next.RealSolReserves = 0
	_, err = eng.QuoteSell(next, receipt.Tokens)
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

func TestInactiveCurveRejectsEverything(t *testing.T) {
	eng := newEngine()

	s := freshState().Deactivate()

	_, err := eng.QuoteBuy(s, 1_000_000_000)
	require.ErrorIs(t, err, types.ErrInactiveCurve)

	_, err = eng.QuoteSell(s, 1_000)
	require.ErrorIs(t, err, types.ErrInactiveCurve)

	_, _, err = eng.ApplyBuy(s, 1_000_000_000, 0)
	require.ErrorIs(t, err, types.ErrInactiveCurve)

	_, _, err = eng.ApplySell(s, 1_000, 0)
	require.ErrorIs(t, err, types.ErrInactiveCurve)
}

func TestApplyBuyBelowMinimumTrade(t *testing.T) {
	eng := curve.New(fees.Policy{FeeBps: 100, MinBuyLamports: 1_000_000})

	_, _, err := eng.ApplyBuy(freshState(), 999_999, 0)
	require.ErrorIs(t, err, types.ErrBelowMinimumTrade)
	require.False(t, types.IsRetryable(err))

	// The floor is policy, not curve-intrinsic: a zero-minimum engine
	// accepts the same trade.
	loose := curve.New(fees.Policy{FeeBps: 100})
	_, _, err = loose.ApplyBuy(freshState(), 999_999, 0)
	require.NoError(t, err)
}

func TestSlippageGuards(t *testing.T) {
	eng := newEngine()

	q, err := eng.QuoteBuy(freshState(), 1_000_000_000)
	require.NoError(t, err)

	_, _, err = eng.ApplyBuy(freshState(), 1_000_000_000, q.ExpectedOut+1)
	require.ErrorIs(t, err, types.ErrSlippageExceeded)
	require.True(t, types.IsRetryable(err))

	_, _, err = eng.ApplyBuy(freshState(), 1_000_000_000, q.ExpectedOut)
	require.NoError(t, err)

	next, receipt, err := eng.ApplyBuy(freshState(), 1_000_000_000, 0)
	require.NoError(t, err)
	sellQ, err := eng.QuoteSell(next, receipt.Tokens)
	require.NoError(t, err)
	_, _, err = eng.ApplySell(next, receipt.Tokens, sellQ.ExpectedOut+1)
	require.ErrorIs(t, err, types.ErrSlippageExceeded)
}

func TestApplyLeavesInputStateUntouchedOnError(t *testing.T) {
	eng := newEngine()
	s := freshState()

	got, _, err := eng.ApplyBuy(s, 0, 0)
	require.Error(t, err)
	require.Equal(t, s, got)

	got, _, err = eng.ApplySell(s, 1, 0)
	require.Error(t, err)
	require.Equal(t, s, got)
}

func TestMonotonicPricing(t *testing.T) {
	eng := newEngine()
	s := freshState()

	p0, err := s.CurrentPrice()
	require.NoError(t, err)

	afterBuy, receipt, err := eng.ApplyBuy(s, 1_000_000_000, 0)
	require.NoError(t, err)
	p1, err := afterBuy.CurrentPrice()
	require.NoError(t, err)
	require.Equal(t, 1, p1.Cmp(p0), "price must strictly increase after a buy")

	afterSell, _, err := eng.ApplySell(afterBuy, receipt.Tokens, 0)
	require.NoError(t, err)
	p2, err := afterSell.CurrentPrice()
	require.NoError(t, err)
	require.Equal(t, -1, p2.Cmp(p1), "price must strictly decrease after a sell")
}

func TestCurrentPrice(t *testing.T) {
	s := freshState()

	rat, err := s.CurrentPrice()
	require.NoError(t, err)
	require.Equal(t, 0, rat.Cmp(big.NewRat(30_000_000_000, 1_000_000_000_000_000)))

	scaled, err := s.SpotPriceLamports()
	require.NoError(t, err)
	require.Equal(t, uint64(30_000), scaled)

	s.VirtualTokenReserves = 0
	s.TotalSupply = 0
	s.RealTokenReserves = 0
	_, err = s.CurrentPrice()
	require.ErrorIs(t, err, types.ErrDivisionByZero)
	_, err = s.SpotPriceLamports()
	require.ErrorIs(t, err, types.ErrDivisionByZero)
}

func TestDeactivateIsTerminal(t *testing.T) {
	s := freshState()
	require.True(t, s.Active)

	s = s.Deactivate()
	require.False(t, s.Active)
	// Deactivating again is a no-op, never a reactivation.
	require.False(t, s.Deactivate().Active)
}
