package curve_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/fanstake/curve-go-sdk/pkg/curve"
	"github.com/fanstake/curve-go-sdk/pkg/fees"
	"github.com/fanstake/curve-go-sdk/pkg/types"
)

func product(s curve.State) *uint256.Int {
	return new(uint256.Int).Mul(
		uint256.NewInt(s.VirtualSolReserves),
		uint256.NewInt(s.VirtualTokenReserves),
	)
}

func requireInvariants(t *testing.T, s curve.State) {
	t.Helper()
	require.NoError(t, curve.CheckState(s))
	require.LessOrEqual(t, s.RealTokenReserves, s.TotalSupply)
	require.GreaterOrEqual(t, s.VirtualTokenReserves, s.TotalSupply-s.RealTokenReserves)
}

// Replay a long random trade sequence and re-derive every invariant after
// each accepted trade. The engine runs its own transition check internally;
// this re-checks from the outside so a bug in the checker itself would also
// surface.
func TestRandomTradeSequenceInvariants(t *testing.T) {
	eng := curve.New(fees.Policy{FeeBps: 100, MinBuyLamports: 1_000})
	rng := rand.New(rand.NewSource(42))

	s := freshState()
	requireInvariants(t, s)

	accepted := 0
	for i := 0; i < 2_000; i++ {
		prev := s
		kPrev := product(prev)

		if rng.Intn(2) == 0 || prev.TokensSold() == 0 {
			gross := 1_000 + uint64(rng.Int63n(5_000_000_000)) // up to 5 SOL
			next, receipt, err := eng.ApplyBuy(prev, gross, 0)
			if err != nil {
				require.Equal(t, prev, next)
				continue
			}
			require.Equal(t, gross, receipt.NetSolLamports+receipt.Fee)
			s = next
		} else {
			amount := 1 + uint64(rng.Int63n(int64(prev.TokensSold())))
			next, receipt, err := eng.ApplySell(prev, amount, 0)
			if err != nil {
				require.Equal(t, prev, next)
				continue
			}
			require.Equal(t, receipt.GrossSolLamports, receipt.NetSolLamports+receipt.Fee)
			s = next
		}
		accepted++

		requireInvariants(t, s)
		require.True(t, product(s).Cmp(kPrev) >= 0,
			"constant product decreased at step %d", i)
	}

	require.Greater(t, accepted, 1_000, "sequence should mostly trade")
}

func TestCheckStateViolations(t *testing.T) {
	s := freshState()
	require.NoError(t, curve.CheckState(s))

	bad := s
	bad.FeeBps = 10_000
	err := curve.CheckState(bad)
	require.ErrorIs(t, err, types.ErrInvariantViolated)

	bad = s
	bad.RealTokenReserves = s.TotalSupply + 1
	require.ErrorIs(t, curve.CheckState(bad), types.ErrInvariantViolated)

	bad = s
	bad.RealTokenReserves = 0
	bad.VirtualTokenReserves = s.TotalSupply - 1
	require.ErrorIs(t, curve.CheckState(bad), types.ErrInvariantViolated)
}

func TestCheckTransitionViolations(t *testing.T) {
	eng := newEngine()
	prev := freshState()
	next, _, err := eng.ApplyBuy(prev, 1_000_000_000, 0)
	require.NoError(t, err)

	require.NoError(t, curve.CheckTransition(prev, next))

	// Fee credited into the vault on top of the curve move: real and
	// virtual SOL legs disagree.
	bad := next
	bad.RealSolReserves += 10_000_000
	err = curve.CheckTransition(prev, bad)
	require.ErrorIs(t, err, types.ErrInvariantViolated)

	// Supply is immutable.
	bad = next
	bad.TotalSupply++
	require.ErrorIs(t, curve.CheckTransition(prev, bad), types.ErrInvariantViolated)

	// Fee rate is immutable.
	bad = next
	bad.FeeBps++
	require.ErrorIs(t, curve.CheckTransition(prev, bad), types.ErrInvariantViolated)

	// Tokens granted without burning them from the sellable reserve.
	bad = next
	bad.RealTokenReserves = prev.RealTokenReserves
	require.ErrorIs(t, curve.CheckTransition(prev, bad), types.ErrInvariantViolated)

	// k must never decrease: give out one extra token unit.
	bad = next
	bad.VirtualTokenReserves--
	bad.RealTokenReserves--
	require.ErrorIs(t, curve.CheckTransition(prev, bad), types.ErrInvariantViolated)

	// No trade may touch an inactive curve.
	require.ErrorIs(t, curve.CheckTransition(prev, next.Deactivate()), types.ErrInvariantViolated)

	// A "trade" that moved no SOL at all.
	require.ErrorIs(t, curve.CheckTransition(prev, prev), types.ErrInvariantViolated)
}

func TestInvariantErrorUnwraps(t *testing.T) {
	err := types.NewInvariantError("constant-product", "k decreased")
	require.ErrorIs(t, err, types.ErrInvariantViolated)

	var invErr types.InvariantError
	require.True(t, errors.As(err, &invErr))
	require.Equal(t, "constant-product", invErr.Invariant)
	require.False(t, types.IsRetryable(err))
}
