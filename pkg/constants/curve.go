package constants

// Unit scales
const (
	// LamportsPerSOL is the number of lamports in one SOL.
	LamportsPerSOL = 1_000_000_000

	// TokenDecimals is the decimal count of artist token mints.
	TokenDecimals = 6

	// BpsDenominator is the basis-point scale: 1 bp = 0.01%.
	BpsDenominator = 10_000

	// PriceScale is the fixed-point scale for spot/execution prices
	// (lamports per raw token unit, scaled by 1e9).
	PriceScale = 1_000_000_000
)

// Curve seeding defaults. These mirror the on-chain program's launch values
// and must not drift from them, otherwise client previews disagree with
// authoritative execution.
const (
	// TotalSupply is the fixed supply minted at curve creation (raw units).
	TotalSupply uint64 = 1_000_000_000_000_000

	// SeedVirtualSolReserves is the synthetic SOL reserve seeding a fresh
	// curve (30 SOL in lamports).
	SeedVirtualSolReserves uint64 = 30_000_000_000

	// SeedVirtualTokenReserves is the synthetic token reserve seeding a
	// fresh curve.
	SeedVirtualTokenReserves uint64 = 1_073_000_000_000_000

	// SeedRealTokenReserves is the portion of supply sellable through the
	// curve at launch.
	SeedRealTokenReserves uint64 = 793_100_000_000_000
)

// Launch policy limits from the on-chain program.
const (
	MaxNameLen   = 32
	MaxSymbolLen = 10
	MaxURILen    = 200

	// MaxArtistShareBps caps the artist's allocation at 20% of supply.
	MaxArtistShareBps uint16 = 2_000
)
