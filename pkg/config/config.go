package config

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/fanstake/curve-go-sdk/pkg/fees"
	"github.com/fanstake/curve-go-sdk/pkg/types"
)

// Platform policy defaults. The minimum buy is deployment policy (it covers
// vault viability, not curve arithmetic) and should be overridden per
// environment.
const (
	DefaultFeeBps         uint16 = 100 // 1%
	DefaultMinBuyLamports uint64 = 1_000_000
	DefaultVestingDays           = 90
)

// PlatformConfig aggregates the platform's trading policy.
type PlatformConfig struct {
	// FeeBps is the platform fee in basis points, applied to both trade
	// directions.
	FeeBps uint16 `mapstructure:"fee_bps"`

	// MinBuyLamports is the minimum gross SOL size of a buy.
	MinBuyLamports uint64 `mapstructure:"min_buy_lamports"`

	// VestingDays is the artist allocation lockup period.
	VestingDays int `mapstructure:"vesting_days"`

	// Logger receives trade-level debug output.
	Logger zerolog.Logger `mapstructure:"-"`
}

// DefaultPlatformConfig yields production-safe defaults.
func DefaultPlatformConfig() PlatformConfig {
	return PlatformConfig{
		FeeBps:         DefaultFeeBps,
		MinBuyLamports: DefaultMinBuyLamports,
		VestingDays:    DefaultVestingDays,
		Logger:         zerolog.New(io.Discard),
	}
}

// Policy converts the config into the fee policy threaded through the engine.
func (c PlatformConfig) Policy() fees.Policy {
	return fees.Policy{
		FeeBps:         c.FeeBps,
		MinBuyLamports: c.MinBuyLamports,
	}
}

// VestingDuration returns the lockup period as a duration.
func (c PlatformConfig) VestingDuration() time.Duration {
	return time.Duration(c.VestingDays) * 24 * time.Hour
}

// Validate checks the loaded values.
func (c PlatformConfig) Validate() error {
	if err := types.ValidateFeeBps(c.FeeBps); err != nil {
		return err
	}
	if c.VestingDays < 0 {
		return types.NewValidationError("vesting_days", "must not be negative")
	}
	return nil
}

// Load reads a platform config file (yaml/toml/json, decided by extension),
// filling unset keys from defaults.
func Load(path string) (PlatformConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"fee_bps":          DefaultFeeBps,
		"min_buy_lamports": DefaultMinBuyLamports,
		"vesting_days":     DefaultVestingDays,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return PlatformConfig{}, err
	}

	cfg := DefaultPlatformConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return PlatformConfig{}, err
	}

	return cfg, cfg.Validate()
}
