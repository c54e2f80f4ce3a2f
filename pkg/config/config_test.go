package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fanstake/curve-go-sdk/pkg/config"
	"github.com/fanstake/curve-go-sdk/pkg/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "platform.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultPlatformConfig(t *testing.T) {
	cfg := config.DefaultPlatformConfig()
	require.Equal(t, uint16(100), cfg.FeeBps)
	require.Equal(t, uint64(1_000_000), cfg.MinBuyLamports)
	require.Equal(t, 90, cfg.VestingDays)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "fee_bps: 250\nmin_buy_lamports: 5000000\nvesting_days: 30\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, uint16(250), cfg.FeeBps)
	require.Equal(t, uint64(5_000_000), cfg.MinBuyLamports)
	require.Equal(t, 30, cfg.VestingDays)
	require.Equal(t, 30*24*time.Hour, cfg.VestingDuration())

	pol := cfg.Policy()
	require.Equal(t, uint16(250), pol.FeeBps)
	require.Equal(t, uint64(5_000_000), pol.MinBuyLamports)
}

func TestLoadFillsDefaults(t *testing.T) {
	path := writeConfig(t, "fee_bps: 50\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, uint16(50), cfg.FeeBps)
	require.Equal(t, config.DefaultMinBuyLamports, cfg.MinBuyLamports)
	require.Equal(t, config.DefaultVestingDays, cfg.VestingDays)
}

func TestLoadRejectsInvalidFee(t *testing.T) {
	path := writeConfig(t, "fee_bps: 10000\n")

	_, err := config.Load(path)
	require.ErrorIs(t, err, types.ErrInvalidFee)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
