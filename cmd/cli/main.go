package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fanstake/curve-go-sdk/pkg/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalOpts struct {
	configPath string
	feeBps     uint16
	minBuy     uint64
	logLevel   string
	jsonOut    bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOpts{}

	root := &cobra.Command{
		Use:   "fanstakecli",
		Short: "FanStake bonding-curve engine CLI (offline quoting and simulation)",
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "platform config file (yaml/toml/json)")
	root.PersistentFlags().Uint16Var(&opts.feeBps, "fee-bps", config.DefaultFeeBps, "platform fee in basis points")
	root.PersistentFlags().Uint64Var(&opts.minBuy, "min-buy", config.DefaultMinBuyLamports, "minimum buy size in lamports")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	root.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "print results as JSON")

	root.AddCommand(
		newConfigCmd(opts),
		newQuoteCmd(opts),
		newPriceCmd(opts),
		newLaunchCmd(opts),
		newSimulateCmd(opts),
	)

	return root
}

// platformConfig resolves the effective platform config: file if given,
// defaults otherwise, explicit flags winning over both.
func platformConfig(cmd *cobra.Command, opts *globalOpts) (config.PlatformConfig, error) {
	cfg := config.DefaultPlatformConfig()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return config.PlatformConfig{}, err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("fee-bps") {
		cfg.FeeBps = opts.feeBps
	}
	if cmd.Flags().Changed("min-buy") {
		cfg.MinBuyLamports = opts.minBuy
	}
	cfg.Logger = newLogger(opts.logLevel)
	return cfg, cfg.Validate()
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}

func newConfigCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show effective platform config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := platformConfig(cmd, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "fee_bps=%d\nmin_buy_lamports=%d\nvesting_days=%d\n",
				cfg.FeeBps, cfg.MinBuyLamports, cfg.VestingDays)
			return nil
		},
	}
}
