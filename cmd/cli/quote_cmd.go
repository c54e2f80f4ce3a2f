package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fanstake/curve-go-sdk/pkg/curve"
)

func newQuoteCmd(opts *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote trades against a curve state snapshot",
	}
	cmd.AddCommand(
		newQuoteBuyCmd(opts),
		newQuoteSellCmd(opts),
	)
	return cmd
}

func newQuoteBuyCmd(opts *globalOpts) *cobra.Command {
	var (
		statePath   string
		solLamports uint64
		slippageBps uint64
	)

	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Quote a buy: SOL in, tokens out",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := platformConfig(cmd, opts)
			if err != nil {
				return err
			}
			state, err := loadState(statePath)
			if err != nil {
				return err
			}

			eng := curve.New(cfg.Policy(), curve.WithLogger(cfg.Logger))
			q, err := eng.QuoteBuy(state, solLamports, slippageBps)
			if err != nil {
				return err
			}

			if opts.jsonOut {
				return printJSON(cmd, q)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "expected tokens: %d\n", q.ExpectedOut)
			fmt.Fprintf(cmd.OutOrStdout(), "min tokens (slippage %d bps): %d\n", slippageBps, q.MinOut)
			fmt.Fprintf(cmd.OutOrStdout(), "fee: %d lamports (%s SOL)\n", q.Fee, formatSOL(q.Fee))
			fmt.Fprintf(cmd.OutOrStdout(), "price impact: %.2f%%\n", float64(q.PriceImpactBps)/100.0)
			return nil
		},
	}

	cmd.Flags().StringVar(&statePath, "state", "", "curve state snapshot json")
	cmd.Flags().Uint64Var(&solLamports, "sol", 0, "SOL to spend (lamports)")
	cmd.Flags().Uint64Var(&slippageBps, "slippage-bps", 0, "slippage tolerance for min out")
	_ = cmd.MarkFlagRequired("state")
	_ = cmd.MarkFlagRequired("sol")

	return cmd
}

func newQuoteSellCmd(opts *globalOpts) *cobra.Command {
	var (
		statePath   string
		tokens      uint64
		slippageBps uint64
	)

	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Quote a sell: tokens in, SOL out",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := platformConfig(cmd, opts)
			if err != nil {
				return err
			}
			state, err := loadState(statePath)
			if err != nil {
				return err
			}

			eng := curve.New(cfg.Policy(), curve.WithLogger(cfg.Logger))
			q, err := eng.QuoteSell(state, tokens, slippageBps)
			if err != nil {
				return err
			}

			if opts.jsonOut {
				return printJSON(cmd, q)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "expected SOL: %d lamports (%s SOL)\n", q.ExpectedOut, formatSOL(q.ExpectedOut))
			fmt.Fprintf(cmd.OutOrStdout(), "min SOL (slippage %d bps): %d\n", slippageBps, q.MinOut)
			fmt.Fprintf(cmd.OutOrStdout(), "fee: %d lamports (%s SOL)\n", q.Fee, formatSOL(q.Fee))
			fmt.Fprintf(cmd.OutOrStdout(), "price impact: %.2f%%\n", float64(q.PriceImpactBps)/100.0)
			return nil
		},
	}

	cmd.Flags().StringVar(&statePath, "state", "", "curve state snapshot json")
	cmd.Flags().Uint64Var(&tokens, "tokens", 0, "tokens to sell (raw units)")
	cmd.Flags().Uint64Var(&slippageBps, "slippage-bps", 0, "slippage tolerance for min out")
	_ = cmd.MarkFlagRequired("state")
	_ = cmd.MarkFlagRequired("tokens")

	return cmd
}

func newPriceCmd(opts *globalOpts) *cobra.Command {
	var statePath string

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Show the current curve price",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(statePath)
			if err != nil {
				return err
			}

			rat, err := state.CurrentPrice()
			if err != nil {
				return err
			}
			scaled, err := state.SpotPriceLamports()
			if err != nil {
				return err
			}

			if opts.jsonOut {
				return printJSON(cmd, map[string]interface{}{
					"price":            rat.FloatString(12),
					"price_scaled_1e9": scaled,
					"tokens_sold":      state.TokensSold(),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "price: %s lamports per raw unit\n", rat.FloatString(12))
			fmt.Fprintf(cmd.OutOrStdout(), "price (1e9-scaled): %d\n", scaled)
			fmt.Fprintf(cmd.OutOrStdout(), "tokens sold: %d\n", state.TokensSold())
			return nil
		},
	}

	cmd.Flags().StringVar(&statePath, "state", "", "curve state snapshot json")
	_ = cmd.MarkFlagRequired("state")

	return cmd
}
