package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fanstake/curve-go-sdk/pkg/curve"
)

// tradeIntent is one step of a simulated trade sequence.
type tradeIntent struct {
	// Side is "buy" (Amount in lamports) or "sell" (Amount in raw tokens).
	Side   string `json:"side"`
	Amount uint64 `json:"amount"`

	// MinOut is the slippage guard; 0 accepts any output.
	MinOut uint64 `json:"min_out"`
}

func loadTrades(path string) ([]tradeIntent, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trades json: %w", err)
	}
	var trades []tradeIntent
	if err := json.Unmarshal(content, &trades); err != nil {
		return nil, fmt.Errorf("parse trades json: %w", err)
	}
	return trades, nil
}

func newSimulateCmd(opts *globalOpts) *cobra.Command {
	var (
		statePath  string
		tradesPath string
		outPath    string
		haltOnErr  bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay a trade sequence through the engine with invariant checking",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := platformConfig(cmd, opts)
			if err != nil {
				return err
			}
			state, err := loadState(statePath)
			if err != nil {
				return err
			}
			trades, err := loadTrades(tradesPath)
			if err != nil {
				return err
			}

			eng := curve.New(cfg.Policy(), curve.WithLogger(cfg.Logger))
			log := cfg.Logger

			var receipts []*curve.TradeReceipt
			for i, tr := range trades {
				var (
					next    curve.State
					receipt *curve.TradeReceipt
				)
				switch tr.Side {
				case "buy":
					next, receipt, err = eng.ApplyBuy(state, tr.Amount, tr.MinOut)
				case "sell":
					next, receipt, err = eng.ApplySell(state, tr.Amount, tr.MinOut)
				default:
					return fmt.Errorf("trade %d: unknown side %q", i, tr.Side)
				}
				if err != nil {
					log.Warn().Int("trade", i).Str("side", tr.Side).
						Uint64("amount", tr.Amount).Err(err).Msg("trade rejected")
					if haltOnErr {
						return fmt.Errorf("trade %d (%s %d): %w", i, tr.Side, tr.Amount, err)
					}
					continue
				}
				state = next
				receipts = append(receipts, receipt)
				log.Info().Int("trade", i).Str("side", tr.Side).
					Uint64("tokens", receipt.Tokens).
					Uint64("net_sol", receipt.NetSolLamports).
					Uint64("fee", receipt.Fee).
					Msg("trade applied")
			}

			if outPath != "" {
				if err := writeState(outPath, state); err != nil {
					return err
				}
			}

			if opts.jsonOut {
				return printJSON(cmd, map[string]interface{}{
					"final_state": state,
					"receipts":    receipts,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d of %d trades\n", len(receipts), len(trades))
			fmt.Fprintf(cmd.OutOrStdout(), "final reserves: %d lamports / %d tokens (real: %d / %d)\n",
				state.VirtualSolReserves, state.VirtualTokenReserves,
				state.RealSolReserves, state.RealTokenReserves)
			fmt.Fprintf(cmd.OutOrStdout(), "tokens sold: %d\n", state.TokensSold())
			return nil
		},
	}

	cmd.Flags().StringVar(&statePath, "state", "", "curve state snapshot json")
	cmd.Flags().StringVar(&tradesPath, "trades", "", "trade sequence json")
	cmd.Flags().StringVar(&outPath, "out", "", "write the final state json here")
	cmd.Flags().BoolVar(&haltOnErr, "halt-on-error", false, "stop at the first rejected trade")
	_ = cmd.MarkFlagRequired("state")
	_ = cmd.MarkFlagRequired("trades")

	return cmd
}
