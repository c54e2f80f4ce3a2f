package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fanstake/curve-go-sdk/pkg/launch"
)

func newLaunchCmd(opts *globalOpts) *cobra.Command {
	var (
		name           string
		symbol         string
		uri            string
		artistShareBps uint16
		outPath        string
	)

	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Seed a fresh curve state for a new artist token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := platformConfig(cmd, opts)
			if err != nil {
				return err
			}

			meta := launch.TokenMeta{Name: name, Symbol: symbol, URI: uri}
			if err := meta.Validate(); err != nil {
				return err
			}

			seed := launch.DefaultConfig(cfg.FeeBps)
			state, err := launch.NewState(seed)
			if err != nil {
				return err
			}
			share, err := launch.ArtistShareTokens(state.TotalSupply, artistShareBps)
			if err != nil {
				return err
			}

			if outPath != "" {
				if err := writeState(outPath, state); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "state written to %s\n", outPath)
			}

			if opts.jsonOut {
				return printJSON(cmd, map[string]interface{}{
					"meta":                meta,
					"state":               state,
					"artist_share_tokens": share,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) launched\n", name, symbol)
			fmt.Fprintf(cmd.OutOrStdout(), "virtual reserves: %d lamports / %d tokens\n",
				state.VirtualSolReserves, state.VirtualTokenReserves)
			fmt.Fprintf(cmd.OutOrStdout(), "sellable supply: %d of %d\n",
				state.RealTokenReserves, state.TotalSupply)
			fmt.Fprintf(cmd.OutOrStdout(), "artist share: %d tokens (%d bps, vests %d days)\n",
				share, artistShareBps, cfg.VestingDays)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "artist/token name")
	cmd.Flags().StringVar(&symbol, "symbol", "", "token symbol")
	cmd.Flags().StringVar(&uri, "uri", "", "metadata URI")
	cmd.Flags().Uint16Var(&artistShareBps, "artist-share-bps", 1000, "artist allocation in basis points")
	cmd.Flags().StringVar(&outPath, "out", "", "write the seeded state json here")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("symbol")

	return cmd
}
