package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fanstake/curve-go-sdk/pkg/curve"
)

// loadState reads a curve state snapshot from a JSON file.
func loadState(path string) (curve.State, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return curve.State{}, fmt.Errorf("read state json: %w", err)
	}
	var s curve.State
	if err := json.Unmarshal(content, &s); err != nil {
		return curve.State{}, fmt.Errorf("parse state json: %w", err)
	}
	if err := curve.CheckState(s); err != nil {
		return curve.State{}, fmt.Errorf("state snapshot: %w", err)
	}
	return s, nil
}

// writeState persists a curve state snapshot as JSON.
func writeState(path string, s curve.State) error {
	bz, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(bz, '\n'), 0o644)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return nil
}

func formatSOL(lamports uint64) string {
	return fmt.Sprintf("%.9f", float64(lamports)/1e9)
}
