package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"borrowck/internal/mir"
	"borrowck/internal/mirfile"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <in> <out.mirpack>",
	Short: "Convert a TOML or YAML module to the binary msgpack form",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quiet, err := cmd.Flags().GetBool("quiet")
		if err != nil {
			return fmt.Errorf("failed to get quiet flag: %w", err)
		}
		m, err := mirfile.Load(args[0])
		if err != nil {
			return err
		}
		if err := mir.Validate(m); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		if err := mirfile.Save(args[1], m); err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bodies)\n", args[1], len(m.Bodies))
		}
		return nil
	},
}
