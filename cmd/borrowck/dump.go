package main

import (
	"github.com/spf13/cobra"

	"borrowck/internal/mir"
	"borrowck/internal/mirfile"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Print a MIR module in textual form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := mirfile.Load(args[0])
		if err != nil {
			return err
		}
		return mir.DumpModule(cmd.OutOrStdout(), m)
	},
}
