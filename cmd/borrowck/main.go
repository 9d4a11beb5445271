package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"borrowck/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "borrowck",
	Short: "Ownership and borrow checker for MIR modules",
	Long: `borrowck checks lowered MIR modules for use-after-move, double drops,
use-after-drop, conflicting borrows, moves out of borrowed values and
undeclared lifetimes in bounds`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errDiagnostics signals that diagnostics were printed and the process
// must fail without printing anything else.
var errDiagnostics = errors.New("diagnostics reported")

// main registers subcommands and persistent flags and executes the root
// command. Any failure exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show per file (0=unlimited)")
	flags.String("config", "", "path to borrowck.toml (default: nearest one above the working directory)")
	flags.String("format", "pretty", "diagnostic output format (pretty|short|json)")
	flags.Int("jobs", 0, "max parallel workers (0=auto)")
	flags.String("ui", "off", "progress view (auto|on|off)")
	flags.Bool("no-cache", false, "ignore the result cache even when borrowck.toml enables it")
	flags.String("trace", "", "write trace events to this file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|phase|detail|debug)")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintf(os.Stderr, "borrowck: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
