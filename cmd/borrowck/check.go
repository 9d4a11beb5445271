package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"borrowck/internal/diagfmt"
	"borrowck/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory>...",
	Short: "Borrow-check MIR modules",
	Long: `Load each MIR module (.toml, .yaml, .mirpack), validate its bodies and
run the borrow checker over them. Directories are searched for MIR files.
Exits with status 1 when any error is reported.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cleanupTrace, err := setupTracing(cmd, s)
	if err != nil {
		return err
	}
	defer cleanupTrace()
	cleanupProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanupProf()

	paths, err := driver.ExpandPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no MIR files found in %v", args)
	}

	opts := driver.Options{
		MaxDiagnostics: s.cfg.Check.MaxDiagnostics,
		Jobs:           s.cfg.Check.Jobs,
	}
	if s.cfg.Cache.Enabled && !s.noCache {
		cache, cacheErr := driver.OpenDiskCache(s.cfg.Cache.Dir, "borrowck")
		if cacheErr != nil {
			if !s.quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: result cache disabled: %v\n", cacheErr)
			}
		} else {
			opts.Cache = cache
		}
	}

	var results []*driver.Result
	if s.useUI {
		results, err = runCheckWithUI(cmd.Context(), "borrowck check", paths, opts)
	} else {
		results, err = driver.CheckFiles(cmd.Context(), paths, &opts)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := printResults(out, results, s); err != nil {
		return err
	}
	if s.timings {
		if err := driver.WriteTimings(cmd.ErrOrStderr(), results, s.cfg.Output.Format == "json"); err != nil {
			return err
		}
	}

	failed := 0
	for _, res := range results {
		if res.HasErrors() {
			failed++
		}
	}
	if failed > 0 {
		return errDiagnostics
	}
	if !s.quiet && s.cfg.Output.Format == "pretty" {
		fmt.Fprintf(out, "checked %d file(s), no errors\n", len(results))
	}
	return nil
}

func printResults(out io.Writer, results []*driver.Result, s *settings) error {
	multi := len(results) > 1
	switch s.cfg.Output.Format {
	case "json":
		docs := make([]diagfmt.DiagnosticsOutput, 0, len(results))
		for _, res := range results {
			docs = append(docs, diagfmt.BuildDiagnosticsOutput(res.Bag, diagfmt.JSONOpts{
				Max:          s.cfg.Check.MaxDiagnostics,
				IncludeNotes: true,
				Source:       res.Path,
			}))
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if !multi {
			return enc.Encode(docs[0])
		}
		return enc.Encode(docs)
	case "short":
		for _, res := range results {
			if err := diagfmt.Short(out, res.Bag, diagfmt.ShortOpts{Color: s.useColor, Notes: !s.quiet}); err != nil {
				return err
			}
		}
		return nil
	default:
		first := true
		for _, res := range results {
			if res.Bag.Len() == 0 && res.Bag.Dropped() == 0 {
				continue
			}
			if !first {
				fmt.Fprintln(out)
			}
			first = false
			opts := diagfmt.PrettyOpts{Color: s.useColor, ShowNotes: true, ShowBody: !s.quiet}
			if multi {
				opts.Source = res.Path
			}
			if err := diagfmt.Pretty(out, res.Bag, opts); err != nil {
				return err
			}
		}
		return nil
	}
}
