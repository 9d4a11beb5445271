package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"borrowck/internal/config"
)

// settings is borrowck.toml with command-line overrides applied.
type settings struct {
	cfg      config.Config
	cfgPath  string
	quiet    bool
	timings  bool
	noCache  bool
	useColor bool
	// useUI enables the progress view, which renders on stderr.
	useUI bool
}

// loadSettings reads the configuration file and lets every flag the
// user set explicitly override it.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Flags()
	explicit, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, path, err := config.Resolve(explicit, ".")
	if err != nil {
		return nil, err
	}

	overrideString := func(flag string, dst *string) error {
		if !flags.Changed(flag) {
			return nil
		}
		v, err := flags.GetString(flag)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", flag, err)
		}
		*dst = v
		return nil
	}
	overrideInt := func(flag string, dst *int) error {
		if !flags.Changed(flag) {
			return nil
		}
		v, err := flags.GetInt(flag)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", flag, err)
		}
		*dst = v
		return nil
	}
	for _, err := range []error{
		overrideString("color", &cfg.Output.Color),
		overrideString("format", &cfg.Output.Format),
		overrideString("ui", &cfg.Output.UI),
		overrideString("trace", &cfg.Trace.Output),
		overrideString("trace-level", &cfg.Trace.Level),
		overrideInt("jobs", &cfg.Check.Jobs),
		overrideInt("max-diagnostics", &cfg.Check.MaxDiagnostics),
	} {
		if err != nil {
			return nil, err
		}
	}
	// --trace without a level means phase tracing
	if flags.Changed("trace") && !flags.Changed("trace-level") && cfg.Trace.Level == "off" {
		cfg.Trace.Level = "phase"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &settings{cfg: cfg, cfgPath: path}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.noCache, err = flags.GetBool("no-cache"); err != nil {
		return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	colorMode, err := parseTristate("color", cfg.Output.Color, triAuto)
	if err != nil {
		return nil, err
	}
	uiMode, err := parseTristate("ui", cfg.Output.UI, triOff)
	if err != nil {
		return nil, err
	}
	// NO_COLOR and friends only veto the automatic choice
	s.useColor = colorMode.on(os.Stdout) && (colorMode == triOn || !color.NoColor)
	s.useUI = uiMode.on(os.Stderr) && !s.quiet
	color.NoColor = !s.useColor
	return s, nil
}
