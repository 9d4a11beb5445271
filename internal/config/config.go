// Package config loads the optional borrowck.toml driver settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest looked up from the working directory upwards.
const FileName = "borrowck.toml"

type Config struct {
	Check  CheckConfig  `toml:"check"`
	Output OutputConfig `toml:"output"`
	Trace  TraceConfig  `toml:"trace"`
	Cache  CacheConfig  `toml:"cache"`
}

type CheckConfig struct {
	Jobs           int `toml:"jobs"`
	MaxDiagnostics int `toml:"max_diagnostics"`
}

type OutputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
	UI     string `toml:"ui"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

var (
	formats    = []string{"pretty", "short", "json"}
	tristate   = []string{"auto", "on", "off"}
	traceLevel = []string{"off", "phase", "detail", "debug"}
)

// Default returns the settings used when no manifest exists.
func Default() Config {
	return Config{
		Check:  CheckConfig{Jobs: 0, MaxDiagnostics: 100},
		Output: OutputConfig{Format: "pretty", Color: "auto", UI: "off"},
		Trace:  TraceConfig{Level: "off", Output: "-"},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Check.Jobs < 0 {
		errs = append(errs, fmt.Errorf("check.jobs must be >= 0, got %d", c.Check.Jobs))
	}
	if c.Check.MaxDiagnostics < 0 {
		errs = append(errs, fmt.Errorf("check.max_diagnostics must be >= 0, got %d", c.Check.MaxDiagnostics))
	}
	oneOf := func(key, value string, allowed []string) {
		if !slices.Contains(allowed, value) {
			errs = append(errs, fmt.Errorf("%s: invalid value %q (expected one of %v)", key, value, allowed))
		}
	}
	oneOf("output.format", c.Output.Format, formats)
	oneOf("output.color", c.Output.Color, tristate)
	oneOf("output.ui", c.Output.UI, tristate)
	oneOf("trace.level", c.Trace.Level, traceLevel)
	return errors.Join(errs...)
}

// Find walks up from startDir looking for borrowck.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path over the defaults. Keys the file leaves out keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if meta.IsDefined("cache") && !meta.IsDefined("cache", "enabled") {
		cfg.Cache.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads the explicit path when given, otherwise the nearest
// manifest above startDir, otherwise the defaults. The returned path is
// empty when no file was read.
func Resolve(explicit, startDir string) (Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}
