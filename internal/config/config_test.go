package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"borrowck/internal/config"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100, cfg.Check.MaxDiagnostics)
	assert.Equal(t, "pretty", cfg.Output.Format)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[check]
jobs = 4

[output]
format = "json"

[trace]
level = "detail"
output = "trace.ndjson"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Check.Jobs)
	assert.Equal(t, 100, cfg.Check.MaxDiagnostics, "unset keys keep defaults")
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.Equal(t, "detail", cfg.Trace.Level)
	assert.Equal(t, "trace.ndjson", cfg.Trace.Output)
}

func TestCacheTableEnablesCache(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(writeManifest(t, dir, "[cache]\ndir = \"/tmp/bc\"\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "/tmp/bc", cfg.Cache.Dir)

	cfg, err = config.Load(writeManifest(t, dir, "[cache]\nenabled = false\n"))
	require.NoError(t, err)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[check\n", "failed to parse TOML"},
		{"unknown_key", "[check]\nthreads = 2\n", `unknown key "check.threads"`},
		{"bad_format", "[output]\nformat = \"xml\"\n", "output.format"},
		{"negative_jobs", "[check]\njobs = -1\n", "check.jobs must be >= 0"},
		{"bad_level", "[trace]\nlevel = \"loud\"\n", "trace.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeManifest(t, t.TempDir(), tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateReportsEverything(t *testing.T) {
	cfg := config.Default()
	cfg.Check.MaxDiagnostics = -3
	cfg.Output.Color = "sometimes"
	cfg.Output.UI = "maybe"
	err := cfg.Validate()
	require.Error(t, err)
	for _, key := range []string{"check.max_diagnostics", "output.color", "output.ui"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeManifest(t, root, "")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, ok, err := config.Find(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[check]\njobs = 2\n")

	cfg, path, err := config.Resolve("", root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, config.FileName), path)
	assert.Equal(t, 2, cfg.Check.Jobs)

	explicit := filepath.Join(t.TempDir(), "other.toml")
	require.NoError(t, os.WriteFile(explicit, []byte("[check]\njobs = 8\n"), 0o600))
	cfg, path, err = config.Resolve(explicit, root)
	require.NoError(t, err)
	assert.Equal(t, explicit, path)
	assert.Equal(t, 8, cfg.Check.Jobs)

	_, _, err = config.Resolve(filepath.Join(root, "missing.toml"), root)
	assert.Error(t, err)
}
