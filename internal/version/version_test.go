package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColored_PlainWhenColorDisabled(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3-rc1"
	if got := Colored(); got != "1.2.3-rc1" {
		t.Errorf("Colored() = %q, want %q", got, "1.2.3-rc1")
	}
	Version = "nightly"
	if got := Colored(); got != "nightly" {
		t.Errorf("Colored() = %q, want unchanged", got)
	}
}

func TestDescribe_OptionalFields(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	}()

	Version = "1.2.3"
	GitCommit = ""
	BuildDate = ""
	if got := Describe(false); got != "borrowck 1.2.3\n" {
		t.Errorf("Describe = %q", got)
	}

	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"
	got := Describe(false)
	if !strings.Contains(got, "commit: abc123def456") {
		t.Errorf("missing commit line in %q", got)
	}
	if !strings.Contains(got, "built:  2024-01-15T10:30:00Z") {
		t.Errorf("missing build date line in %q", got)
	}
}
