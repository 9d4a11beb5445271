package driver_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// twiceModule has one body that drops its parameter twice and one that
// is clean.
const twiceModule = `
name = "fixture"

[[body]]
name = "twice"
params = ["S"]

[[body.local]]
type = "()"

[[body.local]]
name = "s"
type = "S"

[[body.block]]
stmts = ["drop(_1)", "drop(_1)"]
term = "return"

[[body]]
name = "once"
params = ["S"]

[[body.local]]
type = "()"

[[body.local]]
name = "s"
type = "S"

[[body.block]]
stmts = ["drop(_1)"]
term = "return"
`

// brokenModule adds a body that jumps to a block that does not exist.
const brokenModule = twiceModule + `
[[body]]
name = "bad"

[[body.local]]
type = "()"

[[body.block]]
term = "goto -> bb5"
`

const cleanModule = `
[[body]]
name = "main"

[[body.local]]
type = "()"

[[body.block]]
stmts = ["_0 = const ()"]
term = "return"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(strings.TrimLeft(content, "\n")), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
