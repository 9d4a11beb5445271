package mirfile_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"borrowck/internal/mir"
	"borrowck/internal/mirfile"
)

const tomlModule = `
name = "demo"

[[body]]
name = "consume"
params = ["Point"]
return = "()"
lifetimes = ["'a"]
bounds = ["'a: 'static"]

[[body.local]]
type = "()"

[[body.local]]
name = "p"
type = "Point"

[[body.local]]
name = "r"
type = "&'a Point"
mut = true

[[body.block]]
stmts = ["_2 = &_1", "drop(_1)"]
term = "goto -> done"

[[body.block]]
name = "done"
stmts = ["_0 = const ()"]
term = "return"
`

const yamlModule = `
name: demo
bodies:
  - name: consume
    params: ["Point"]
    return: "()"
    lifetimes: ["'a"]
    bounds: ["'a: 'static"]
    locals:
      - type: "()"
      - name: p
        type: Point
      - name: r
        type: "&'a Point"
        mut: true
    blocks:
      - stmts: ["_2 = &_1", "drop(_1)"]
        term: goto -> done
      - name: done
        stmts: ["_0 = const ()"]
        term: return
`

func dump(t *testing.T, m *mir.Module) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, mir.DumpModule(&buf, m))
	return buf.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDecodeTOML(t *testing.T) {
	m, err := mirfile.DecodeTOML(strings.NewReader(tomlModule))
	require.NoError(t, err)
	require.Len(t, m.Bodies, 1)

	b := m.Bodies[0]
	assert.Equal(t, "demo", m.Name)
	assert.Equal(t, "consume", b.Name)
	assert.Equal(t, []string{"a"}, b.LifetimeParams)
	assert.Equal(t, []mir.LifetimeBound{{Name: "a", Outlives: "static"}}, b.LifetimeBounds)
	require.Len(t, b.Locals, 3)
	assert.True(t, b.Locals[2].Mutable)
	assert.Equal(t, "done", b.Blocks[1].Name)
	assert.Equal(t, mir.BlockID(1), b.Blocks[0].Term.Goto.Target)
	assert.NoError(t, mir.ValidateBody(b))
}

func TestTOMLAndYAMLAgree(t *testing.T) {
	fromTOML, err := mirfile.DecodeTOML(strings.NewReader(tomlModule))
	require.NoError(t, err)
	fromYAML, err := mirfile.DecodeYAML(strings.NewReader(yamlModule))
	require.NoError(t, err)
	assert.Equal(t, dump(t, fromTOML), dump(t, fromYAML))
}

func TestMsgpackRoundTrip(t *testing.T) {
	m, err := mirfile.DecodeTOML(strings.NewReader(tomlModule))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "demo.mirpack")
	require.NoError(t, mirfile.Save(path, m))
	back, err := mirfile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, dump(t, m), dump(t, back))
}

func TestMsgpackSchemaMismatch(t *testing.T) {
	data, err := msgpack.Marshal(&struct {
		Schema uint16
		Module *mir.Module
	}{Schema: 7, Module: &mir.Module{Name: "x"}})
	require.NoError(t, err)

	_, err = mirfile.DecodeMsgpack(bytes.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "msgpack schema 7")
}

func TestReadDefaultsNameToFileBase(t *testing.T) {
	src := strings.Replace(tomlModule, `name = "demo"`, "", 1)
	m, err := mirfile.Read("dir/sample.toml", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, "sample", m.Name)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"unknown_ext", "m.txt", "", "unknown MIR file format"},
		{"toml_without_bodies", "m.toml", `name = "x"`, "no [[body]] tables"},
		{"toml_unknown_key", "m.toml", "[[body]]\nname = \"f\"\ncolour = 1\n", "unknown key"},
		{"yaml_empty", "m.yaml", "", "empty document"},
		{"yaml_unknown_field", "m.yml", "bodies:\n  - nom: f\n", "nom"},
		{"missing_terminator", "m.toml", "[[body]]\nname = \"f\"\n[[body.block]]\nstmts = []\n", "bb0: missing terminator"},
		{"bad_type", "m.toml", "[[body]]\nname = \"f\"\n[[body.local]]\ntype = \"&\"\n", "local _0 type"},
		{"bad_msgpack", "m.mp", "not msgpack", "m.mp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := mirfile.Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := mirfile.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]mirfile.Format{
		"a.toml":    mirfile.FormatTOML,
		"a.YAML":    mirfile.FormatYAML,
		"a.yml":     mirfile.FormatYAML,
		"a.mirpack": mirfile.FormatMsgpack,
		"a.mp":      mirfile.FormatMsgpack,
	}
	for path, want := range tests {
		got, err := mirfile.DetectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := mirfile.DetectFormat("a.json")
	assert.ErrorIs(t, err, mirfile.ErrUnknownFormat)
	assert.Equal(t, "msgpack", mirfile.FormatMsgpack.String())
}

func TestNormalizedIdentifiers(t *testing.T) {
	// e followed by a combining acute accent
	decomposed := "cafe\u0301"
	src := "[[body]]\nname = \"" + decomposed + "\"\n[[body.block]]\nterm = \"return\"\n"
	m, err := mirfile.DecodeTOML(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9", m.Bodies[0].Name)
}
