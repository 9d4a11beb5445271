package mirfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"borrowck/internal/mir"
)

// Format identifies an on-disk MIR encoding.
type Format uint8

const (
	FormatTOML Format = iota
	FormatYAML
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatMsgpack:
		return "msgpack"
	default:
		return "unknown"
	}
}

// packSchemaVersion is bumped whenever the binary layout of mir types
// changes.
const packSchemaVersion uint16 = 1

type packEnvelope struct {
	Schema uint16
	Module *mir.Module
}

// ErrUnknownFormat is returned for file extensions Load does not know.
var ErrUnknownFormat = errors.New("unknown MIR file format")

// DetectFormat picks the encoding from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".mirpack", ".msgpack", ".mp":
		return FormatMsgpack, nil
	}
	return 0, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

// Load reads a module from path, choosing the decoder by extension.
func Load(path string) (*mir.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Read(path, data)
}

// Read decodes data that was read from path. When the file does not
// name the module, its base name is used.
func Read(path string, data []byte) (*mir.Module, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	m, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

// Decode reads one module in the given format.
func Decode(r io.Reader, format Format) (*mir.Module, error) {
	switch format {
	case FormatTOML:
		return DecodeTOML(r)
	case FormatYAML:
		return DecodeYAML(r)
	case FormatMsgpack:
		return DecodeMsgpack(r)
	default:
		return nil, ErrUnknownFormat
	}
}

func DecodeTOML(r io.Reader) (*mir.Module, error) {
	var f File
	meta, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, err
	}
	if !meta.IsDefined("body") {
		return nil, errors.New("no [[body]] tables")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return Convert(&f)
}

func DecodeYAML(r io.Reader) (*mir.Module, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}
	return Convert(&f)
}

func DecodeMsgpack(r io.Reader) (*mir.Module, error) {
	var env packEnvelope
	if err := msgpack.NewDecoder(r).Decode(&env); err != nil {
		return nil, err
	}
	if env.Schema != packSchemaVersion {
		return nil, fmt.Errorf("msgpack schema %d, want %d", env.Schema, packSchemaVersion)
	}
	if env.Module == nil {
		return nil, errors.New("msgpack payload has no module")
	}
	return env.Module, nil
}

// EncodeMsgpack writes m in the binary form DecodeMsgpack reads.
func EncodeMsgpack(w io.Writer, m *mir.Module) error {
	return msgpack.NewEncoder(w).Encode(&packEnvelope{Schema: packSchemaVersion, Module: m})
}

// Save writes m to path as msgpack, replacing the file atomically.
func Save(path string, m *mir.Module) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".mirpack-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if err = EncodeMsgpack(tmp, m); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
