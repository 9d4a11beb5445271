package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Tracer receives events. Emit must be safe for concurrent use.
type Tracer interface {
	Emit(ev *Event)
	Level() Level
	// Close flushes pending output and releases the sink.
	Close() error
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)  {}
func (nopTracer) Level() Level { return LevelOff }
func (nopTracer) Close() error { return nil }

// Nop discards everything.
var Nop Tracer = nopTracer{}

// enabled reports whether t emits events of scope.
func enabled(t Tracer, scope Scope) bool {
	return t != nil && t.Level().ShouldEmit(scope)
}

// Format selects the stream encoding.
type Format uint8

const (
	FormatAuto Format = iota
	FormatText
	FormatNDJSON
)

// Config describes the tracer built by New.
type Config struct {
	Level  Level
	Format Format
	// Output wins over OutputPath when set.
	Output io.Writer
	// OutputPath is a file name; "" and "-" mean stderr.
	OutputPath string
}

// New returns Nop for LevelOff and a stream tracer otherwise. FormatAuto
// picks NDJSON for .ndjson and .jsonl paths.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	format := cfg.Format
	if format == FormatAuto {
		switch filepath.Ext(cfg.OutputPath) {
		case ".ndjson", ".jsonl":
			format = FormatNDJSON
		default:
			format = FormatText
		}
	}
	w := cfg.Output
	if w == nil {
		if cfg.OutputPath == "" || cfg.OutputPath == "-" {
			w = os.Stderr
		} else {
			f, err := os.Create(cfg.OutputPath)
			if err != nil {
				return nil, fmt.Errorf("open trace output: %w", err)
			}
			w = f
		}
	}
	return NewStreamTracer(w, cfg.Level, format), nil
}
