package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// StreamTracer writes every event as soon as it arrives. Sequence
// numbers and elapsed times are relative to the tracer.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
	start  time.Time
	seq    uint64
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{w: w, level: level, format: format, start: time.Now()}
}

func (t *StreamTracer) Level() Level { return t.level }

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	ev.Seq = t.seq
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	ev.Elapsed = ev.Time.Sub(t.start)

	var data []byte
	if t.format == FormatNDJSON {
		data = encodeNDJSON(ev)
	} else {
		data = encodeText(ev)
	}
	// a broken trace sink never fails the check
	_, _ = t.w.Write(data) //nolint:errcheck
}

// Close flushes buffered writers and closes files other than the
// standard streams.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if f, ok := t.w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return err
		}
	}
	if t.w == os.Stderr || t.w == os.Stdout {
		return nil
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// encodeText renders
//
//	seq  elapsed  <indent><marker> scope:name (detail) k=v k=v
func encodeText(ev *Event) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%5d %10.3fms ", ev.Seq, float64(ev.Elapsed)/float64(time.Millisecond))
	if ev.Scope > ScopeDriver {
		sb.WriteString(strings.Repeat("  ", int(ev.Scope-ScopeDriver)))
	}
	sb.WriteString(ev.Kind.marker())
	sb.WriteByte(' ')
	sb.WriteString(ev.Scope.String())
	sb.WriteByte(':')
	sb.WriteString(ev.Name)
	if ev.Detail != "" {
		sb.WriteString(" (" + ev.Detail + ")")
	}
	for _, a := range ev.Attrs {
		sb.WriteString(" " + a.Key + "=" + a.Value)
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}

type jsonEvent struct {
	Seq       uint64            `json:"seq"`
	ElapsedUS int64             `json:"elapsed_us"`
	Kind      string            `json:"kind"`
	Scope     string            `json:"scope"`
	Span      uint64            `json:"span"`
	Parent    uint64            `json:"parent,omitempty"`
	Name      string            `json:"name"`
	Detail    string            `json:"detail,omitempty"`
	Attrs     map[string]string `json:"attrs,omitempty"`
}

func encodeNDJSON(ev *Event) []byte {
	j := jsonEvent{
		Seq:       ev.Seq,
		ElapsedUS: ev.Elapsed.Microseconds(),
		Kind:      ev.Kind.String(),
		Scope:     ev.Scope.String(),
		Span:      ev.Span,
		Parent:    ev.Parent,
		Name:      ev.Name,
		Detail:    ev.Detail,
	}
	if len(ev.Attrs) > 0 {
		j.Attrs = make(map[string]string, len(ev.Attrs))
		for _, a := range ev.Attrs {
			j.Attrs[a.Key] = a.Value
		}
	}
	data, err := json.Marshal(j)
	if err != nil {
		return nil
	}
	return append(data, '\n')
}
