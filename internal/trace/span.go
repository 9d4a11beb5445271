package trace

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"
)

var spanIDs atomic.Uint64

// Span is an open begin/end pair. A Span that is not emitted (nil, or
// filtered by level) accepts every call and does nothing.
type Span struct {
	tracer Tracer
	id     uint64
	parent uint64
	scope  Scope
	name   string
	attrs  []Attr
}

// Begin opens a span under parent (0 for a root).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !enabled(t, scope) {
		return nil
	}
	s := &Span{tracer: t, id: spanIDs.Add(1), parent: parent, scope: scope, name: name}
	t.Emit(&Event{Time: time.Now(), Kind: KindBegin, Scope: scope, Span: s.id, Parent: parent, Name: name})
	return s
}

// Enter opens a span with the tracer and parent span found in ctx and
// returns a context carrying the new span.
func Enter(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	s := Begin(FromContext(ctx), scope, name, SpanFromContext(ctx).ID())
	if s == nil {
		return ctx, nil
	}
	return context.WithValue(ctx, spanKey{}, s), s
}

// Attr records key=value for the end event. Setting a key twice keeps
// the last value.
func (s *Span) Attr(key string, value any) *Span {
	if s == nil {
		return nil
	}
	v := fmt.Sprint(value)
	for i := range s.attrs {
		if s.attrs[i].Key == key {
			s.attrs[i].Value = v
			return s
		}
	}
	s.attrs = append(s.attrs, Attr{Key: key, Value: v})
	return s
}

// End closes the span. Attributes are emitted sorted by key.
func (s *Span) End(detail string) {
	if s == nil {
		return
	}
	attrs := slices.SortedFunc(slices.Values(s.attrs), func(a, b Attr) int { return cmp.Compare(a.Key, b.Key) })
	s.tracer.Emit(&Event{Time: time.Now(), Kind: KindEnd, Scope: s.scope, Span: s.id, Parent: s.parent, Name: s.name, Detail: detail, Attrs: attrs})
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under s.
func (s *Span) Point(scope Scope, name, detail string) {
	if s == nil {
		return
	}
	Point(s.tracer, scope, name, s.id, detail)
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name string, parent uint64, detail string) {
	if !enabled(t, scope) {
		return
	}
	t.Emit(&Event{Time: time.Now(), Kind: KindPoint, Scope: scope, Span: spanIDs.Add(1), Parent: parent, Name: name, Detail: detail})
}

type (
	tracerKey struct{}
	spanKey   struct{}
)

// WithTracer attaches t to ctx; nil means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// SpanFromContext returns the innermost span opened with Enter, or nil.
func SpanFromContext(ctx context.Context) *Span {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(spanKey{}).(*Span)
	return s
}
