package trace

import "time"

// Kind tells span boundaries from instant events.
type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindPoint:
		return "point"
	}
	return "unknown"
}

// marker is the text-format glyph for k.
func (k Kind) marker() string {
	switch k {
	case KindBegin:
		return ">"
	case KindEnd:
		return "<"
	}
	return "."
}

// Scope is the granularity of an event, coarsest first.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one command or one input file
	ScopePass                    // load, validate, check, report
	ScopeModule                  // a MIR module
	ScopeBody                    // a function body
	ScopeBlock                   // a basic block
)

var scopeNames = [...]string{"", "driver", "pass", "module", "body", "block"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && s != 0 {
		return scopeNames[s]
	}
	return "unknown"
}

// Attr is a key/value pair attached to an end or point event.
type Attr struct {
	Key   string
	Value string
}

// Event is one record handed to a Tracer. Seq and Elapsed are filled in
// by the tracer.
type Event struct {
	Time    time.Time
	Elapsed time.Duration
	Seq     uint64
	Kind    Kind
	Scope   Scope
	Span    uint64
	Parent  uint64
	Name    string
	Detail  string
	Attrs   []Attr
}
