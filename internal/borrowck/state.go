package borrowck

import (
	"slices"

	"borrowck/internal/mir"
)

// ownership is the lattice tag of a local. Join keeps the more
// restrictive tag: Moved > Dropped > Uninitialized > Owned.
type ownership uint8

const (
	owned ownership = iota
	uninitialized
	dropped
	moved
)

func (o ownership) String() string {
	switch o {
	case owned:
		return "owned"
	case uninitialized:
		return "uninitialized"
	case dropped:
		return "dropped"
	case moved:
		return "moved"
	default:
		return "?"
	}
}

type BorrowKind uint8

const (
	Shared BorrowKind = iota
	Exclusive
)

func (k BorrowKind) String() string {
	if k == Exclusive {
		return "exclusive"
	}
	return "shared"
}

// borrow is an active reference to a local, created at `at` and stored
// in `holder`.
type borrow struct {
	kind   BorrowKind
	at     mir.Location
	holder mir.LocalID
}

func compareBorrows(a, b borrow) int {
	switch {
	case a.at.Less(b.at):
		return -1
	case b.at.Less(a.at):
		return 1
	case a.holder != b.holder:
		return int(a.holder) - int(b.holder)
	default:
		return int(a.kind) - int(b.kind)
	}
}

// localState tracks one local. at is where the tag was entered and is
// meaningful for moved and dropped.
type localState struct {
	tag     ownership
	at      mir.Location
	borrows []borrow
}

// state is the per-local lattice value at one program point.
type state struct {
	locals []localState
}

// entryState is the state on entry to the body: the return slot and
// non-parameter locals are uninitialized, parameters are owned.
func entryState(body *mir.Body) state {
	s := state{locals: make([]localState, len(body.Locals))}
	for i := range s.locals {
		if body.IsParam(mir.LocalID(i)) { //nolint:gosec // bounded by local count
			s.locals[i].tag = owned
		} else {
			s.locals[i].tag = uninitialized
		}
	}
	return s
}

func (s state) clone() state {
	out := state{locals: make([]localState, len(s.locals))}
	for i, l := range s.locals {
		out.locals[i] = localState{tag: l.tag, at: l.at, borrows: slices.Clone(l.borrows)}
	}
	return out
}

func (s state) equal(o state) bool {
	if len(s.locals) != len(o.locals) {
		return false
	}
	for i := range s.locals {
		a, b := &s.locals[i], &o.locals[i]
		if a.tag != b.tag || a.at != b.at {
			return false
		}
		if !slices.Equal(a.borrows, b.borrows) {
			return false
		}
	}
	return true
}

// join merges two states at a control-flow merge. For each local the
// more restrictive tag wins; on a tie the left location is kept. Borrow
// sets are unioned.
func join(a, b state) state {
	out := state{locals: make([]localState, len(a.locals))}
	for i := range a.locals {
		out.locals[i] = joinLocal(&a.locals[i], &b.locals[i])
	}
	return out
}

func joinLocal(a, b *localState) localState {
	out := localState{tag: a.tag, at: a.at}
	if b.tag > a.tag {
		out.tag, out.at = b.tag, b.at
	}
	out.borrows = unionBorrows(a.borrows, b.borrows)
	return out
}

func unionBorrows(a, b []borrow) []borrow {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make([]borrow, 0, len(a)+len(b))
	out = append(out, a...)
	for _, br := range b {
		if !slices.Contains(out, br) {
			out = append(out, br)
		}
	}
	slices.SortFunc(out, compareBorrows)
	return out
}

// addBorrow inserts a record keeping the set ordered.
func (l *localState) addBorrow(br borrow) {
	if slices.Contains(l.borrows, br) {
		return
	}
	l.borrows = append(l.borrows, br)
	slices.SortFunc(l.borrows, compareBorrows)
}

// releaseHolder drops every record stored in holder.
func (s *state) releaseHolder(holder mir.LocalID) {
	for i := range s.locals {
		l := &s.locals[i]
		if len(l.borrows) == 0 {
			continue
		}
		l.borrows = slices.DeleteFunc(l.borrows, func(br borrow) bool { return br.holder == holder })
	}
}
