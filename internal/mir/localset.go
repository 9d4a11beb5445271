package mir

import "golang.org/x/tools/container/intsets"

// LocalSet is a sparse set of locals. Copy it with Clone, never by
// assignment.
type LocalSet struct {
	bits intsets.Sparse
}

func (s *LocalSet) Add(id LocalID) { s.bits.Insert(int(id)) }

func (s *LocalSet) Has(id LocalID) bool { return s.bits.Has(int(id)) }

func (s *LocalSet) Len() int { return s.bits.Len() }

func (s *LocalSet) Clone() *LocalSet {
	out := &LocalSet{}
	out.bits.Copy(&s.bits)
	return out
}

// UnionWith adds every element of o and reports whether s grew.
func (s *LocalSet) UnionWith(o *LocalSet) bool { return s.bits.UnionWith(&o.bits) }

func (s *LocalSet) DifferenceWith(o *LocalSet) { s.bits.DifferenceWith(&o.bits) }

func (s *LocalSet) Equals(o *LocalSet) bool { return s.bits.Equals(&o.bits) }

// Locals returns the members in ascending order.
func (s *LocalSet) Locals() []LocalID {
	ints := s.bits.AppendTo(nil)
	out := make([]LocalID, len(ints))
	for i, v := range ints {
		out[i] = LocalID(v) //nolint:gosec // ids come from LocalID values
	}
	return out
}
