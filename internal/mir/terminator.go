package mir

type TermKind uint8

const (
	TermNone TermKind = iota
	TermGoto
	TermSwitchInt
	TermReturn
	TermUnreachable
	TermCall
	TermAssert
)

type Terminator struct {
	Kind TermKind

	Goto      GotoTerm
	SwitchInt SwitchIntTerm
	Call      CallTerm
	Assert    AssertTerm
}

type GotoTerm struct {
	Target BlockID
}

type SwitchCase struct {
	Value  int64
	Target BlockID
}

type SwitchIntTerm struct {
	Discr     Operand
	Cases     []SwitchCase
	Otherwise BlockID
}

type CallTerm struct {
	Func   string
	Args   []Operand
	HasDst bool
	Dst    Place
	Target BlockID
}

type AssertTerm struct {
	Cond     Operand
	Expected bool
	Msg      string
	Target   BlockID
}

func Goto(target BlockID) Terminator {
	return Terminator{Kind: TermGoto, Goto: GotoTerm{Target: target}}
}

func Return() Terminator { return Terminator{Kind: TermReturn} }

func Unreachable() Terminator { return Terminator{Kind: TermUnreachable} }

// Successors lists the blocks control may reach from t: every switch
// case in order, then the fallback.
func (t *Terminator) Successors() []BlockID {
	switch t.Kind {
	case TermGoto:
		return []BlockID{t.Goto.Target}
	case TermSwitchInt:
		out := make([]BlockID, 0, len(t.SwitchInt.Cases)+1)
		for _, c := range t.SwitchInt.Cases {
			out = append(out, c.Target)
		}
		return append(out, t.SwitchInt.Otherwise)
	case TermCall:
		return []BlockID{t.Call.Target}
	case TermAssert:
		return []BlockID{t.Assert.Target}
	default:
		return nil
	}
}
