package mir

// blockLiveness holds use/def/in/out sets for liveness analysis.
type blockLiveness struct {
	use *LocalSet
	def *LocalSet
	in  *LocalSet
	out *LocalSet
}

// Liveness is the result of backward liveness over a body. A local is
// live before a location when some path from there reads it before
// writing it.
type Liveness struct {
	blocks []blockLiveness
	before [][]*LocalSet
	read   LocalSet
}

// ComputeLiveness runs the analysis to a fixpoint and records the live
// set in front of every statement and terminator.
func ComputeLiveness(b *Body, g *CFG) *Liveness {
	l := &Liveness{
		blocks: make([]blockLiveness, len(b.Blocks)),
		before: make([][]*LocalSet, len(b.Blocks)),
	}
	for i := range b.Blocks {
		bb := &b.Blocks[i]
		info := &l.blocks[i]
		info.in = &LocalSet{}
		info.out = &LocalSet{}
		info.use, info.def = computeBlockUseDef(bb)
		for j := range bb.Statements {
			StatementReads(&bb.Statements[j], l.read.Add)
		}
		TerminatorReads(&bb.Term, l.read.Add)
	}

	changed := true
	for changed {
		changed = false
		for i := len(b.Blocks) - 1; i >= 0; i-- {
			info := &l.blocks[i]
			out := &LocalSet{}
			for _, succ := range g.Succs[i] {
				out.UnionWith(l.blocks[succ].in)
			}
			in := out.Clone()
			in.DifferenceWith(info.def)
			in.UnionWith(info.use)
			if !out.Equals(info.out) || !in.Equals(info.in) {
				info.out = out
				info.in = in
				changed = true
			}
		}
	}

	for i := range b.Blocks {
		l.before[i] = computeStatementLiveness(&b.Blocks[i], l.blocks[i].out)
	}
	return l
}

// computeStatementLiveness walks a block backwards from its live-out
// set. Index len(Statements) is the terminator.
func computeStatementLiveness(bb *BasicBlock, out *LocalSet) []*LocalSet {
	sets := make([]*LocalSet, len(bb.Statements)+1)
	live := out.Clone()
	step := func(reads, writes func(func(LocalID))) {
		writes(func(id LocalID) { live.bits.Remove(int(id)) })
		reads(live.Add)
	}
	step(
		func(fn func(LocalID)) { TerminatorReads(&bb.Term, fn) },
		func(fn func(LocalID)) { TerminatorWrites(&bb.Term, fn) },
	)
	sets[len(bb.Statements)] = live.Clone()
	for i := len(bb.Statements) - 1; i >= 0; i-- {
		st := &bb.Statements[i]
		step(
			func(fn func(LocalID)) { StatementReads(st, fn) },
			func(fn func(LocalID)) { StatementWrites(st, fn) },
		)
		sets[i] = live.Clone()
	}
	return sets
}

// LiveBefore reports whether id is live immediately before loc.
func (l *Liveness) LiveBefore(loc Location, id LocalID) bool {
	if loc.Block < 0 || int(loc.Block) >= len(l.before) {
		return false
	}
	sets := l.before[loc.Block]
	if loc.Statement < 0 || loc.Statement >= len(sets) {
		return false
	}
	return sets[loc.Statement].Has(id)
}

// LiveIn returns the set live on entry to a block.
func (l *Liveness) LiveIn(id BlockID) *LocalSet { return l.blocks[id].in }

// IsRead reports whether id is read anywhere in the body.
func (l *Liveness) IsRead(id LocalID) bool { return l.read.Has(id) }

func computeBlockUseDef(bb *BasicBlock) (use, def *LocalSet) {
	use = &LocalSet{}
	def = &LocalSet{}
	if bb == nil {
		return use, def
	}
	addUse := func(id LocalID) {
		if id == NoLocalID || def.Has(id) {
			return
		}
		use.Add(id)
	}
	addDef := func(id LocalID) {
		if id == NoLocalID {
			return
		}
		def.Add(id)
	}
	for i := range bb.Statements {
		StatementReads(&bb.Statements[i], addUse)
		StatementWrites(&bb.Statements[i], addDef)
	}
	TerminatorReads(&bb.Term, addUse)
	TerminatorWrites(&bb.Term, addDef)
	return use, def
}

// StatementReads calls fn for every local the statement reads. Taking
// a reference and dropping both count as reads.
func StatementReads(st *Statement, fn func(LocalID)) {
	switch st.Kind {
	case StatementAssign:
		RValueReads(&st.Assign.Src, fn)
	case StatementDrop:
		fn(st.Drop.Place.Local)
	}
}

// StatementWrites calls fn for every local the statement overwrites.
func StatementWrites(st *Statement, fn func(LocalID)) {
	switch st.Kind {
	case StatementAssign:
		fn(st.Assign.Dst.Local)
	case StatementDrop:
		fn(st.Drop.Place.Local)
	}
}

func RValueReads(rv *RValue, fn func(LocalID)) {
	switch rv.Kind {
	case RValueUse:
		operandReads(&rv.Use, fn)
	case RValueRef:
		fn(rv.Ref.Local)
	case RValueBinaryOp:
		operandReads(&rv.Binary.Left, fn)
		operandReads(&rv.Binary.Right, fn)
	case RValueUnaryOp:
		operandReads(&rv.Unary.Value, fn)
	case RValueAggregate:
		for i := range rv.Aggregate.Elems {
			operandReads(&rv.Aggregate.Elems[i], fn)
		}
	case RValueCast:
		operandReads(&rv.Cast.Value, fn)
	case RValueLen:
		fn(rv.Len.Local)
	case RValueDiscriminant:
		fn(rv.Discriminant.Local)
	}
}

func TerminatorReads(t *Terminator, fn func(LocalID)) {
	switch t.Kind {
	case TermSwitchInt:
		operandReads(&t.SwitchInt.Discr, fn)
	case TermCall:
		for i := range t.Call.Args {
			operandReads(&t.Call.Args[i], fn)
		}
	case TermAssert:
		operandReads(&t.Assert.Cond, fn)
	case TermReturn:
		fn(ReturnLocal)
	}
}

func TerminatorWrites(t *Terminator, fn func(LocalID)) {
	if t.Kind == TermCall && t.Call.HasDst {
		fn(t.Call.Dst.Local)
	}
}

func operandReads(op *Operand, fn func(LocalID)) {
	if p, ok := op.Reads(); ok {
		fn(p.Local)
	}
}
