package borrowck

import "borrowck/internal/mir"

// transfer applies one block's statements and terminator to in. Errors
// go to c.emit only when emit is set; the fixpoint runs silently and a
// final pass reports.
func (c *checker) transfer(id mir.BlockID, in state, emit bool) state {
	s := in.clone()
	bb := &c.body.Blocks[id]
	c.emitting = emit
	defer func() { c.emitting = false }()

	for i := range bb.Statements {
		loc := mir.Location{Block: id, Statement: i}
		c.expire(&s, loc)
		c.statement(&s, &bb.Statements[i], loc)
	}
	loc := mir.Location{Block: id, Statement: len(bb.Statements)}
	c.expire(&s, loc)
	c.terminator(&s, &bb.Term, loc)
	return s
}

func (c *checker) statement(s *state, st *mir.Statement, loc mir.Location) {
	switch st.Kind {
	case mir.StatementAssign:
		c.assign(s, st.Assign.Dst, &st.Assign.Src, loc)
	case mir.StatementDrop:
		c.drop(s, st.Drop.Place.Local, loc)
	case mir.StatementNop:
	}
}

func (c *checker) assign(s *state, dst mir.Place, src *mir.RValue, loc mir.Location) {
	var pending *borrow
	var target mir.LocalID
	switch src.Kind {
	case mir.RValueUse:
		c.operand(s, &src.Use, loc)
	case mir.RValueRef:
		target = src.Ref.Local
		pending = c.borrow(s, target, dst.Local, loc)
	case mir.RValueBinaryOp:
		c.operand(s, &src.Binary.Left, loc)
		c.operand(s, &src.Binary.Right, loc)
	case mir.RValueUnaryOp:
		c.operand(s, &src.Unary.Value, loc)
	case mir.RValueAggregate:
		for i := range src.Aggregate.Elems {
			c.operand(s, &src.Aggregate.Elems[i], loc)
		}
	case mir.RValueCast:
		c.operand(s, &src.Cast.Value, loc)
	case mir.RValueLen:
		c.read(s, src.Len.Local, loc)
	case mir.RValueDiscriminant:
		c.read(s, src.Discriminant.Local, loc)
	}

	c.reinit(s, dst.Local, loc)
	if pending != nil {
		s.locals[target].addBorrow(*pending)
	}
}

// reinit makes dst freshly owned. Its old borrows die with the old
// value and anything dst used to hold is released.
func (c *checker) reinit(s *state, dst mir.LocalID, loc mir.Location) {
	l := &s.locals[dst]
	l.tag = owned
	l.at = loc
	l.borrows = nil
	s.releaseHolder(dst)
}

func (c *checker) operand(s *state, op *mir.Operand, loc mir.Location) {
	switch op.Kind {
	case mir.OperandCopy:
		c.read(s, op.Place.Local, loc)
	case mir.OperandMove:
		c.move(s, op.Place.Local, loc)
	case mir.OperandConst:
	}
}

// read checks a non-consuming use. Copy values are always readable;
// for the rest a moved or dropped source is an error and the state is
// left alone.
func (c *checker) read(s *state, id mir.LocalID, loc mir.Location) bool {
	if c.isCopy(id) {
		return true
	}
	l := &s.locals[id]
	switch l.tag {
	case moved:
		c.report(Error{Kind: UseAfterMove, Local: id, First: l.at, Second: loc})
		return false
	case dropped:
		c.report(Error{Kind: UseAfterFree, Local: id, First: l.at, Second: loc})
		return false
	}
	return true
}

func (c *checker) move(s *state, id mir.LocalID, loc mir.Location) {
	if c.isCopy(id) {
		return
	}
	if !c.read(s, id, loc) {
		return
	}
	l := &s.locals[id]
	if len(l.borrows) > 0 {
		c.report(Error{Kind: MoveWhileBorrowed, Local: id, First: l.borrows[0].at, Second: loc})
		return
	}
	l.tag = moved
	l.at = loc
}

// borrow validates taking a reference to target and returns the record
// to install once the destination has been reinitialized. It returns
// nil when the borrow is rejected.
func (c *checker) borrow(s *state, target, holder mir.LocalID, loc mir.Location) *borrow {
	if !c.read(s, target, loc) {
		return nil
	}
	kind := Shared
	if decl := c.body.Local(target); decl != nil && decl.Mutable {
		kind = Exclusive
	}
	conflict := false
	for _, br := range s.locals[target].borrows {
		if kind == Exclusive || br.kind == Exclusive {
			c.report(Error{Kind: MutableBorrowConflict, Local: target, First: br.at, Second: loc})
			conflict = true
		}
	}
	if conflict {
		return nil
	}
	return &borrow{kind: kind, at: loc, holder: holder}
}

func (c *checker) drop(s *state, id mir.LocalID, loc mir.Location) {
	if c.isCopy(id) {
		return
	}
	l := &s.locals[id]
	switch l.tag {
	case moved:
		return
	case dropped:
		c.report(Error{Kind: DoubleFree, Local: id, First: l.at, Second: loc})
		return
	}
	l.tag = dropped
	l.at = loc
	l.borrows = nil
}

func (c *checker) terminator(s *state, t *mir.Terminator, loc mir.Location) {
	switch t.Kind {
	case mir.TermSwitchInt:
		c.operand(s, &t.SwitchInt.Discr, loc)
	case mir.TermCall:
		for i := range t.Call.Args {
			c.operand(s, &t.Call.Args[i], loc)
		}
		if t.Call.HasDst {
			c.reinit(s, t.Call.Dst.Local, loc)
		}
	case mir.TermAssert:
		c.operand(s, &t.Assert.Cond, loc)
	case mir.TermReturn:
		c.read(s, mir.ReturnLocal, loc)
	case mir.TermGoto, mir.TermUnreachable, mir.TermNone:
	}
}

func (c *checker) isCopy(id mir.LocalID) bool {
	decl := c.body.Local(id)
	return decl == nil || decl.Type.IsCopy()
}

func (c *checker) report(e Error) {
	if c.emitting {
		c.errs = append(c.errs, e)
	}
}
