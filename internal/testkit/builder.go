package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"borrowck/internal/mir"
)

// BodyBuilder assembles MIR bodies for tests. Parameters must be added
// before other locals; statements go to the block opened last.
type BodyBuilder struct {
	body *mir.Body
	cur  mir.BlockID
}

// NewBody starts a body returning unit.
func NewBody(name string) *BodyBuilder {
	return &BodyBuilder{
		body: &mir.Body{
			Name:   name,
			Result: mir.Scalar(mir.TypeUnit),
			Locals: []mir.LocalDecl{{Type: mir.Scalar(mir.TypeUnit)}},
		},
		cur: mir.NoBlockID,
	}
}

// Returns sets the result type and the type of _0.
func (b *BodyBuilder) Returns(t mir.Type) *BodyBuilder {
	b.body.Result = t
	b.body.Locals[mir.ReturnLocal].Type = t
	return b
}

// Lifetimes declares lifetime parameters.
func (b *BodyBuilder) Lifetimes(names ...string) *BodyBuilder {
	b.body.LifetimeParams = append(b.body.LifetimeParams, names...)
	return b
}

// Bound adds an explicit `'name: 'outlives` bound.
func (b *BodyBuilder) Bound(name, outlives string) *BodyBuilder {
	b.body.LifetimeBounds = append(b.body.LifetimeBounds, mir.LifetimeBound{Name: name, Outlives: outlives})
	return b
}

func (b *BodyBuilder) nextLocal() mir.LocalID {
	id, err := safecast.Conv[int32](len(b.body.Locals))
	if err != nil {
		panic(err)
	}
	return mir.LocalID(id)
}

// Param declares the next parameter.
func (b *BodyBuilder) Param(name string, t mir.Type) mir.LocalID {
	if len(b.body.Locals) != len(b.body.Params)+1 {
		panic(fmt.Sprintf("param %s declared after locals", name))
	}
	id := b.nextLocal()
	b.body.Params = append(b.body.Params, t)
	b.body.Locals = append(b.body.Locals, mir.LocalDecl{Name: name, Type: t})
	return id
}

// Local declares an immutable local.
func (b *BodyBuilder) Local(name string, t mir.Type) mir.LocalID {
	id := b.nextLocal()
	b.body.Locals = append(b.body.Locals, mir.LocalDecl{Name: name, Type: t})
	return id
}

// LocalMut declares a mutable local; borrows of it are exclusive.
func (b *BodyBuilder) LocalMut(name string, t mir.Type) mir.LocalID {
	id := b.nextLocal()
	b.body.Locals = append(b.body.Locals, mir.LocalDecl{Name: name, Type: t, Mutable: true})
	return id
}

// Block opens a new block and makes it current.
func (b *BodyBuilder) Block() mir.BlockID {
	id, err := safecast.Conv[int32](len(b.body.Blocks))
	if err != nil {
		panic(err)
	}
	b.body.Blocks = append(b.body.Blocks, mir.BasicBlock{})
	b.cur = mir.BlockID(id)
	return b.cur
}

// Blocks opens n blocks at once and leaves the first one current.
func (b *BodyBuilder) Blocks(n int) []mir.BlockID {
	ids := make([]mir.BlockID, n)
	for i := range ids {
		ids[i] = b.Block()
	}
	if n > 0 {
		b.cur = ids[0]
	}
	return ids
}

// In makes an existing block current.
func (b *BodyBuilder) In(id mir.BlockID) *BodyBuilder {
	b.cur = id
	return b
}

func (b *BodyBuilder) block() *mir.BasicBlock {
	blk := b.body.Block(b.cur)
	if blk == nil {
		panic("testkit: no current block")
	}
	return blk
}

// Stmt appends st to the current block.
func (b *BodyBuilder) Stmt(st mir.Statement) *BodyBuilder {
	blk := b.block()
	blk.Statements = append(blk.Statements, st)
	return b
}

func (b *BodyBuilder) Assign(dst mir.LocalID, src mir.RValue) *BodyBuilder {
	return b.Stmt(mir.Assign(dst, src))
}

func (b *BodyBuilder) MoveTo(dst, src mir.LocalID) *BodyBuilder {
	return b.Assign(dst, mir.Use(mir.Move(src)))
}

func (b *BodyBuilder) CopyTo(dst, src mir.LocalID) *BodyBuilder {
	return b.Assign(dst, mir.Use(mir.Copy(src)))
}

func (b *BodyBuilder) Borrow(holder, target mir.LocalID) *BodyBuilder {
	return b.Assign(holder, mir.Ref(target))
}

func (b *BodyBuilder) Const(dst mir.LocalID, v int64) *BodyBuilder {
	return b.Assign(dst, mir.Use(mir.IntConst(v)))
}

func (b *BodyBuilder) Drop(id mir.LocalID) *BodyBuilder {
	return b.Stmt(mir.Drop(id))
}

// Term sets the terminator of the current block.
func (b *BodyBuilder) Term(t mir.Terminator) *BodyBuilder {
	b.block().Term = t
	return b
}

func (b *BodyBuilder) Goto(target mir.BlockID) *BodyBuilder {
	return b.Term(mir.Goto(target))
}

func (b *BodyBuilder) Return() *BodyBuilder {
	return b.Term(mir.Return())
}

func (b *BodyBuilder) Unreachable() *BodyBuilder {
	return b.Term(mir.Unreachable())
}

// Switch branches on discr: case i jumps to targets[i] when discr == i,
// anything else goes to otherwise.
func (b *BodyBuilder) Switch(discr mir.Operand, otherwise mir.BlockID, targets ...mir.BlockID) *BodyBuilder {
	cases := make([]mir.SwitchCase, len(targets))
	for i, t := range targets {
		cases[i] = mir.SwitchCase{Value: int64(i), Target: t}
	}
	return b.Term(mir.Terminator{
		Kind:      mir.TermSwitchInt,
		SwitchInt: mir.SwitchIntTerm{Discr: discr, Cases: cases, Otherwise: otherwise},
	})
}

// Call calls fn with args, storing the result in dst (NoLocalID for none).
func (b *BodyBuilder) Call(fn string, dst mir.LocalID, target mir.BlockID, args ...mir.Operand) *BodyBuilder {
	call := mir.CallTerm{Func: fn, Args: args, Target: target}
	if dst != mir.NoLocalID {
		call.HasDst = true
		call.Dst = mir.LocalPlace(dst)
	}
	return b.Term(mir.Terminator{Kind: mir.TermCall, Call: call})
}

// Build returns the assembled body. The builder must not be used after.
func (b *BodyBuilder) Build() *mir.Body {
	return b.body
}

// Module wraps bodies into a module named name.
func Module(name string, bodies ...*mir.Body) *mir.Module {
	return &mir.Module{Name: name, Bodies: bodies}
}
