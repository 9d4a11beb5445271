package mirfile

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"borrowck/internal/mir"
)

// BlockResolver maps a block label used in a terminator to its id.
type BlockResolver func(label string) (mir.BlockID, bool)

type parser struct {
	toks   []token
	i      int
	blocks BlockResolver
}

func newParser(src string, blocks BlockResolver) (*parser, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	if blocks == nil {
		blocks = func(string) (mir.BlockID, bool) { return mir.NoBlockID, false }
	}
	return &parser{toks: toks, blocks: blocks}, nil
}

// ParseType parses a type such as `&'a mut Point` or `(i64, str)`.
func ParseType(src string) (mir.Type, error) {
	p, err := newParser(src, nil)
	if err != nil {
		return mir.Type{}, err
	}
	t, err := p.parseType()
	if err != nil {
		return mir.Type{}, err
	}
	return t, p.expectEOF()
}

// ParseStatement parses one statement in the syntax mir.FormatStatement
// prints.
func ParseStatement(src string) (mir.Statement, error) {
	p, err := newParser(src, nil)
	if err != nil {
		return mir.Statement{}, err
	}
	st, err := p.parseStatement()
	if err != nil {
		return mir.Statement{}, err
	}
	return st, p.expectEOF()
}

// ParseTerminator parses one terminator. Targets are written bbN or as
// a label known to blocks.
func ParseTerminator(src string, blocks BlockResolver) (mir.Terminator, error) {
	p, err := newParser(src, blocks)
	if err != nil {
		return mir.Terminator{}, err
	}
	t, err := p.parseTerminator()
	if err != nil {
		return mir.Terminator{}, err
	}
	return t, p.expectEOF()
}

// ParseBound parses `'a: 'b`.
func ParseBound(src string) (mir.LifetimeBound, error) {
	p, err := newParser(src, nil)
	if err != nil {
		return mir.LifetimeBound{}, err
	}
	name, err := p.expectKind(tokLifetime)
	if err != nil {
		return mir.LifetimeBound{}, err
	}
	if err := p.expect(":"); err != nil {
		return mir.LifetimeBound{}, err
	}
	outlives, err := p.expectKind(tokLifetime)
	if err != nil {
		return mir.LifetimeBound{}, err
	}
	return mir.LifetimeBound{Name: name.text, Outlives: outlives.text}, p.expectEOF()
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) is(text string) bool {
	t := p.peek()
	return (t.kind == tokPunct || t.kind == tokIdent) && t.text == text
}

func (p *parser) accept(text string) bool {
	if p.is(text) {
		p.i++
		return true
	}
	return false
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("offset %d: %s", p.peek().pos, fmt.Sprintf(format, args...))
}

func (p *parser) expect(text string) error {
	if !p.accept(text) {
		return p.errorf("expected %q, found %s", text, p.peek())
	}
	return nil
}

func (p *parser) expectKind(kind tokKind) (token, error) {
	if p.peek().kind != kind {
		return token{}, p.errorf("unexpected %s", p.peek())
	}
	return p.next(), nil
}

func (p *parser) expectEOF() error {
	if p.peek().kind != tokEOF {
		return p.errorf("trailing %s", p.peek())
	}
	return nil
}

func (p *parser) parseType() (mir.Type, error) {
	switch {
	case p.accept("("):
		if p.accept(")") {
			return mir.Scalar(mir.TypeUnit), nil
		}
		var elems []mir.Type
		trailingComma := false
		for {
			t, err := p.parseType()
			if err != nil {
				return mir.Type{}, err
			}
			elems = append(elems, t)
			trailingComma = p.accept(",")
			if !trailingComma || p.is(")") {
				break
			}
		}
		if err := p.expect(")"); err != nil {
			return mir.Type{}, err
		}
		if len(elems) == 1 && !trailingComma {
			return elems[0], nil
		}
		return mir.TupleOf(elems...), nil
	case p.accept("!"):
		return mir.Scalar(mir.TypeNever), nil
	case p.accept("*"):
		elem, err := p.parseType()
		return mir.PointerTo(elem), err
	case p.accept("&"):
		lifetime := ""
		if p.peek().kind == tokLifetime {
			lifetime = p.next().text
		}
		mutable := p.accept("mut")
		elem, err := p.parseType()
		if err != nil {
			return mir.Type{}, err
		}
		if lifetime != "" {
			return mir.RefWithLifetime(lifetime, elem, mutable), nil
		}
		return mir.RefTo(elem, mutable), nil
	case p.accept("["):
		elem, err := p.parseType()
		if err != nil {
			return mir.Type{}, err
		}
		return mir.ArrayOf(elem), p.expect("]")
	}

	name, err := p.expectKind(tokIdent)
	if err != nil {
		return mir.Type{}, err
	}
	switch name.text {
	case "fn":
		if err := p.expect("("); err != nil {
			return mir.Type{}, err
		}
		var params []mir.Type
		for !p.is(")") {
			t, err := p.parseType()
			if err != nil {
				return mir.Type{}, err
			}
			params = append(params, t)
			if !p.accept(",") {
				break
			}
		}
		if err := p.expect(")"); err != nil {
			return mir.Type{}, err
		}
		result := mir.Scalar(mir.TypeUnit)
		if p.accept("->") {
			if result, err = p.parseType(); err != nil {
				return mir.Type{}, err
			}
		}
		return mir.FuncType(params, result), nil
	case "enum":
		enum, err := p.expectKind(tokIdent)
		if err != nil {
			return mir.Type{}, err
		}
		return mir.EnumType(normalize(enum.text)), nil
	}
	if kind, ok := mir.ScalarKind(name.text); ok {
		return mir.Scalar(kind), nil
	}
	return mir.StructType(normalize(name.text)), nil
}

func (p *parser) parseLocal() (mir.LocalID, error) {
	t := p.peek()
	if t.kind != tokIdent || !strings.HasPrefix(t.text, "_") {
		return mir.NoLocalID, p.errorf("expected local, found %s", t)
	}
	n, err := strconv.ParseInt(t.text[1:], 10, 32)
	if err != nil || n < 0 {
		return mir.NoLocalID, p.errorf("bad local %q", t.text)
	}
	p.next()
	return mir.LocalID(n), nil
}

// parseParenLocal parses `(_N)`.
func (p *parser) parseParenLocal() (mir.Place, error) {
	if err := p.expect("("); err != nil {
		return mir.Place{}, err
	}
	id, err := p.parseLocal()
	if err != nil {
		return mir.Place{}, err
	}
	return mir.LocalPlace(id), p.expect(")")
}

func (p *parser) parseOperand() (mir.Operand, error) {
	switch {
	case p.accept("copy"):
		id, err := p.parseLocal()
		return mir.Copy(id), err
	case p.accept("move"):
		id, err := p.parseLocal()
		return mir.Move(id), err
	case p.accept("const"):
		c, err := p.parseConst()
		return mir.Operand{Kind: mir.OperandConst, Const: c}, err
	}
	return mir.Operand{}, p.errorf("expected operand, found %s", p.peek())
}

func (p *parser) parseConst() (mir.Const, error) {
	t := p.peek()
	switch {
	case t.kind == tokInt:
		p.next()
		v, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return mir.Const{}, fmt.Errorf("offset %d: %w", t.pos, err)
		}
		return mir.Const{Kind: mir.ConstInt, Int: v}, nil
	case t.kind == tokFloat:
		p.next()
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return mir.Const{}, fmt.Errorf("offset %d: %w", t.pos, err)
		}
		return mir.Const{Kind: mir.ConstFloat, Float: v}, nil
	case t.kind == tokString:
		p.next()
		return mir.Const{Kind: mir.ConstStr, Str: t.text}, nil
	case p.accept("true"):
		return mir.Const{Kind: mir.ConstBool, Bool: true}, nil
	case p.accept("false"):
		return mir.Const{Kind: mir.ConstBool}, nil
	case p.accept("("):
		return mir.Const{Kind: mir.ConstUnit}, p.expect(")")
	}
	return mir.Const{}, p.errorf("expected constant, found %s", t)
}

// parseOperandList parses `(op, op, ...)`.
func (p *parser) parseOperandList() ([]mir.Operand, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	var ops []mir.Operand
	for !p.is(")") {
		op, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		if !p.accept(",") {
			break
		}
	}
	return ops, p.expect(")")
}

func (p *parser) parseRValue() (mir.RValue, error) {
	if p.accept("&") {
		id, err := p.parseLocal()
		return mir.Ref(id), err
	}
	if p.is("copy") || p.is("move") || p.is("const") {
		op, err := p.parseOperand()
		return mir.Use(op), err
	}
	head, err := p.expectKind(tokIdent)
	if err != nil {
		return mir.RValue{}, err
	}
	switch head.text {
	case "cast":
		op, err := p.parseOperand()
		if err != nil {
			return mir.RValue{}, err
		}
		if err := p.expect("as"); err != nil {
			return mir.RValue{}, err
		}
		target, err := p.parseType()
		return mir.RValue{Kind: mir.RValueCast, Cast: mir.CastOp{Value: op, Target: target}}, err
	case "len":
		place, err := p.parseParenLocal()
		return mir.RValue{Kind: mir.RValueLen, Len: place}, err
	case "discriminant":
		place, err := p.parseParenLocal()
		return mir.RValue{Kind: mir.RValueDiscriminant, Discriminant: place}, err
	case "tuple", "array", "struct", "enum":
		return p.parseAggregate(head.text)
	case "Neg", "Not":
		op := mir.UnNeg
		if head.text == "Not" {
			op = mir.UnNot
		}
		ops, err := p.parseOperandList()
		if err != nil {
			return mir.RValue{}, err
		}
		if len(ops) != 1 {
			return mir.RValue{}, fmt.Errorf("offset %d: %s takes one operand", head.pos, head.text)
		}
		return mir.RValue{Kind: mir.RValueUnaryOp, Unary: mir.UnaryOp{Op: op, Value: ops[0]}}, nil
	}
	if op, ok := mir.LookupBinOp(head.text); ok {
		ops, err := p.parseOperandList()
		if err != nil {
			return mir.RValue{}, err
		}
		if len(ops) != 2 {
			return mir.RValue{}, fmt.Errorf("offset %d: %s takes two operands", head.pos, head.text)
		}
		return mir.Binary(op, ops[0], ops[1]), nil
	}
	return mir.RValue{}, fmt.Errorf("offset %d: unknown rvalue %q", head.pos, head.text)
}

func (p *parser) parseAggregate(kind string) (mir.RValue, error) {
	agg := mir.Aggregate{}
	switch kind {
	case "tuple":
		agg.Kind = mir.AggregateTuple
	case "array":
		agg.Kind = mir.AggregateArray
	case "struct", "enum":
		name, err := p.expectKind(tokIdent)
		if err != nil {
			return mir.RValue{}, err
		}
		agg.Name = normalize(name.text)
		agg.Kind = mir.AggregateStruct
		if kind == "enum" {
			agg.Kind = mir.AggregateEnum
			if err := p.expect("::"); err != nil {
				return mir.RValue{}, err
			}
			variant, err := p.expectKind(tokInt)
			if err != nil {
				return mir.RValue{}, err
			}
			v, err := strconv.ParseUint(variant.text, 10, 64)
			if err != nil {
				return mir.RValue{}, fmt.Errorf("offset %d: %w", variant.pos, err)
			}
			if agg.Variant, err = safecast.Conv[uint32](v); err != nil {
				return mir.RValue{}, fmt.Errorf("offset %d: variant %w", variant.pos, err)
			}
		}
	}
	elems, err := p.parseOperandList()
	agg.Elems = elems
	return mir.RValue{Kind: mir.RValueAggregate, Aggregate: agg}, err
}

func (p *parser) parseStatement() (mir.Statement, error) {
	switch {
	case p.accept("nop"):
		return mir.Nop(), nil
	case p.accept("drop"):
		place, err := p.parseParenLocal()
		return mir.Statement{Kind: mir.StatementDrop, Drop: mir.DropStmt{Place: place}}, err
	}
	dst, err := p.parseLocal()
	if err != nil {
		return mir.Statement{}, err
	}
	if err := p.expect("="); err != nil {
		return mir.Statement{}, err
	}
	rv, err := p.parseRValue()
	return mir.Assign(dst, rv), err
}

func (p *parser) parseBlockRef() (mir.BlockID, error) {
	t, err := p.expectKind(tokIdent)
	if err != nil {
		return mir.NoBlockID, err
	}
	if id, ok := p.blocks(t.text); ok {
		return id, nil
	}
	if rest, ok := strings.CutPrefix(t.text, "bb"); ok {
		if n, err := strconv.ParseInt(rest, 10, 32); err == nil && n >= 0 {
			return mir.BlockID(n), nil
		}
	}
	return mir.NoBlockID, fmt.Errorf("offset %d: unknown block %q", t.pos, t.text)
}

// parseArrowTarget parses `-> bbN`.
func (p *parser) parseArrowTarget() (mir.BlockID, error) {
	if err := p.expect("->"); err != nil {
		return mir.NoBlockID, err
	}
	return p.parseBlockRef()
}

func (p *parser) parseTerminator() (mir.Terminator, error) {
	switch {
	case p.accept("return"):
		return mir.Return(), nil
	case p.accept("unreachable"):
		return mir.Unreachable(), nil
	case p.accept("goto"):
		target, err := p.parseArrowTarget()
		return mir.Goto(target), err
	case p.accept("switchInt"):
		return p.parseSwitch()
	case p.accept("assert"):
		return p.parseAssert()
	}

	call := mir.CallTerm{}
	if t := p.peek(); t.kind == tokIdent && strings.HasPrefix(t.text, "_") && p.toks[p.i+1].text == "=" {
		dst, err := p.parseLocal()
		if err != nil {
			return mir.Terminator{}, err
		}
		p.next()
		call.HasDst = true
		call.Dst = mir.LocalPlace(dst)
	}
	fn, err := p.expectKind(tokIdent)
	if err != nil {
		return mir.Terminator{}, err
	}
	call.Func = normalize(fn.text)
	if call.Args, err = p.parseOperandList(); err != nil {
		return mir.Terminator{}, err
	}
	if call.Target, err = p.parseArrowTarget(); err != nil {
		return mir.Terminator{}, err
	}
	return mir.Terminator{Kind: mir.TermCall, Call: call}, nil
}

func (p *parser) parseSwitch() (mir.Terminator, error) {
	sw := mir.SwitchIntTerm{Otherwise: mir.NoBlockID}
	if err := p.expect("("); err != nil {
		return mir.Terminator{}, err
	}
	discr, err := p.parseOperand()
	if err != nil {
		return mir.Terminator{}, err
	}
	sw.Discr = discr
	if err := p.expect(")"); err != nil {
		return mir.Terminator{}, err
	}
	if err := p.expect("->"); err != nil {
		return mir.Terminator{}, err
	}
	if err := p.expect("["); err != nil {
		return mir.Terminator{}, err
	}
	for {
		if p.accept("otherwise") {
			if err := p.expect(":"); err != nil {
				return mir.Terminator{}, err
			}
			if sw.Otherwise, err = p.parseBlockRef(); err != nil {
				return mir.Terminator{}, err
			}
			break
		}
		v, err := p.expectKind(tokInt)
		if err != nil {
			return mir.Terminator{}, err
		}
		value, err := strconv.ParseInt(v.text, 10, 64)
		if err != nil {
			return mir.Terminator{}, fmt.Errorf("offset %d: %w", v.pos, err)
		}
		if err := p.expect(":"); err != nil {
			return mir.Terminator{}, err
		}
		target, err := p.parseBlockRef()
		if err != nil {
			return mir.Terminator{}, err
		}
		sw.Cases = append(sw.Cases, mir.SwitchCase{Value: value, Target: target})
		if err := p.expect(","); err != nil {
			return mir.Terminator{}, err
		}
	}
	if err := p.expect("]"); err != nil {
		return mir.Terminator{}, err
	}
	return mir.Terminator{Kind: mir.TermSwitchInt, SwitchInt: sw}, nil
}

func (p *parser) parseAssert() (mir.Terminator, error) {
	as := mir.AssertTerm{}
	if err := p.expect("("); err != nil {
		return mir.Terminator{}, err
	}
	cond, err := p.parseOperand()
	if err != nil {
		return mir.Terminator{}, err
	}
	as.Cond = cond
	if err := p.expect(","); err != nil {
		return mir.Terminator{}, err
	}
	switch {
	case p.accept("true"):
		as.Expected = true
	case p.accept("false"):
	default:
		return mir.Terminator{}, p.errorf("expected true or false, found %s", p.peek())
	}
	if err := p.expect(","); err != nil {
		return mir.Terminator{}, err
	}
	msg, err := p.expectKind(tokString)
	if err != nil {
		return mir.Terminator{}, err
	}
	as.Msg = msg.text
	if err := p.expect(")"); err != nil {
		return mir.Terminator{}, err
	}
	if as.Target, err = p.parseArrowTarget(); err != nil {
		return mir.Terminator{}, err
	}
	return mir.Terminator{Kind: mir.TermAssert, Assert: as}, nil
}
