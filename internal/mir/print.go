package mir

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DumpModule writes a human-readable representation of a module. The
// statement and terminator lines use the same syntax mirfile parses.
func DumpModule(w io.Writer, m *Module) error {
	if w == nil || m == nil {
		return nil
	}
	if m.Name != "" {
		if _, err := fmt.Fprintf(w, "// module %s\n", m.Name); err != nil {
			return err
		}
	}
	for i, b := range m.Bodies {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := DumpBody(w, b); err != nil {
			return err
		}
	}
	return nil
}

// DumpBody writes one body.
func DumpBody(w io.Writer, b *Body) error {
	if w == nil || b == nil {
		return nil
	}
	var sb strings.Builder
	sb.WriteString("fn ")
	sb.WriteString(b.Name)
	if len(b.LifetimeParams) > 0 {
		sb.WriteString("<")
		for i, lt := range b.LifetimeParams {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("'" + lt)
		}
		sb.WriteString(">")
	}
	sb.WriteString("(")
	for i := range b.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %s", LocalID(i+1), b.Params[i]) //nolint:gosec // bounded by param count
	}
	fmt.Fprintf(&sb, ") -> %s", b.Result)
	if len(b.LifetimeBounds) > 0 {
		sb.WriteString(" where ")
		for i, bound := range b.LifetimeBounds {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(bound.String())
		}
	}
	sb.WriteString(" {\n")

	for i := range b.Locals {
		l := &b.Locals[i]
		sb.WriteString("    let ")
		if l.Mutable {
			sb.WriteString("mut ")
		}
		sb.WriteString(LocalID(i).String()) //nolint:gosec // bounded by local count
		if l.Lifetime != "" {
			sb.WriteString(" '" + l.Lifetime)
		}
		fmt.Fprintf(&sb, ": %s;", l.Type)
		if l.Name != "" {
			sb.WriteString(" // " + l.Name)
		}
		sb.WriteString("\n")
	}

	for i := range b.Blocks {
		bb := &b.Blocks[i]
		fmt.Fprintf(&sb, "    bb%d: {", i)
		if bb.Name != "" {
			sb.WriteString(" // " + bb.Name)
		}
		sb.WriteString("\n")
		for j := range bb.Statements {
			fmt.Fprintf(&sb, "        %s;\n", FormatStatement(&bb.Statements[j]))
		}
		fmt.Fprintf(&sb, "        %s;\n", FormatTerminator(&bb.Term))
		sb.WriteString("    }\n")
	}
	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func FormatStatement(st *Statement) string {
	switch st.Kind {
	case StatementAssign:
		return fmt.Sprintf("%s = %s", st.Assign.Dst, FormatRValue(&st.Assign.Src))
	case StatementDrop:
		return fmt.Sprintf("drop(%s)", st.Drop.Place)
	case StatementNop:
		return "nop"
	default:
		return "<invalid statement>"
	}
}

func FormatRValue(rv *RValue) string {
	switch rv.Kind {
	case RValueUse:
		return FormatOperand(&rv.Use)
	case RValueRef:
		return "&" + rv.Ref.String()
	case RValueBinaryOp:
		return fmt.Sprintf("%s(%s, %s)", rv.Binary.Op, FormatOperand(&rv.Binary.Left), FormatOperand(&rv.Binary.Right))
	case RValueUnaryOp:
		return fmt.Sprintf("%s(%s)", rv.Unary.Op, FormatOperand(&rv.Unary.Value))
	case RValueAggregate:
		agg := &rv.Aggregate
		var head string
		switch agg.Kind {
		case AggregateTuple:
			head = "tuple"
		case AggregateArray:
			head = "array"
		case AggregateStruct:
			head = "struct " + agg.Name
		case AggregateEnum:
			head = fmt.Sprintf("enum %s::%d", agg.Name, agg.Variant)
		}
		return head + "(" + formatOperands(agg.Elems) + ")"
	case RValueCast:
		return fmt.Sprintf("cast %s as %s", FormatOperand(&rv.Cast.Value), rv.Cast.Target)
	case RValueLen:
		return fmt.Sprintf("len(%s)", rv.Len)
	case RValueDiscriminant:
		return fmt.Sprintf("discriminant(%s)", rv.Discriminant)
	default:
		return "<invalid rvalue>"
	}
}

func FormatOperand(op *Operand) string {
	switch op.Kind {
	case OperandCopy:
		return "copy " + op.Place.String()
	case OperandMove:
		return "move " + op.Place.String()
	case OperandConst:
		return "const " + formatConst(&op.Const)
	default:
		return "<invalid operand>"
	}
}

func formatConst(c *Const) string {
	switch c.Kind {
	case ConstInt:
		return strconv.FormatInt(c.Int, 10)
	case ConstFloat:
		s := strconv.FormatFloat(c.Float, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eIN") {
			s += ".0"
		}
		return s
	case ConstBool:
		return strconv.FormatBool(c.Bool)
	case ConstStr:
		return strconv.Quote(c.Str)
	case ConstUnit:
		return "()"
	default:
		return "?"
	}
}

func formatOperands(ops []Operand) string {
	parts := make([]string, len(ops))
	for i := range ops {
		parts[i] = FormatOperand(&ops[i])
	}
	return strings.Join(parts, ", ")
}

func FormatTerminator(t *Terminator) string {
	switch t.Kind {
	case TermGoto:
		return fmt.Sprintf("goto -> %s", t.Goto.Target)
	case TermSwitchInt:
		var sb strings.Builder
		fmt.Fprintf(&sb, "switchInt(%s) -> [", FormatOperand(&t.SwitchInt.Discr))
		for _, c := range t.SwitchInt.Cases {
			fmt.Fprintf(&sb, "%d: %s, ", c.Value, c.Target)
		}
		fmt.Fprintf(&sb, "otherwise: %s]", t.SwitchInt.Otherwise)
		return sb.String()
	case TermReturn:
		return "return"
	case TermUnreachable:
		return "unreachable"
	case TermCall:
		call := fmt.Sprintf("%s(%s) -> %s", t.Call.Func, formatOperands(t.Call.Args), t.Call.Target)
		if t.Call.HasDst {
			return t.Call.Dst.String() + " = " + call
		}
		return call
	case TermAssert:
		return fmt.Sprintf("assert(%s, %t, %s) -> %s",
			FormatOperand(&t.Assert.Cond), t.Assert.Expected, strconv.Quote(t.Assert.Msg), t.Assert.Target)
	case TermNone:
		return "<unterminated>"
	default:
		return "<invalid terminator>"
	}
}
