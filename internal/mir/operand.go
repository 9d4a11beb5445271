package mir

type OperandKind uint8

const (
	OperandCopy OperandKind = iota
	OperandMove
	OperandConst
)

type ConstKind uint8

const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstBool
	ConstStr
	ConstUnit
)

type Const struct {
	Kind  ConstKind
	Int   int64
	Float float64
	Bool  bool
	Str   string
}

type Operand struct {
	Kind  OperandKind
	Place Place
	Const Const
}

func Copy(id LocalID) Operand { return Operand{Kind: OperandCopy, Place: LocalPlace(id)} }

func Move(id LocalID) Operand { return Operand{Kind: OperandMove, Place: LocalPlace(id)} }

func IntConst(v int64) Operand {
	return Operand{Kind: OperandConst, Const: Const{Kind: ConstInt, Int: v}}
}

func BoolConst(v bool) Operand {
	return Operand{Kind: OperandConst, Const: Const{Kind: ConstBool, Bool: v}}
}

func UnitConst() Operand {
	return Operand{Kind: OperandConst, Const: Const{Kind: ConstUnit}}
}

// Reads returns the place the operand reads, if any.
func (o *Operand) Reads() (Place, bool) {
	if o.Kind == OperandConst {
		return Place{}, false
	}
	return o.Place, true
}

type BinOp uint8

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv
	BinRem
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
)

var binOpNames = [...]string{
	BinAdd:    "Add",
	BinSub:    "Sub",
	BinMul:    "Mul",
	BinDiv:    "Div",
	BinRem:    "Rem",
	BinBitAnd: "BitAnd",
	BinBitOr:  "BitOr",
	BinBitXor: "BitXor",
	BinShl:    "Shl",
	BinShr:    "Shr",
	BinEq:     "Eq",
	BinNe:     "Ne",
	BinLt:     "Lt",
	BinLe:     "Le",
	BinGt:     "Gt",
	BinGe:     "Ge",
}

func (op BinOp) String() string {
	if int(op) < len(binOpNames) {
		return binOpNames[op]
	}
	return "BinOp?"
}

// LookupBinOp maps a printed operator name back to its BinOp.
func LookupBinOp(name string) (BinOp, bool) {
	for i, n := range binOpNames {
		if n == name {
			return BinOp(i), true //nolint:gosec // bounded by table size
		}
	}
	return 0, false
}

type UnOp uint8

const (
	UnNeg UnOp = iota
	UnNot
)

func (op UnOp) String() string {
	switch op {
	case UnNeg:
		return "Neg"
	case UnNot:
		return "Not"
	default:
		return "UnOp?"
	}
}

type AggregateKind uint8

const (
	AggregateTuple AggregateKind = iota
	AggregateArray
	AggregateStruct
	AggregateEnum
)

type RValueKind uint8

const (
	RValueUse RValueKind = iota
	RValueRef
	RValueBinaryOp
	RValueUnaryOp
	RValueAggregate
	RValueCast
	RValueLen
	RValueDiscriminant
)

type RValue struct {
	Kind RValueKind

	Use          Operand
	Ref          Place
	Binary       BinaryOp
	Unary        UnaryOp
	Aggregate    Aggregate
	Cast         CastOp
	Len          Place
	Discriminant Place
}

type BinaryOp struct {
	Op    BinOp
	Left  Operand
	Right Operand
}

type UnaryOp struct {
	Op    UnOp
	Value Operand
}

type Aggregate struct {
	Kind    AggregateKind
	Name    string
	Variant uint32
	Elems   []Operand
}

type CastOp struct {
	Value  Operand
	Target Type
}

func Use(op Operand) RValue { return RValue{Kind: RValueUse, Use: op} }

func Ref(id LocalID) RValue { return RValue{Kind: RValueRef, Ref: LocalPlace(id)} }

func Binary(op BinOp, left, right Operand) RValue {
	return RValue{Kind: RValueBinaryOp, Binary: BinaryOp{Op: op, Left: left, Right: right}}
}
