package mir

import "strings"

type TypeKind uint8

const (
	TypeUnit TypeKind = iota
	TypeI8
	TypeI16
	TypeI32
	TypeI64
	TypeI128
	TypeU8
	TypeU16
	TypeU32
	TypeU64
	TypeU128
	TypeF32
	TypeF64
	TypeBool
	TypeChar
	TypeStr
	TypeNever
	TypePointer
	TypeRef
	TypeRefMut
	TypeRefLifetime
	TypeRefMutLifetime
	TypeArray
	TypeTuple
	TypeStruct
	TypeEnum
	TypeFunction
)

var scalarNames = map[TypeKind]string{
	TypeI8:    "i8",
	TypeI16:   "i16",
	TypeI32:   "i32",
	TypeI64:   "i64",
	TypeI128:  "i128",
	TypeU8:    "u8",
	TypeU16:   "u16",
	TypeU32:   "u32",
	TypeU64:   "u64",
	TypeU128:  "u128",
	TypeF32:   "f32",
	TypeF64:   "f64",
	TypeBool:  "bool",
	TypeChar:  "char",
	TypeStr:   "str",
	TypeUnit:  "()",
	TypeNever: "!",
}

// ScalarKind resolves a primitive type name such as "i64" or "()".
func ScalarKind(name string) (TypeKind, bool) {
	for k, n := range scalarNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Type is a MIR-level type. Elem is set for pointers, references and
// arrays; Elems for tuples; Params and Result for functions.
type Type struct {
	Kind     TypeKind
	Name     string
	Lifetime string
	Elem     *Type
	Elems    []Type
	Params   []Type
	Result   *Type
}

func Scalar(k TypeKind) Type { return Type{Kind: k} }

func PointerTo(elem Type) Type { return Type{Kind: TypePointer, Elem: &elem} }

func RefTo(elem Type, mutable bool) Type {
	if mutable {
		return Type{Kind: TypeRefMut, Elem: &elem}
	}
	return Type{Kind: TypeRef, Elem: &elem}
}

func RefWithLifetime(lifetime string, elem Type, mutable bool) Type {
	if mutable {
		return Type{Kind: TypeRefMutLifetime, Lifetime: lifetime, Elem: &elem}
	}
	return Type{Kind: TypeRefLifetime, Lifetime: lifetime, Elem: &elem}
}

func StructType(name string) Type { return Type{Kind: TypeStruct, Name: name} }

func EnumType(name string) Type { return Type{Kind: TypeEnum, Name: name} }

func ArrayOf(elem Type) Type { return Type{Kind: TypeArray, Elem: &elem} }

func TupleOf(elems ...Type) Type { return Type{Kind: TypeTuple, Elems: elems} }

func FuncType(params []Type, result Type) Type {
	return Type{Kind: TypeFunction, Params: params, Result: &result}
}

// IsCopy reports whether values of the type are duplicated on move.
// Scalars, raw pointers, function values and references of every
// flavour are copy; strings and compound values own their contents.
func (t Type) IsCopy() bool {
	switch t.Kind {
	case TypeStr, TypeArray, TypeTuple, TypeStruct, TypeEnum:
		return false
	default:
		return true
	}
}

func (t Type) IsRef() bool {
	switch t.Kind {
	case TypeRef, TypeRefMut, TypeRefLifetime, TypeRefMutLifetime:
		return true
	}
	return false
}

// InputLifetime returns the lifetime a parameter of type t contributes
// to elision: that of a top-level reference, or the first found among
// tuple elements. References behind pointers, arrays or other
// references do not count.
func (t Type) InputLifetime() (string, bool) {
	if t.IsRef() {
		return t.Lifetime, t.Lifetime != ""
	}
	if t.Kind == TypeTuple {
		for i := range t.Elems {
			if lt, ok := t.Elems[i].InputLifetime(); ok {
				return lt, true
			}
		}
	}
	return "", false
}

// Lifetimes returns every lifetime name mentioned in t, outermost first.
func (t Type) Lifetimes() []string {
	var out []string
	t.walk(func(x *Type) {
		if x.Lifetime != "" {
			out = append(out, x.Lifetime)
		}
	})
	return out
}

func (t *Type) walk(fn func(*Type)) {
	fn(t)
	if t.Elem != nil {
		t.Elem.walk(fn)
	}
	for i := range t.Elems {
		t.Elems[i].walk(fn)
	}
	for i := range t.Params {
		t.Params[i].walk(fn)
	}
	if t.Result != nil {
		t.Result.walk(fn)
	}
}

func (t Type) String() string {
	var sb strings.Builder
	t.format(&sb)
	return sb.String()
}

func (t Type) format(sb *strings.Builder) {
	if name, ok := scalarNames[t.Kind]; ok {
		sb.WriteString(name)
		return
	}
	elem := func() {
		if t.Elem == nil {
			sb.WriteString("?")
			return
		}
		t.Elem.format(sb)
	}
	switch t.Kind {
	case TypePointer:
		sb.WriteString("*")
		elem()
	case TypeRef:
		sb.WriteString("&")
		elem()
	case TypeRefMut:
		sb.WriteString("&mut ")
		elem()
	case TypeRefLifetime:
		sb.WriteString("&'" + t.Lifetime + " ")
		elem()
	case TypeRefMutLifetime:
		sb.WriteString("&'" + t.Lifetime + " mut ")
		elem()
	case TypeArray:
		sb.WriteString("[")
		elem()
		sb.WriteString("]")
	case TypeTuple:
		sb.WriteString("(")
		for i := range t.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			t.Elems[i].format(sb)
		}
		if len(t.Elems) == 1 {
			sb.WriteString(",")
		}
		sb.WriteString(")")
	case TypeStruct:
		sb.WriteString(t.Name)
	case TypeEnum:
		sb.WriteString("enum " + t.Name)
	case TypeFunction:
		sb.WriteString("fn(")
		for i := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			t.Params[i].format(sb)
		}
		sb.WriteString(") -> ")
		if t.Result == nil {
			sb.WriteString("()")
		} else {
			t.Result.format(sb)
		}
	default:
		sb.WriteString("<invalid>")
	}
}
