package mir

// BasicBlock is a straight-line run of statements ended by one
// terminator.
type BasicBlock struct {
	Name       string
	Statements []Statement
	Term       Terminator
}

func (b *BasicBlock) Terminated() bool {
	if b == nil {
		return true
	}
	return b.Term.Kind != TermNone
}

// Body is the MIR of one function. Locals[0] is the return slot and
// Locals[1..len(Params)] are the parameters.
type Body struct {
	Name           string
	Params         []Type
	Result         Type
	Locals         []LocalDecl
	Blocks         []BasicBlock
	LifetimeParams []string
	LifetimeBounds []LifetimeBound
}

func (b *Body) Local(id LocalID) *LocalDecl {
	if b == nil || id < 0 || int(id) >= len(b.Locals) {
		return nil
	}
	return &b.Locals[id]
}

func (b *Body) Block(id BlockID) *BasicBlock {
	if b == nil || id < 0 || int(id) >= len(b.Blocks) {
		return nil
	}
	return &b.Blocks[id]
}

// IsParam reports whether id names a parameter slot.
func (b *Body) IsParam(id LocalID) bool {
	return id >= 1 && int(id) <= len(b.Params)
}

// LocalName renders a local for diagnostics: its declared name when it
// has one, otherwise `_N`.
func (b *Body) LocalName(id LocalID) string {
	if decl := b.Local(id); decl != nil && decl.Name != "" {
		return decl.Name
	}
	return id.String()
}

type Module struct {
	Name   string
	Bodies []*Body
}

// Body returns the body with the given name.
func (m *Module) Body(name string) *Body {
	if m == nil {
		return nil
	}
	for _, b := range m.Bodies {
		if b != nil && b.Name == name {
			return b
		}
	}
	return nil
}
