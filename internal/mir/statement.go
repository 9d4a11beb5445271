package mir

type StatementKind uint8

const (
	StatementAssign StatementKind = iota
	StatementDrop
	StatementNop
)

type Statement struct {
	Kind StatementKind

	Assign AssignStmt
	Drop   DropStmt
}

type AssignStmt struct {
	Dst Place
	Src RValue
}

type DropStmt struct {
	Place Place
}

func Assign(dst LocalID, src RValue) Statement {
	return Statement{Kind: StatementAssign, Assign: AssignStmt{Dst: LocalPlace(dst), Src: src}}
}

func Drop(id LocalID) Statement {
	return Statement{Kind: StatementDrop, Drop: DropStmt{Place: LocalPlace(id)}}
}

func Nop() Statement { return Statement{Kind: StatementNop} }
