package diag

import "fmt"

// Pos points at a statement of a MIR body. Stmt equal to the block's
// statement count addresses the terminator.
type Pos struct {
	Body  string
	Block int32
	Stmt  int
	Valid bool
}

func At(body string, block int32, stmt int) Pos {
	return Pos{Body: body, Block: block, Stmt: stmt, Valid: true}
}

// String renders the position as block:stmt.
func (p Pos) String() string {
	if !p.Valid {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Block, p.Stmt)
}

// Less orders positions by body, block, then statement.
func (p Pos) Less(o Pos) bool {
	if p.Body != o.Body {
		return p.Body < o.Body
	}
	if p.Block != o.Block {
		return p.Block < o.Block
	}
	return p.Stmt < o.Stmt
}
