package mir

import "fmt"

type BlockID int32
type LocalID int32

const (
	NoBlockID BlockID = -1
	NoLocalID LocalID = -1
)

// EntryBlock is where every body starts executing.
const EntryBlock BlockID = 0

// ReturnLocal holds the value a body returns.
const ReturnLocal LocalID = 0

func (id BlockID) String() string { return fmt.Sprintf("bb%d", id) }

func (id LocalID) String() string { return fmt.Sprintf("_%d", id) }

// Location addresses a statement inside a body. Statement == len(block
// statements) addresses the block's terminator.
type Location struct {
	Block     BlockID
	Statement int
}

func (l Location) String() string { return fmt.Sprintf("%d:%d", l.Block, l.Statement) }

// Less orders locations by block, then statement.
func (l Location) Less(o Location) bool {
	if l.Block != o.Block {
		return l.Block < o.Block
	}
	return l.Statement < o.Statement
}

type LocalDecl struct {
	Name     string
	Type     Type
	Mutable  bool
	Lifetime string
}

type Place struct {
	Local LocalID
}

func LocalPlace(id LocalID) Place { return Place{Local: id} }

func (p Place) IsValid() bool { return p.Local != NoLocalID }

func (p Place) String() string { return p.Local.String() }

// LifetimeBound records `'Name: 'Outlives`.
type LifetimeBound struct {
	Name     string
	Outlives string
}

func (b LifetimeBound) String() string { return fmt.Sprintf("'%s: '%s", b.Name, b.Outlives) }
