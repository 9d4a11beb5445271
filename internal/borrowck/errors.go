package borrowck

import (
	"fmt"

	"borrowck/internal/diag"
	"borrowck/internal/mir"
)

type ErrorKind uint8

const (
	UseAfterMove ErrorKind = iota
	DoubleFree
	UseAfterFree
	MutableBorrowConflict
	MoveWhileBorrowed
	UndeclaredLifetime
)

func (k ErrorKind) String() string {
	switch k {
	case UseAfterMove:
		return "UseAfterMove"
	case DoubleFree:
		return "DoubleFree"
	case UseAfterFree:
		return "UseAfterFree"
	case MutableBorrowConflict:
		return "MutableBorrowConflict"
	case MoveWhileBorrowed:
		return "MoveWhileBorrowed"
	case UndeclaredLifetime:
		return "UndeclaredLifetime"
	default:
		return "Unknown"
	}
}

// Code maps the kind onto its stable diagnostic code.
func (k ErrorKind) Code() diag.Code {
	switch k {
	case UseAfterMove:
		return diag.BorrowUseAfterMove
	case DoubleFree:
		return diag.BorrowDoubleFree
	case UseAfterFree:
		return diag.BorrowUseAfterFree
	case MutableBorrowConflict:
		return diag.BorrowMutableConflict
	case MoveWhileBorrowed:
		return diag.BorrowMoveWhileBorrowed
	case UndeclaredLifetime:
		return diag.BorrowUndeclaredLifetime
	default:
		return diag.UnknownCode
	}
}

// Error is one borrow-check violation. First and Second are the two
// program points involved, in program order of discovery:
//
//	UseAfterMove           moved at, used at
//	DoubleFree             first drop, second drop
//	UseAfterFree           dropped at, used at
//	MutableBorrowConflict  existing borrow, new borrow
//	MoveWhileBorrowed      borrowed at, moved at
//
// UndeclaredLifetime sets Lifetime and Bound instead.
type Error struct {
	Kind     ErrorKind
	Local    mir.LocalID
	First    mir.Location
	Second   mir.Location
	Lifetime string
	Bound    mir.LifetimeBound
}

// Labels returns the note text for First and Second.
func (e Error) Labels() (first, second string) {
	switch e.Kind {
	case UseAfterMove:
		return "moved at", "used at"
	case DoubleFree:
		return "first drop at", "second drop at"
	case UseAfterFree:
		return "freed at", "used at"
	case MutableBorrowConflict:
		return "first mutable borrow at", "second mutable borrow at"
	case MoveWhileBorrowed:
		return "borrowed at", "moved at"
	default:
		return "", ""
	}
}

// Message renders the headline with the local spelled by name.
func (e Error) Message(name string) string {
	switch e.Kind {
	case UseAfterMove:
		return fmt.Sprintf("use of moved value `%s`", name)
	case DoubleFree:
		return fmt.Sprintf("value `%s` dropped twice", name)
	case UseAfterFree:
		return fmt.Sprintf("use of freed value `%s`", name)
	case MutableBorrowConflict:
		return fmt.Sprintf("cannot borrow `%s` as mutable more than once", name)
	case MoveWhileBorrowed:
		return fmt.Sprintf("cannot move `%s` while borrowed", name)
	case UndeclaredLifetime:
		return fmt.Sprintf("undeclared lifetime `'%s` in bound `%s`", e.Lifetime, e.Bound)
	default:
		return "borrow check error"
	}
}

// Error renders the error the way the command line prints it:
//
//	error[E100]: use of moved value `_1`
//	  --> moved at 0:1
//	  --> used at 0:2
func (e Error) Error() string {
	head := fmt.Sprintf("error[%s]: %s", e.Kind.Code(), e.Message(e.Local.String()))
	first, second := e.Labels()
	if first == "" {
		return head
	}
	return fmt.Sprintf("%s\n  --> %s %s\n  --> %s %s", head, first, e.First, second, e.Second)
}

// BodyErrors groups the errors found in one body.
type BodyErrors struct {
	Body   string
	Errors []Error
}
