package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Ownership and borrowing
	BorrowUseAfterMove       Code = 100
	BorrowDoubleFree         Code = 101
	BorrowUseAfterFree       Code = 102
	BorrowMutableConflict    Code = 103
	BorrowMoveWhileBorrowed  Code = 105
	BorrowUndeclaredLifetime Code = 106

	// Malformed input handed over by lowering
	MirInvalidBody Code = 200
	MirLoadFailed  Code = 201
)

var (
	codeDescription = map[Code]string{
		UnknownCode:              "Unknown error",
		BorrowUseAfterMove:       "use of moved value",
		BorrowDoubleFree:         "value dropped twice",
		BorrowUseAfterFree:       "use of freed value",
		BorrowMutableConflict:    "conflicting borrows",
		BorrowMoveWhileBorrowed:  "move out of borrowed value",
		BorrowUndeclaredLifetime: "undeclared lifetime in bound",
		MirInvalidBody:           "malformed MIR body",
		MirLoadFailed:            "cannot load MIR module",
	}
)

// ID is the stable short form printed in brackets, e.g. E100.
func (c Code) ID() string {
	return fmt.Sprintf("E%03d", int(c))
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return c.ID()
}
