// Package diag defines the diagnostic model the borrow checker reports
// into.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: note, warning or error; only errors fail a check.
//   - Code: numeric identifier printed as E1xx (see codes.go).
//   - Message: the headline, with the offending local named.
//   - Primary: the Pos (body, block, statement) where the violation
//     was detected.
//   - Notes: the program points involved, in the order they should be
//     printed ("moved at", "used at").
//
// Producers emit through a Reporter, usually via ReportBuilder. *Bag is
// the Reporter the driver collects into:
//
//	diag.ReportError(r, diag.BorrowUseAfterMove, usedAt, "use of moved value `x`").
//		WithNote(movedAt, "moved at").
//		WithNote(usedAt, "used at").
//		Emit()
//
// Package diag performs no IO. Rendering lives in internal/diagfmt.
package diag
