package diag

// Note is a secondary position with a short label, e.g. "moved at".
type Note struct {
	Pos Pos
	Msg string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Pos
	Notes    []Note
}

// IsError reports whether d fails the check.
func (d *Diagnostic) IsError() bool {
	return d.Severity >= SevError
}
