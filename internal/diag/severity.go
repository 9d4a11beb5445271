package diag

// Severity orders diagnostics; only SevError fails a check.
type Severity uint8

const (
	SevNote Severity = iota
	SevWarning
	SevError
)

// String is the word printed in front of a rendered diagnostic.
func (s Severity) String() string {
	switch s {
	case SevNote:
		return "note"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}
