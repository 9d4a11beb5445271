package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
	ShowBody  bool   // append the "in body" line
	Source    string // module file the diagnostics came from, optional
}

// ShortOpts configures the one-line-per-diagnostic output.
type ShortOpts struct {
	Color bool
	Notes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	Max          int // обрезка вывода, не Bag
	IncludeNotes bool
	Source       string
}
