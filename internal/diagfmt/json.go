package diagfmt

import (
	"encoding/json"
	"io"

	"borrowck/internal/diag"
)

// LocationJSON представляет позицию в теле функции
type LocationJSON struct {
	Body      string `json:"body"`
	Block     int32  `json:"block"`
	Statement int    `json:"statement"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Title    string        `json:"title"`
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
	Notes    []NoteJSON    `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Source      string           `json:"source,omitempty"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Dropped     int              `json:"dropped,omitempty"`
}

func makeLocation(p diag.Pos) LocationJSON {
	return LocationJSON{Body: p.Body, Block: p.Block, Statement: p.Stmt}
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for i := range maxItems {
		d := &items[i]
		out := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
		}
		if d.Primary.Valid {
			loc := makeLocation(d.Primary)
			out.Location = &loc
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				out.Notes = append(out.Notes, NoteJSON{Message: n.Msg, Location: makeLocation(n.Pos)})
			}
		}
		diagnostics = append(diagnostics, out)
	}

	return DiagnosticsOutput{
		Source:      opts.Source,
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
		Dropped:     bag.Dropped() + len(items) - maxItems,
	}
}

// JSON пишет диагностики одним JSON-документом.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, opts))
}
