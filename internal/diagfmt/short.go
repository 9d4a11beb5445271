package diagfmt

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"borrowck/internal/diag"
)

// Short prints one diagnostic per line with the body@location column
// padded to a common width, so messages line up:
//
//	error E100 main@0:2    use of moved value `x`
//	error E103 helper@1:0  cannot borrow `v` as mutable more than once
func Short(w io.Writer, bag *diag.Bag, opts ShortOpts) error {
	p := newPalette(opts.Color)
	type row struct {
		label string
		sev   diag.Severity
		code  diag.Code
		where string
		msg   string
	}
	var rows []row
	items := bag.Items()
	for i := range items {
		d := &items[i]
		rows = append(rows, row{d.Severity.String(), d.Severity, d.Code, d.Primary.Body + "@" + d.Primary.String(), d.Message})
		if !opts.Notes {
			continue
		}
		for _, n := range d.Notes {
			rows = append(rows, row{diag.SevNote.String(), diag.SevNote, d.Code, n.Pos.Body + "@" + n.Pos.String(), n.Msg})
		}
	}

	width := 0
	for _, r := range rows {
		width = max(width, runewidth.StringWidth(r.where))
	}
	for _, r := range rows {
		label := p.severity(r.sev).Sprint(r.label)
		if _, err := fmt.Fprintf(w, "%s %s %s  %s\n", label, r.code.ID(), runewidth.FillRight(r.where, width), r.msg); err != nil {
			return err
		}
	}
	return nil
}
