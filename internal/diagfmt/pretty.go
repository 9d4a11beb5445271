package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"borrowck/internal/diag"
)

type palette struct {
	err, warn, info, arrow, pos, dim *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		info:  color.New(color.FgCyan, color.Bold),
		arrow: color.New(color.FgBlue, color.Bold),
		pos:   color.New(color.Bold),
		dim:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.arrow, p.pos, p.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty печатает диагностики в порядке bag.Items():
//
//	error[E100]: use of moved value `x`
//	  --> moved at 0:1
//	  --> used at 0:2
//	  = in body `main`
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	items := bag.Items()
	for i := range items {
		d := &items[i]
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		head := p.severity(d.Severity).Sprintf("%s[%s]", d.Severity, d.Code.ID())
		if _, err := fmt.Fprintf(w, "%s: %s\n", head, p.pos.Sprint(d.Message)); err != nil {
			return err
		}
		if opts.ShowNotes {
			for _, n := range d.Notes {
				if _, err := fmt.Fprintf(w, "  %s %s %s\n", p.arrow.Sprint("-->"), n.Msg, n.Pos); err != nil {
					return err
				}
			}
		}
		if opts.ShowBody && d.Primary.Body != "" {
			where := fmt.Sprintf("in body `%s`", d.Primary.Body)
			if opts.Source != "" {
				where = fmt.Sprintf("in %s, body `%s`", opts.Source, d.Primary.Body)
			}
			if _, err := fmt.Fprintf(w, "  %s %s\n", p.arrow.Sprint("="), p.dim.Sprint(where)); err != nil {
				return err
			}
		}
	}
	if n := bag.Dropped(); n > 0 {
		if _, err := fmt.Fprintf(w, "%s\n", p.dim.Sprintf("... %d more diagnostics not shown", n)); err != nil {
			return err
		}
	}
	return nil
}
