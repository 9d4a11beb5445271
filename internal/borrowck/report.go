package borrowck

import (
	"borrowck/internal/diag"
	"borrowck/internal/mir"
)

// Report converts errors found in body into diagnostics. The primary
// position is the later program point; both points become notes in
// the order the command line prints them.
func Report(r diag.Reporter, body *mir.Body, errs []Error) {
	for _, e := range errs {
		pos := func(loc mir.Location) diag.Pos {
			return diag.At(body.Name, int32(loc.Block), loc.Statement)
		}
		if e.Kind == UndeclaredLifetime {
			diag.ReportError(r, e.Kind.Code(), diag.Pos{Body: body.Name}, e.Message("")).Emit()
			continue
		}
		first, second := e.Labels()
		diag.ReportError(r, e.Kind.Code(), pos(e.Second), e.Message(body.LocalName(e.Local))).
			WithNote(pos(e.First), first).
			WithNote(pos(e.Second), second).
			Emit()
	}
}
