package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"borrowck/internal/borrowck"
	"borrowck/internal/diag"
	"borrowck/internal/mir"
	"borrowck/internal/mirfile"
	"borrowck/internal/observ"
	"borrowck/internal/trace"
	"borrowck/internal/version"
)

// Options tunes CheckFile and CheckFiles.
type Options struct {
	MaxDiagnostics int
	// Jobs bounds both the files checked at once and the bodies of one
	// file checked at once; <= 0 selects GOMAXPROCS.
	Jobs     int
	Cache    *DiskCache
	Progress ProgressSink
	OnPhase  PhaseObserver
}

// Result is the outcome of checking one file.
type Result struct {
	Path   string
	Module *mir.Module
	Bag    *diag.Bag
	// Errors holds the borrow errors of the valid bodies, in body order.
	Errors []borrowck.BodyErrors
	// Invalid lists the bodies skipped by validation.
	Invalid []string
	Digest  Digest
	Cached  bool
	// LoadErr is set when the file could not be read or decoded.
	LoadErr error
	Timing  observ.Report
}

// HasErrors reports whether the file produced any error diagnostic.
func (r *Result) HasErrors() bool {
	return r != nil && r.Bag != nil && r.Bag.HasErrors()
}

type run struct {
	ctx   context.Context
	path  string
	opts  *Options
	span  *trace.Span
	timer *observ.Timer
	res   *Result
}

// CheckFile runs load, validate, check and report over one MIR file.
// Problems with the input become diagnostics in the result's bag; the
// returned error is reserved for cancellation.
func CheckFile(ctx context.Context, path string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	r := &run{
		path:  path,
		opts:  opts,
		timer: observ.NewTimer(),
		res:   &Result{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)},
	}
	r.ctx, r.span = trace.Enter(ctx, trace.ScopeDriver, path)
	defer func() {
		r.res.Timing = r.timer.Report()
		r.span.Attr("diagnostics", r.res.Bag.Len()).End("")
	}()

	r.progress(Event{Stage: StageLoad, Status: StatusWorking})
	if !r.load() {
		r.progress(Event{Stage: StageLoad, Status: StatusError})
		return r.res, nil
	}
	valid := r.validate()
	if err := ctx.Err(); err != nil {
		return r.res, err
	}
	r.check(valid)
	if err := ctx.Err(); err != nil {
		return r.res, err
	}
	r.report()

	status := StatusDone
	if r.res.HasErrors() {
		status = StatusError
	}
	r.progress(Event{Stage: StageReport, Status: status, Errors: r.res.Bag.Len()})
	return r.res, nil
}

func (r *run) progress(ev Event) {
	if r.opts.Progress == nil {
		return
	}
	ev.File = r.path
	r.opts.Progress.OnEvent(ev)
}

// phase runs fn as stage, feeding the timer, the tracer and the phase
// observer. fn returns a short note for the timings table.
func (r *run) phase(stage Stage, fn func(ctx context.Context) string) {
	if r.opts.OnPhase != nil {
		r.opts.OnPhase(PhaseEvent{File: r.path, Stage: stage, Status: PhaseStart})
	}
	lap := r.timer.Start(string(stage))
	ctx, span := trace.Enter(r.ctx, trace.ScopePass, string(stage))

	note := fn(ctx)

	span.End(note)
	elapsed := lap.Stop(note)
	if r.opts.OnPhase != nil {
		r.opts.OnPhase(PhaseEvent{File: r.path, Stage: stage, Status: PhaseEnd, Elapsed: elapsed})
	}
}

func (r *run) load() bool {
	ok := false
	r.phase(StageLoad, func(context.Context) string {
		data, err := os.ReadFile(r.path)
		if err == nil {
			r.res.Digest = contentDigest(data)
			r.res.Module, err = mirfile.Read(r.path, data)
		}
		if err != nil {
			r.res.LoadErr = err
			diag.ReportError(r.res.Bag, diag.MirLoadFailed, diag.Pos{}, err.Error()).Emit()
			return "failed"
		}
		ok = true
		return fmt.Sprintf("%d bodies", len(r.res.Module.Bodies))
	})
	return ok
}

// validate reports malformed bodies and returns the module restricted to
// the bodies that are safe to check.
func (r *run) validate() *mir.Module {
	m := r.res.Module
	valid := &mir.Module{Name: m.Name}
	r.phase(StageValidate, func(context.Context) string {
		seen := make(map[string]bool, len(m.Bodies))
		for i, b := range m.Bodies {
			var err error
			name := fmt.Sprintf("#%d", i)
			switch {
			case b == nil:
				err = errors.New("missing body")
			case seen[b.Name]:
				name = b.Name
				err = errors.New("defined twice")
			default:
				name = b.Name
				seen[b.Name] = true
				err = mir.ValidateBody(b)
			}
			if err == nil {
				valid.Bodies = append(valid.Bodies, b)
				continue
			}
			r.res.Invalid = append(r.res.Invalid, name)
			rb := diag.ReportError(r.res.Bag, diag.MirInvalidBody, diag.Pos{Body: name}, fmt.Sprintf("malformed body `%s`", name))
			for _, line := range strings.Split(err.Error(), "\n") {
				rb.WithNote(diag.Pos{Body: name}, line)
			}
			rb.Emit()
		}
		return fmt.Sprintf("%d invalid", len(r.res.Invalid))
	})
	return valid
}

func (r *run) cacheKey() Digest {
	return combineDigest(r.res.Digest, version.Version, fmt.Sprint(diskCacheSchemaVersion))
}

func (r *run) check(valid *mir.Module) {
	r.phase(StageCheck, func(ctx context.Context) string {
		key := r.cacheKey()
		var payload DiskPayload
		if hit, err := r.opts.Cache.Get(key, &payload); err == nil && hit &&
			payload.Version == version.Version && payload.Bodies == len(valid.Bodies) {
			r.res.Errors = payload.Errors
			r.res.Cached = true
			for _, b := range valid.Bodies {
				n := errorCount(payload.Errors, b.Name)
				r.progress(Event{Body: b.Name, Stage: StageCheck, Status: bodyStatus(borrowck.BodyEvent{Status: borrowck.BodyDone, Errors: n}), Errors: n})
			}
			return "cached"
		}

		r.res.Errors = borrowck.CheckModule(ctx, valid, &borrowck.ModuleOptions{
			Jobs: r.opts.Jobs,
			Progress: func(ev borrowck.BodyEvent) {
				r.progress(Event{Body: ev.Body, Stage: StageCheck, Status: bodyStatus(ev), Errors: ev.Errors, Elapsed: ev.Elapsed})
			},
		})
		if ctx.Err() == nil {
			// write failures are ignored
			_ = r.opts.Cache.Put(key, &DiskPayload{
				Module:  valid.Name,
				Version: version.Version,
				Bodies:  len(valid.Bodies),
				Errors:  r.res.Errors,
			})
		}
		return fmt.Sprintf("%d bodies with errors", len(r.res.Errors))
	})
}

func (r *run) report() {
	r.phase(StageReport, func(context.Context) string {
		n := 0
		for _, be := range r.res.Errors {
			body := r.res.Module.Body(be.Body)
			if body == nil {
				continue
			}
			borrowck.Report(r.res.Bag, body, be.Errors)
			n += len(be.Errors)
		}
		return fmt.Sprintf("%d errors", n)
	})
}

func bodyStatus(ev borrowck.BodyEvent) Status {
	switch ev.Status {
	case borrowck.BodyQueued:
		return StatusQueued
	case borrowck.BodyWorking:
		return StatusWorking
	default:
		if ev.Errors > 0 {
			return StatusError
		}
		return StatusDone
	}
}

func errorCount(all []borrowck.BodyErrors, body string) int {
	for _, be := range all {
		if be.Body == body {
			return len(be.Errors)
		}
	}
	return 0
}
