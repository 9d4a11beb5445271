package borrowck

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"borrowck/internal/mir"
	"borrowck/internal/trace"
)

// BodyStatus is the lifecycle of one body inside CheckModule.
type BodyStatus uint8

const (
	BodyQueued BodyStatus = iota
	BodyWorking
	BodyDone
)

// BodyEvent reports progress of a body.
type BodyEvent struct {
	Body    string
	Status  BodyStatus
	Errors  int
	Elapsed time.Duration
}

// ModuleOptions tunes CheckModule. The zero value checks bodies with
// GOMAXPROCS workers and reports no progress.
type ModuleOptions struct {
	Jobs     int
	Progress func(BodyEvent)
}

// CheckModule checks every body of m independently and returns the
// bodies that have errors, in module order.
func CheckModule(ctx context.Context, m *mir.Module, opts *ModuleOptions) []BodyErrors {
	if m == nil || len(m.Bodies) == 0 {
		return nil
	}
	if opts == nil {
		opts = &ModuleOptions{}
	}
	progress := opts.Progress
	if progress == nil {
		progress = func(BodyEvent) {}
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	ctx, span := trace.Enter(ctx, trace.ScopeModule, m.Name)
	defer span.End("")
	span.Attr("bodies", len(m.Bodies))

	for _, b := range m.Bodies {
		progress(BodyEvent{Body: b.Name, Status: BodyQueued})
	}

	results := make([][]Error, len(m.Bodies))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, b := range m.Bodies {
		g.Go(func() error {
			progress(BodyEvent{Body: b.Name, Status: BodyWorking})
			start := time.Now()
			results[i] = CheckBodyContext(ctx, b)
			progress(BodyEvent{Body: b.Name, Status: BodyDone, Errors: len(results[i]), Elapsed: time.Since(start)})
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // workers never fail

	var out []BodyErrors
	for i, errs := range results {
		if len(errs) == 0 {
			continue
		}
		out = append(out, BodyErrors{Body: m.Bodies[i].Name, Errors: errs})
	}
	return out
}
