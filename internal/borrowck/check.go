// Package borrowck enforces ownership and borrowing rules over MIR
// bodies. It runs a forward dataflow analysis to a fixpoint, ends
// borrows at the last use of the reference that holds them and checks
// lifetime bounds.
package borrowck

import (
	"context"
	"fmt"

	"borrowck/internal/mir"
	"borrowck/internal/trace"
)

type checker struct {
	body *mir.Body
	cfg  *mir.CFG
	live *mir.Liveness

	reachable []bool
	entries   []*state
	exits     []*state

	emitting bool
	errs     []Error
}

// CheckBody borrow-checks one body. The body must pass
// mir.ValidateBody. Errors come back in block order, then statement
// order, and lifetime errors last.
func CheckBody(body *mir.Body) []Error {
	return CheckBodyContext(context.Background(), body)
}

// CheckBodyContext is CheckBody with tracing taken from ctx.
func CheckBodyContext(ctx context.Context, body *mir.Body) []Error {
	if body == nil || len(body.Blocks) == 0 {
		return nil
	}
	_, span := trace.Enter(ctx, trace.ScopeBody, body.Name)
	defer span.End("")

	c := newChecker(body)
	span.Attr("iterations", c.solve())
	c.finalPass(span)
	c.errs = append(c.errs, checkLifetimes(body)...)
	span.Attr("errors", len(c.errs))
	return c.errs
}

func newChecker(body *mir.Body) *checker {
	g := mir.BuildCFG(body)
	return &checker{
		body:      body,
		cfg:       g,
		live:      mir.ComputeLiveness(body, g),
		reachable: g.Reachable(),
		entries:   make([]*state, len(body.Blocks)),
		exits:     make([]*state, len(body.Blocks)),
	}
}

// executable reports whether a block takes part in the analysis. Blocks
// the entry cannot reach never run. Blocks ending in Unreachable are
// analyzed but have no successors, so they never feed a join.
func (c *checker) executable(id mir.BlockID) bool {
	return c.reachable[id]
}

// finalPass re-runs every analyzed block from its fixpoint entry state,
// this time collecting errors.
func (c *checker) finalPass(span *trace.Span) {
	for i := range c.body.Blocks {
		id := mir.BlockID(i) //nolint:gosec // bounded by block count
		if c.entries[id] == nil {
			continue
		}
		before := len(c.errs)
		c.transfer(id, *c.entries[id], true)
		span.Point(trace.ScopeBlock, id.String(), fmt.Sprintf("errors=%d", len(c.errs)-before))
	}
}
