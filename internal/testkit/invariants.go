package testkit

import (
	"fmt"

	"borrowck/internal/borrowck"
	"borrowck/internal/mir"
)

// CheckErrorInvariants runs the structural invariants every checker
// result must satisfy:
// 1) locations point at a statement or terminator of the body
// 2) located errors come in program order of their second point,
//    lifetime errors after them
// 3) no error is reported twice
// 4) errors about locals name a declared local
func CheckErrorInvariants(body *mir.Body, errs []borrowck.Error) error {
	if body == nil {
		return fmt.Errorf("nil body")
	}
	seen := make(map[borrowck.Error]bool, len(errs))
	var prev *mir.Location
	lifetimes := false
	for i, e := range errs {
		if seen[e] {
			return fmt.Errorf("error %d reported twice: %v", i, e)
		}
		seen[e] = true

		if e.Kind == borrowck.UndeclaredLifetime {
			lifetimes = true
			if e.Lifetime == "" {
				return fmt.Errorf("error %d: lifetime error without a name", i)
			}
			continue
		}
		if lifetimes {
			return fmt.Errorf("error %d: %s after lifetime errors", i, e.Kind)
		}
		if body.Local(e.Local) == nil {
			return fmt.Errorf("error %d: unknown local %s", i, e.Local)
		}
		for _, loc := range []mir.Location{e.First, e.Second} {
			if err := checkLocation(body, loc); err != nil {
				return fmt.Errorf("error %d: %w", i, err)
			}
		}
		if prev != nil && e.Second.Less(*prev) {
			return fmt.Errorf("error %d at %s reported after %s", i, e.Second, *prev)
		}
		second := e.Second
		prev = &second
	}
	return nil
}

func checkLocation(body *mir.Body, loc mir.Location) error {
	blk := body.Block(loc.Block)
	if blk == nil {
		return fmt.Errorf("location %s: no block %s", loc, loc.Block)
	}
	if loc.Statement < 0 || loc.Statement > len(blk.Statements) {
		return fmt.Errorf("location %s: block %s has %d statements", loc, loc.Block, len(blk.Statements))
	}
	return nil
}
