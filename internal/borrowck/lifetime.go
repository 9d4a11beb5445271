package borrowck

import (
	"slices"

	"borrowck/internal/mir"
)

// staticLifetime is always in scope.
const staticLifetime = "static"

// checkLifetimes confirms that every lifetime named in a bound is
// declared on the body. Bounds implied by elision are checked too.
func checkLifetimes(body *mir.Body) []Error {
	var errs []Error
	for _, bound := range append(slices.Clone(body.LifetimeBounds), ElidedBounds(body)...) {
		names := []string{bound.Name}
		if bound.Outlives != bound.Name {
			names = append(names, bound.Outlives)
		}
		for _, name := range names {
			if name != staticLifetime && !slices.Contains(body.LifetimeParams, name) {
				errs = append(errs, Error{Kind: UndeclaredLifetime, Local: mir.NoLocalID, Lifetime: name, Bound: bound})
			}
		}
	}
	return errs
}

// ElidedBounds returns the bounds elision implies. It applies only
// when the body states no bounds of its own and exactly one parameter
// carries an input lifetime: every other lifetime of the result must
// then outlive it.
func ElidedBounds(body *mir.Body) []mir.LifetimeBound {
	if len(body.LifetimeBounds) > 0 {
		return nil
	}
	var inputs []string
	for _, p := range body.Params {
		if lt, ok := p.InputLifetime(); ok {
			inputs = append(inputs, lt)
		}
	}
	if len(inputs) != 1 {
		return nil
	}
	var out []mir.LifetimeBound
	for _, lt := range body.Result.Lifetimes() {
		bound := mir.LifetimeBound{Name: lt, Outlives: inputs[0]}
		if lt == inputs[0] || slices.Contains(out, bound) {
			continue
		}
		out = append(out, bound)
	}
	return out
}
