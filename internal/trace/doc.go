// Package trace emits structured begin/end events for the driver, its
// passes, modules, bodies and basic blocks.
//
// A tracer travels in the context. Enter opens a span under whatever
// span the context already carries, so nesting follows the call tree:
//
//	ctx, span := trace.Enter(ctx, trace.ScopeBody, body.Name)
//	defer span.End("")
//	span.Attr("iterations", n)
//
// Levels pick how deep the output goes: phase (driver and passes),
// detail (adds modules and bodies) and debug (adds per-block points).
//
//	borrowck check --trace=- --trace-level=detail module.toml
package trace
