package borrowck_test

import (
	"testing"

	"borrowck/internal/borrowck"
	"borrowck/internal/mir"
	"borrowck/internal/testkit"
)

var (
	structT = mir.StructType("S")
	refT    = mir.RefTo(mir.StructType("S"), false)
	i64T    = mir.Scalar(mir.TypeI64)
)

// check validates body, runs the checker and the result invariants.
func check(t *testing.T, body *mir.Body) []borrowck.Error {
	t.Helper()
	if err := mir.ValidateBody(body); err != nil {
		t.Fatalf("fixture is malformed: %v", err)
	}
	errs := borrowck.CheckBody(body)
	if err := testkit.CheckErrorInvariants(body, errs); err != nil {
		t.Fatalf("invariants: %v", err)
	}
	return errs
}

func expectKinds(t *testing.T, errs []borrowck.Error, kinds ...borrowck.ErrorKind) {
	t.Helper()
	if len(errs) != len(kinds) {
		t.Fatalf("got %d errors %v, want %v", len(errs), errs, kinds)
	}
	for i, k := range kinds {
		if errs[i].Kind != k {
			t.Fatalf("error %d: got %s, want %s (all: %v)", i, errs[i].Kind, k, errs)
		}
	}
}

func loc(block mir.BlockID, stmt int) mir.Location {
	return mir.Location{Block: block, Statement: stmt}
}

func expectAt(t *testing.T, e borrowck.Error, local mir.LocalID, first, second mir.Location) {
	t.Helper()
	if e.Local != local || e.First != first || e.Second != second {
		t.Fatalf("got %s on %s at %s/%s, want %s at %s/%s", e.Kind, e.Local, e.First, e.Second, local, first, second)
	}
}
