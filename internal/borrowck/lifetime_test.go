package borrowck_test

import (
	"reflect"
	"testing"

	"borrowck/internal/borrowck"
	"borrowck/internal/mir"
	"borrowck/internal/testkit"
)

func lifetimeBody(name string) *testkit.BodyBuilder {
	b := testkit.NewBody(name)
	b.Block()
	b.Return()
	return b
}

func TestDeclaredBoundIsAccepted(t *testing.T) {
	b := lifetimeBody("declared").Lifetimes("a", "b").Bound("a", "b")
	expectKinds(t, check(t, b.Build()))
}

func TestUndeclaredOutlivesLifetime(t *testing.T) {
	b := lifetimeBody("undeclared").Lifetimes("a").Bound("a", "b")
	errs := check(t, b.Build())
	expectKinds(t, errs, borrowck.UndeclaredLifetime)
	if errs[0].Lifetime != "b" {
		t.Fatalf("lifetime = %q, want b", errs[0].Lifetime)
	}
	if errs[0].Local != mir.NoLocalID {
		t.Fatalf("lifetime error names local %s", errs[0].Local)
	}
	want := mir.LifetimeBound{Name: "a", Outlives: "b"}
	if errs[0].Bound != want {
		t.Fatalf("bound = %s, want %s", errs[0].Bound, want)
	}
}

func TestStaticNeedsNoDeclaration(t *testing.T) {
	b := lifetimeBody("static").Lifetimes("a").Bound("a", "static")
	expectKinds(t, check(t, b.Build()))
}

func TestBothSidesUndeclared(t *testing.T) {
	b := lifetimeBody("both").Bound("x", "y")
	errs := check(t, b.Build())
	expectKinds(t, errs, borrowck.UndeclaredLifetime, borrowck.UndeclaredLifetime)
	if errs[0].Lifetime != "x" || errs[1].Lifetime != "y" {
		t.Fatalf("got %q then %q, want x then y", errs[0].Lifetime, errs[1].Lifetime)
	}
}

func TestReflexiveBoundReportedOnce(t *testing.T) {
	b := lifetimeBody("reflexive").Bound("a", "a")
	errs := check(t, b.Build())
	expectKinds(t, errs, borrowck.UndeclaredLifetime)
}

func elidedBody(declared ...string) *mir.Body {
	b := testkit.NewBody("elided").
		Returns(mir.RefWithLifetime("b", structT, false)).
		Lifetimes(declared...)
	b.Param("p", mir.RefWithLifetime("a", structT, false))
	b.Block()
	b.Return()
	return b.Build()
}

func TestElidedBoundNeedsDeclaredResultLifetime(t *testing.T) {
	errs := check(t, elidedBody("a"))
	expectKinds(t, errs, borrowck.UndeclaredLifetime)
	want := mir.LifetimeBound{Name: "b", Outlives: "a"}
	if errs[0].Lifetime != "b" || errs[0].Bound != want {
		t.Fatalf("got %q in %s, want b in %s", errs[0].Lifetime, errs[0].Bound, want)
	}

	expectKinds(t, check(t, elidedBody("a", "b")))
}

func TestElidedBounds(t *testing.T) {
	got := borrowck.ElidedBounds(elidedBody("a", "b"))
	want := []mir.LifetimeBound{{Name: "b", Outlives: "a"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ElidedBounds = %v, want %v", got, want)
	}
}

func TestElisionSkippedWithExplicitBounds(t *testing.T) {
	body := elidedBody("a", "b")
	body.LifetimeBounds = []mir.LifetimeBound{{Name: "a", Outlives: "static"}}
	if got := borrowck.ElidedBounds(body); got != nil {
		t.Fatalf("ElidedBounds = %v, want none", got)
	}
}

func TestElisionSkippedWithTwoInputLifetimes(t *testing.T) {
	b := testkit.NewBody("two_inputs").Returns(mir.RefWithLifetime("c", structT, false))
	b.Param("p", mir.RefWithLifetime("a", structT, false))
	b.Param("q", mir.RefWithLifetime("b", structT, false))
	b.Block()
	b.Return()
	body := b.Build()
	if got := borrowck.ElidedBounds(body); got != nil {
		t.Fatalf("ElidedBounds = %v, want none", got)
	}
	expectKinds(t, check(t, body))
}

func TestElisionIgnoresLifetimesBehindArrays(t *testing.T) {
	b := testkit.NewBody("array_input").Returns(mir.RefWithLifetime("b", structT, false)).Lifetimes("a", "b")
	b.Param("p", mir.ArrayOf(mir.RefWithLifetime("a", structT, false)))
	b.Block()
	b.Return()
	if got := borrowck.ElidedBounds(b.Build()); got != nil {
		t.Fatalf("ElidedBounds = %v, want none", got)
	}

	// a tuple element still counts
	b = testkit.NewBody("tuple_input").Returns(mir.RefWithLifetime("b", structT, false)).Lifetimes("a", "b")
	b.Param("p", mir.TupleOf(i64T, mir.RefWithLifetime("a", structT, false)))
	b.Block()
	b.Return()
	got := borrowck.ElidedBounds(b.Build())
	want := []mir.LifetimeBound{{Name: "b", Outlives: "a"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ElidedBounds = %v, want %v", got, want)
	}
}

func TestLifetimeErrorsComeLast(t *testing.T) {
	b := testkit.NewBody("mixed").Bound("a", "b")
	s := b.Param("s", structT)
	b.Block()
	b.Drop(s).Drop(s).Return()

	errs := check(t, b.Build())
	expectKinds(t, errs, borrowck.DoubleFree, borrowck.UndeclaredLifetime, borrowck.UndeclaredLifetime)
}
