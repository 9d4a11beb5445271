package borrowck_test

import (
	"context"
	"reflect"
	"strings"
	"sync"
	"testing"

	"borrowck/internal/borrowck"
	"borrowck/internal/diag"
	"borrowck/internal/mir"
	"borrowck/internal/testkit"
)

func doubleDrop(name string) *mir.Body {
	b := testkit.NewBody(name)
	s := b.Param("s", structT)
	b.Block()
	b.Drop(s).Drop(s).Return()
	return b.Build()
}

func clean(name string) *mir.Body {
	b := testkit.NewBody(name)
	s := b.Param("s", structT)
	b.Block()
	b.Drop(s).Return()
	return b.Build()
}

func sampleModule() *mir.Module {
	return testkit.Module("sample",
		doubleDrop("f0"), clean("f1"), doubleDrop("f2"), clean("f3"), doubleDrop("f4"))
}

func TestCheckModuleKeepsBodyOrder(t *testing.T) {
	m := sampleModule()
	serial := borrowck.CheckModule(context.Background(), m, &borrowck.ModuleOptions{Jobs: 1})
	parallel := borrowck.CheckModule(context.Background(), m, &borrowck.ModuleOptions{Jobs: 4})

	var names []string
	for _, be := range serial {
		names = append(names, be.Body)
	}
	if want := []string{"f0", "f2", "f4"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("bodies with errors = %v, want %v", names, want)
	}
	if !reflect.DeepEqual(serial, parallel) {
		t.Fatalf("parallel result differs:\n got %v\nwant %v", parallel, serial)
	}
}

func TestCheckModuleEmpty(t *testing.T) {
	if got := borrowck.CheckModule(context.Background(), nil, nil); got != nil {
		t.Fatalf("nil module: %v", got)
	}
	if got := borrowck.CheckModule(context.Background(), testkit.Module("empty"), nil); got != nil {
		t.Fatalf("empty module: %v", got)
	}
}

func TestCheckModuleProgress(t *testing.T) {
	m := sampleModule()
	var (
		mu     sync.Mutex
		events = map[string][]borrowck.BodyStatus{}
		errs   = map[string]int{}
	)
	borrowck.CheckModule(context.Background(), m, &borrowck.ModuleOptions{
		Jobs: 2,
		Progress: func(ev borrowck.BodyEvent) {
			mu.Lock()
			defer mu.Unlock()
			events[ev.Body] = append(events[ev.Body], ev.Status)
			if ev.Status == borrowck.BodyDone {
				errs[ev.Body] = ev.Errors
			}
		},
	})

	want := []borrowck.BodyStatus{borrowck.BodyQueued, borrowck.BodyWorking, borrowck.BodyDone}
	for _, b := range m.Bodies {
		if !reflect.DeepEqual(events[b.Name], want) {
			t.Errorf("%s: events %v, want %v", b.Name, events[b.Name], want)
		}
	}
	if errs["f0"] != 1 || errs["f1"] != 0 {
		t.Errorf("done counts = %v", errs)
	}
}

func TestReportIntoBag(t *testing.T) {
	body := doubleDrop("f")
	body.LifetimeBounds = []mir.LifetimeBound{{Name: "a", Outlives: "static"}}
	errs := borrowck.CheckBody(body)

	bag := diag.NewBag(0)
	borrowck.Report(bag, body, errs)
	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(items))
	}

	d := items[0]
	if d.Code != diag.BorrowDoubleFree || d.Severity != diag.SevError {
		t.Fatalf("first diagnostic = %s %s", d.Code, d.Severity)
	}
	if d.Primary != diag.At("f", 0, 1) {
		t.Fatalf("primary = %+v", d.Primary)
	}
	if d.Message != "value `s` dropped twice" {
		t.Fatalf("message = %q", d.Message)
	}
	if len(d.Notes) != 2 || d.Notes[0].Msg != "first drop at" || d.Notes[0].Pos != diag.At("f", 0, 0) {
		t.Fatalf("notes = %+v", d.Notes)
	}

	lt := items[1]
	if lt.Code != diag.BorrowUndeclaredLifetime || lt.Primary.Valid || len(lt.Notes) != 0 {
		t.Fatalf("lifetime diagnostic = %+v", lt)
	}
	if !strings.Contains(lt.Message, "'a") {
		t.Fatalf("lifetime message = %q", lt.Message)
	}
}

func TestErrorString(t *testing.T) {
	e := borrowck.Error{Kind: borrowck.UseAfterMove, Local: 1, First: loc(0, 1), Second: loc(0, 2)}
	want := "error[E100]: use of moved value `_1`\n  --> moved at 0:1\n  --> used at 0:2"
	if got := e.Error(); got != want {
		t.Fatalf("Error() =\n%s\nwant\n%s", got, want)
	}

	lt := borrowck.Error{Kind: borrowck.UndeclaredLifetime, Local: mir.NoLocalID, Lifetime: "b", Bound: mir.LifetimeBound{Name: "a", Outlives: "b"}}
	if got := lt.Error(); got != "error[E106]: undeclared lifetime `'b` in bound `'a: 'b`" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestErrorKindCodes(t *testing.T) {
	kinds := map[borrowck.ErrorKind]diag.Code{
		borrowck.UseAfterMove:          diag.BorrowUseAfterMove,
		borrowck.DoubleFree:            diag.BorrowDoubleFree,
		borrowck.UseAfterFree:          diag.BorrowUseAfterFree,
		borrowck.MutableBorrowConflict: diag.BorrowMutableConflict,
		borrowck.MoveWhileBorrowed:     diag.BorrowMoveWhileBorrowed,
		borrowck.UndeclaredLifetime:    diag.BorrowUndeclaredLifetime,
	}
	for k, code := range kinds {
		if k.Code() != code {
			t.Errorf("%s.Code() = %s, want %s", k, k.Code(), code)
		}
	}
}
