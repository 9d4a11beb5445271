package mir_test

import (
	"reflect"
	"testing"

	"borrowck/internal/mir"
	"borrowck/internal/testkit"
)

func TestBuildCFG_Diamond(t *testing.T) {
	b := testkit.NewBody("diamond")
	cond := b.Param("cond", mir.Scalar(mir.TypeBool))
	bb := b.Blocks(4)
	b.In(bb[0]).Switch(mir.Copy(cond), bb[2], bb[1])
	b.In(bb[1]).Goto(bb[3])
	b.In(bb[2]).Goto(bb[3])
	b.In(bb[3]).Return()

	g := mir.BuildCFG(b.Build())
	wantSuccs := [][]mir.BlockID{{1, 2}, {3}, {3}, nil}
	wantPreds := [][]mir.BlockID{nil, {0}, {0}, {1, 2}}
	if !reflect.DeepEqual(g.Succs, wantSuccs) {
		t.Fatalf("succs = %v, want %v", g.Succs, wantSuccs)
	}
	if !reflect.DeepEqual(g.Preds, wantPreds) {
		t.Fatalf("preds = %v, want %v", g.Preds, wantPreds)
	}
}

func TestBuildCFG_SwitchToSameBlockHasOnePred(t *testing.T) {
	b := testkit.NewBody("same_target")
	cond := b.Param("cond", mir.Scalar(mir.TypeI64))
	bb := b.Blocks(2)
	b.In(bb[0]).Switch(mir.Copy(cond), bb[1], bb[1], bb[1])
	b.In(bb[1]).Return()

	g := mir.BuildCFG(b.Build())
	if len(g.Succs[0]) != 3 {
		t.Fatalf("succs = %v, want every edge", g.Succs[0])
	}
	if !reflect.DeepEqual(g.Preds[1], []mir.BlockID{0}) {
		t.Fatalf("preds = %v, want [bb0]", g.Preds[1])
	}
}

func TestReachable(t *testing.T) {
	b := testkit.NewBody("reach")
	bb := b.Blocks(4)
	b.In(bb[0]).Goto(bb[2])
	b.In(bb[1]).Goto(bb[2])
	b.In(bb[2]).Goto(bb[0])
	b.In(bb[3]).Return()

	got := mir.BuildCFG(b.Build()).Reachable()
	want := []bool{true, false, true, false}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("reachable = %v, want %v", got, want)
	}
}

func TestReachable_Empty(t *testing.T) {
	if got := mir.BuildCFG(&mir.Body{}).Reachable(); len(got) != 0 {
		t.Fatalf("reachable = %v", got)
	}
}
