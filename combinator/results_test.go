package combinator

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFailureMerge(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.combinator")
	defer teardown()
	//
	deep := FailureAt(1, "digit")
	shallow := FailureAt(3, "letter")
	if m := deep.Merge(shallow); m.Pos != 1 || m.Expected[0] != "digit" {
		t.Errorf("merge should keep the deeper failure, got %v", m)
	}
	if m := shallow.Merge(deep); m.Pos != 1 || m.Expected[0] != "digit" {
		t.Errorf("merge should be symmetric in the winner, got %v", m)
	}
	tie := FailureAt(1, "letter")
	m := deep.Merge(tie)
	if m.Pos != 1 || len(m.Expected) != 2 || m.Expected[0] != "digit" || m.Expected[1] != "letter" {
		t.Errorf("equal positions should union labels, got %v", m)
	}
	// the neutral record never wins, and stays neutral when merged with itself
	if m := NoFailure().Merge(deep); m.Pos != 1 {
		t.Errorf("no-failure must not win a merge")
	}
	if m := NoFailure().Merge(NoFailure()); !m.IsNone() || len(m.Expected) != 0 {
		t.Errorf("merging two neutral records should stay neutral, got %v", m)
	}
}

func TestResultsMergeOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.combinator")
	defer teardown()
	//
	tt := tailsFor("xy")
	a := Success[rune](tt, "left")
	b := Success[rune](tt, "right")
	merged := a.Merge(b)
	vs := values(merged)
	if len(vs) != 2 || vs[0] != "left" || vs[1] != "right" {
		t.Errorf("merge should preserve operand order, got %v", vs)
	}
	// merging is associative on the success multiset
	c := Success[rune](tt, "third")
	l := a.Merge(b).Merge(c)
	r := a.Merge(b.Merge(c))
	lv, rv := values(l), values(r)
	for i := range lv {
		if lv[i] != rv[i] {
			t.Errorf("merge associativity violated at %d: %v vs %v", i, lv, rv)
		}
	}
}

func TestEmptyIsChoiceIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.combinator")
	defer teardown()
	//
	tt := tailsFor("a")
	p := Char('a')
	left := Empty[rune, rune]().Or(p)(tt)
	right := p.Or(Empty[rune, rune]())(tt)
	plain := p(tt)
	for _, r := range []Results[rune, rune]{left, right} {
		if len(r.Successes()) != len(plain.Successes()) ||
			r.Successes()[0].Value != plain.Successes()[0].Value {
			t.Errorf("empty should be identity of choice up to failure records")
		}
	}
}

func TestRelabelOnlyAtPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.combinator")
	defer teardown()
	//
	r := FailWith[rune, int](3, "a")
	if got := r.Relabel(3, "b"); got.Failure().Expected[0] != "b" {
		t.Errorf("relabel at matching position should replace labels")
	}
	if got := r.Relabel(2, "b"); got.Failure().Expected[0] != "a" {
		t.Errorf("relabel at non-matching position must not replace labels")
	}
	tt := tailsFor("")
	succ := Success[rune](tt, 1).Merge(FromFailure[rune, int](FailureAt(0, "x")))
	if got := succ.Relabel(0, "b"); got.Failure().Expected[0] != "x" {
		t.Errorf("relabel must not touch results that have successes")
	}
}

func TestGroupByLength(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.combinator")
	defer teardown()
	//
	tt := tailsFor("ab")
	r := Outcome(1, tt.Drop(1), "x").
		Merge(Outcome(2, tt.Drop(2), "y")).
		Merge(Outcome(1, tt.Drop(1), "z"))
	groups := GroupByLength(r)
	if len(groups) != 2 {
		t.Fatalf("expected 2 length groups, got %d", len(groups))
	}
	if groups[0].Consumed != 1 || len(groups[0].Values) != 2 ||
		groups[0].Values[0] != "x" || groups[0].Values[1] != "z" {
		t.Errorf("group of length 1 should hold x,z in order, got %v", groups[0].Values)
	}
	if groups[1].Consumed != 2 || groups[1].Values[0] != "y" {
		t.Errorf("group of length 2 should hold y, got %v", groups[1].Values)
	}
}
