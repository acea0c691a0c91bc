package combinator

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// tailsFor builds a tail table for plain combinator tests, i.e. without
// any non-terminal memo fields.
func tailsFor(input string) *Tails[rune] {
	runes := []rune(input)
	var next *Tails[rune]
	for i := len(runes); i >= 0; i-- {
		next = NewTails(runes[i:], 0, next)
	}
	return next
}

func values[R any](r Results[rune, R]) []R {
	var vs []R
	for _, s := range r.Successes() {
		vs = append(vs, s.Value)
	}
	return vs
}

// --- the Tests -------------------------------------------------------------

func TestPureAndFail(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.combinator")
	defer teardown()
	//
	tt := tailsFor("abc")
	r := Pure[rune](7)(tt)
	if !r.HasSuccess() || !r.Failure().IsNone() {
		t.Errorf("Pure should succeed without failure record, got %v", r.Failure())
	}
	if s := r.Successes(); len(s) != 1 || s[0].Consumed != 0 || s[0].Value != 7 {
		t.Errorf("Pure should yield one zero-length success with value 7")
	}
	f := Fail[rune, int]("boom")(tt)
	if f.HasSuccess() {
		t.Errorf("Fail should not succeed")
	}
	if fail := f.Failure(); fail.Pos != 3 || len(fail.Expected) != 1 || fail.Expected[0] != "boom" {
		t.Errorf("Fail should record (3, [boom]), got %v", fail)
	}
}

func TestFunctorLaws(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.combinator")
	defer teardown()
	//
	tt := tailsFor("ab")
	p := Char('a')
	id := Map(p, func(r rune) rune { return r })
	// fmap id p ≡ p
	rp, rid := p(tt), id(tt)
	if len(rp.Successes()) != len(rid.Successes()) || rid.Successes()[0].Value != rp.Successes()[0].Value {
		t.Errorf("fmap(id, p) differs from p")
	}
	// fmap (f∘g) ≡ fmap f ∘ fmap g
	f := func(n int) int { return n * 2 }
	g := func(r rune) int { return int(r - '0') }
	lhs := Map(p, func(r rune) int { return f(g(r)) })(tt)
	rhs := Map(Map(p, g), f)(tt)
	if lhs.Successes()[0].Value != rhs.Successes()[0].Value {
		t.Errorf("functor composition law violated")
	}
}

func TestApplicativeIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.combinator")
	defer teardown()
	//
	tt := tailsFor("x")
	p := Char('x')
	idp := Ap(Pure[rune](func(r rune) rune { return r }), p)
	r1, r2 := p(tt), idp(tt)
	if len(r1.Successes()) != len(r2.Successes()) ||
		r1.Successes()[0].Value != r2.Successes()[0].Value ||
		r1.Successes()[0].Consumed != r2.Successes()[0].Consumed {
		t.Errorf("pure(id) <*> p differs from p")
	}
}

func TestBindSequencing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.combinator")
	defer teardown()
	//
	tt := tailsFor("ab")
	p := Bind(Char('a'), func(a rune) Parser[rune, string] {
		return Map(Char('b'), func(b rune) string {
			return string(a) + string(b)
		})
	})
	r := p(tt)
	s := r.Successes()
	if len(s) != 1 || s[0].Consumed != 2 || s[0].Value != "ab" {
		t.Errorf("Bind should consume 2 and yield \"ab\", got %v", s)
	}
	if s[0].Tail.Len() != 0 {
		t.Errorf("continuation tail should be at end of input")
	}
}

func TestChoiceKeepsAmbiguity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.combinator")
	defer teardown()
	//
	tt := tailsFor("aa")
	p := String("a").Or(String("aa"))
	r := p(tt)
	vs := values(r)
	if len(vs) != 2 || vs[0] != "a" || vs[1] != "aa" {
		t.Errorf("unbiased choice should keep both alternatives in order, got %v", vs)
	}
	// consumption lengths respect the tail-length invariant
	for _, s := range r.Successes() {
		if tt.Len()-s.Tail.Len() != s.Consumed {
			t.Errorf("tail-length invariant violated: consumed %d, tail %d of %d",
				s.Consumed, s.Tail.Len(), tt.Len())
		}
	}
}

func TestBiasedChoice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.combinator")
	defer teardown()
	//
	tt := tailsFor("aa")
	p := String("a").OrElse(String("aa"))
	if vs := values(p(tt)); len(vs) != 1 || vs[0] != "a" {
		t.Errorf("biased choice should absorb into the successful left operand, got %v", vs)
	}
	// right operand runs only when the left has no success
	q := String("b").OrElse(String("aa"))
	if vs := values(q(tt)); len(vs) != 1 || vs[0] != "aa" {
		t.Errorf("biased choice should fall through to the right operand, got %v", vs)
	}
	// a short-circuited right operand must not be evaluated
	ran := false
	spy := func(t *Tails[rune]) Results[rune, string] {
		ran = true
		return FailWith[rune, string](t.Len(), "spy")
	}
	String("a").OrElse(Parser[rune, string](spy))(tt)
	if ran {
		t.Errorf("right operand of biased choice was evaluated despite left success")
	}
}

func TestTryRewindsFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.combinator")
	defer teardown()
	//
	tt := tailsFor("ix")
	p := String("if") // fails after matching 'i'… at the full-input position
	fail := p(tt).Failure()
	if fail.Pos != 2 {
		t.Errorf("String should fail at the current position, got %d", fail.Pos)
	}
	q := Bind(Char('i'), func(rune) Parser[rune, rune] { return Char('f') })
	deep := q(tt).Failure()
	if deep.Pos != 1 {
		t.Errorf("sequence should fail one element in, got %d", deep.Pos)
	}
	rewound := Try(q)(tt).Failure()
	if rewound.Pos != 2 || len(rewound.Expected) != 0 {
		t.Errorf("Try should rewind to (2, []), got %v", rewound)
	}
}

func TestLabel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.combinator")
	defer teardown()
	//
	tt := tailsFor("bar")
	p := Label(String("foo"), "greeting")
	fail := p(tt).Failure()
	if fail.Pos != 3 || len(fail.Expected) != 1 || fail.Expected[0] != "greeting" {
		t.Errorf("Label should replace labels of an unconsumed failure, got %v", fail)
	}
	// a failure deeper in the input keeps its own labels
	q := Label(Bind(Char('b'), func(rune) Parser[rune, rune] { return Char('x') }), "greeting")
	fail = q(tt).Failure()
	if fail.Pos != 2 || fail.Expected[0] == "greeting" {
		t.Errorf("Label must not relabel a consuming failure, got %v", fail)
	}
}

func TestLookAhead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.combinator")
	defer teardown()
	//
	tt := tailsFor("abc")
	p := LookAhead(String("ab"))
	r := p(tt)
	s := r.Successes()
	if len(s) != 1 || s[0].Consumed != 0 || s[0].Value != "ab" {
		t.Errorf("LookAhead should succeed with zero consumption, got %v", s)
	}
	if s[0].Tail != tt {
		t.Errorf("LookAhead should anchor at the original position")
	}
}

func TestNotFollowedBy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.combinator")
	defer teardown()
	//
	tt := tailsFor("abc")
	if r := NotFollowedBy(String("x"))(tt); !r.HasSuccess() {
		t.Errorf("NotFollowedBy should succeed when the parser fails")
	}
	r := NotFollowedBy(String("ab"))(tt)
	if r.HasSuccess() {
		t.Errorf("NotFollowedBy should fail when the parser succeeds")
	}
	if fail := r.Failure(); fail.Pos != 3 || fail.Expected[0] != "notFollowedBy" {
		t.Errorf("NotFollowedBy failure should be (3, [notFollowedBy]), got %v", fail)
	}
}

func TestEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.combinator")
	defer teardown()
	//
	if r := EOF[rune]()(tailsFor("")); !r.HasSuccess() {
		t.Errorf("EOF should succeed on empty input")
	}
	r := EOF[rune]()(tailsFor("x"))
	if r.HasSuccess() {
		t.Errorf("EOF should fail on remaining input")
	}
	if fail := r.Failure(); fail.Expected[0] != "endOfInput" {
		t.Errorf("EOF failure should expect endOfInput, got %v", fail)
	}
}

func TestSkipManyStopsEverywhere(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.combinator")
	defer teardown()
	//
	tt := tailsFor("aaa")
	r := SkipMany(Char('a'))(tt)
	s := r.Successes()
	if len(s) != 4 {
		t.Fatalf("SkipMany over \"aaa\" should stop at 0..3 repetitions, got %d", len(s))
	}
	for i, info := range s {
		if info.Consumed != i {
			t.Errorf("stop #%d should have consumed %d, has %d", i, i, info.Consumed)
		}
	}
}

func TestManyCollects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.combinator")
	defer teardown()
	//
	tt := tailsFor("ab")
	r := Many1(Satisfy("letter", func(r rune) bool { return r >= 'a' && r <= 'z' }))(tt)
	s := r.Successes()
	if len(s) != 2 {
		t.Fatalf("Many1 over \"ab\" should have 2 stopping points, got %d", len(s))
	}
	if len(s[0].Value) != 1 || len(s[1].Value) != 2 {
		t.Errorf("Many1 should collect 1 and 2 letters, got %v and %v", s[0].Value, s[1].Value)
	}
	if r0 := Many0(Char('x'))(tt); len(r0.Successes()) != 1 || len(r0.Successes()[0].Value) != 0 {
		t.Errorf("Many0 with no match should still succeed empty")
	}
}

func TestAmbiguousGroups(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.combinator")
	defer teardown()
	//
	tt := tailsFor("ab")
	p := Map(Char('a'), func(rune) string { return "first" }).
		Or(Map(Char('a'), func(rune) string { return "second" })).
		Or(String("ab"))
	r := Ambiguous(p)(tt)
	s := r.Successes()
	if len(s) != 2 {
		t.Fatalf("Ambiguous should leave one outcome per length, got %d", len(s))
	}
	if len(s[0].Value) != 2 || s[0].Value[0] != "first" || s[0].Value[1] != "second" {
		t.Errorf("length-1 group should hold both interpretations in order, got %v", s[0].Value)
	}
	if len(s[1].Value) != 1 || s[1].Value[0] != "ab" {
		t.Errorf("length-2 group should hold the single long parse, got %v", s[1].Value)
	}
}
