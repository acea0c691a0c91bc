package peg

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"

	"github.com/npillmayer/grampa/combinator"
)

func tailsFor(input string) *combinator.Tails[rune] {
	runes := []rune(input)
	var next *combinator.Tails[rune]
	for i := len(runes); i >= 0; i-- {
		next = combinator.NewTails(runes[i:], 0, next)
	}
	return next
}

func TestText(t *testing.T) {
	testCases := []struct {
		input    string
		pattern  string
		matched  bool
		consumed int
	}{
		{"hello world", "hello", true, 5},
		{"hello", "hello", true, 5},
		{"help", "hello", false, 0},
		{"", "hello", false, 0},
		{"anything", "", true, 0},
	}
	for _, tc := range testCases {
		r := Text(tc.pattern)([]rune(tc.input))
		assert.Equal(t, tc.matched, r.Matched, "Text(%q) on %q", tc.pattern, tc.input)
		if tc.matched {
			assert.Equal(t, tc.consumed, r.Consumed, "consumed by Text(%q) on %q", tc.pattern, tc.input)
			assert.Equal(t, tc.pattern, r.Value)
		}
	}
}

func TestOrderedChoice(t *testing.T) {
	// the first matching alternative wins, even if a later one is longer
	p := Alt(Text("a"), Text("ab"))
	r := p([]rune("ab"))
	assert.True(t, r.Matched)
	assert.Equal(t, 1, r.Consumed, "ordered choice must commit to the first match")
	// failing alternatives contribute their labels
	q := Alt(Text("x"), Text("y"))
	r = q([]rune("ab"))
	assert.False(t, r.Matched)
	assert.Len(t, r.Err.Expected, 2)
}

func TestGreedyRepetition(t *testing.T) {
	digits := Q1(Satisfy("digit", unicode.IsDigit))
	r := digits([]rune("123abc"))
	assert.True(t, r.Matched)
	assert.Equal(t, 3, r.Consumed, "Q1 must consume the whole run")
	assert.Len(t, r.Value, 3)
	//
	r = digits([]rune("abc"))
	assert.False(t, r.Matched)
	//
	star := Q0(Satisfy("digit", unicode.IsDigit))
	r = star([]rune("abc"))
	assert.True(t, r.Matched, "Q0 matches the empty run")
	assert.Equal(t, 0, r.Consumed)
}

func TestPredicates(t *testing.T) {
	notDigit := Not(Satisfy("digit", unicode.IsDigit))
	assert.True(t, notDigit([]rune("abc")).Matched)
	assert.False(t, notDigit([]rune("1bc")).Matched)
	//
	testDigit := Test(Satisfy("digit", unicode.IsDigit))
	r := testDigit([]rune("1bc"))
	assert.True(t, r.Matched)
	assert.Equal(t, 0, r.Consumed, "lookahead must not consume")
}

func TestSeqCollects(t *testing.T) {
	p := Seq(Text("a"), Text("b"), Text("c"))
	r := p([]rune("abcd"))
	assert.True(t, r.Matched)
	assert.Equal(t, 3, r.Consumed)
	assert.Equal(t, []string{"a", "b", "c"}, r.Value)
	//
	r = p([]rune("abx"))
	assert.False(t, r.Matched)
}

func TestLongestPicksMaximum(t *testing.T) {
	// an ambiguous combinator parser: matches "a" and "aa"
	amb := combinator.String("a").Or(combinator.String("aa"))
	longest := Longest(amb)
	r := longest(tailsFor("aaa"))
	assert.True(t, r.Matched)
	assert.Equal(t, 2, r.Consumed, "Longest must pick the longest alternative")
	assert.Equal(t, "aa", r.Value)
}

func TestLongestTieBreak(t *testing.T) {
	// equally long results: engine order decides
	first := combinator.Map(combinator.String("a"), func(string) string { return "first" })
	second := combinator.Map(combinator.String("a"), func(string) string { return "second" })
	r := Longest(first.Or(second))(tailsFor("a"))
	assert.True(t, r.Matched)
	assert.Equal(t, "first", r.Value)
}

func TestLiftRoundTrip(t *testing.T) {
	// peg(longest(p)) keeps the single longest success of p and drops
	// shorter ones
	amb := combinator.String("a").Or(combinator.String("aa"))
	round := Lift(Longest(amb))
	rl := round(tailsFor("aaa"))
	successes := rl.Successes()
	assert.Len(t, successes, 1)
	assert.Equal(t, 2, successes[0].Consumed)
	assert.Equal(t, "aa", successes[0].Value)
	// failures survive the round trip
	failing := Lift(Longest(combinator.String("x")))
	rl = failing(tailsFor("aaa"))
	assert.False(t, rl.HasSuccess())
	assert.Equal(t, 3, rl.Failure().Pos)
}

func TestTerminalBridge(t *testing.T) {
	// a lexical PEG sub-grammar spliced into the combinator world
	number := Terminal(Q1(Satisfy("digit", unicode.IsDigit)))
	tt := tailsFor("42+x")
	rl := number(tt)
	successes := rl.Successes()
	assert.Len(t, successes, 1)
	assert.Equal(t, 2, successes[0].Consumed)
	assert.Equal(t, "+x", string(successes[0].Tail.Suffix()),
		"Terminal must continue the tail table past the match")
	//
	rl = number(tt.Drop(2))
	assert.False(t, rl.HasSuccess())
}
