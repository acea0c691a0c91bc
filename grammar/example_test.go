package grammar_test

import (
	"fmt"
	"unicode"

	"github.com/npillmayer/grampa/combinator"
	"github.com/npillmayer/grampa/grammar"
)

// Parentheses counting: depth = '(' depth ')' | letter+.
func ExampleDeclare() {
	g := grammar.New[rune]("nesting")
	depth := grammar.Declare[int](g, "depth")
	depth.Define(combinator.Map(
		combinator.Delimited(combinator.Char('('), depth.P(), combinator.Char(')')),
		func(inner int) int {
			return inner + 1
		}).Or(combinator.Map(
		combinator.TakeWhile1Char("letter", unicode.IsLetter),
		func(string) int {
			return 0
		})))
	run, err := g.ParseComplete([]rune("((x))"))
	if err != nil {
		fmt.Println(err)
		return
	}
	parses, err := depth.Results(run)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(parses[0].Value)
	// Output: 2
}
