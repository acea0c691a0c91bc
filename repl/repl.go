package main

import (
	"flag"
	"strconv"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/cnf/structhash"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/grampa/combinator"
	"github.com/npillmayer/grampa/grammar"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// tracer traces with key 'grampa.repl'.
func tracer() tracing.Trace {
	return tracing.Select("grampa.repl")
}

// We provide a simple expression grammar as a default for parsing
// experiments:
//
//	expr ➞ term ( '+' term )*
//	term ➞ digit+
//
// and an ambiguous palindrome grammar to play with multiple parses:
//
//	s ➞ 'a' s 'a'  |  'a'
func makeArithGrammar() (*grammar.Grammar[rune], *grammar.NT[rune, int]) {
	g := grammar.New[rune]("arith")
	expr := grammar.Declare[int](g, "expr")
	term := grammar.Declare[int](g, "term")
	term.Define(combinator.Map(
		combinator.TakeWhile1Char("digit", unicode.IsDigit),
		func(digits string) int {
			n, _ := strconv.Atoi(digits)
			return n
		}))
	expr.Define(combinator.Map(
		combinator.SeparatedList1(term.P(), combinator.Char('+')),
		func(terms []int) int {
			sum := 0
			for _, t := range terms {
				sum += t
			}
			return sum
		}))
	return g, expr
}

func makeAmbGrammar() (*grammar.Grammar[rune], *grammar.NT[rune, string]) {
	g := grammar.New[rune]("palindrome")
	s := grammar.Declare[string](g, "s")
	s.Define(combinator.Map(
		combinator.Delimited(combinator.Char('a'), s.P(), combinator.Char('a')),
		func(inner string) string {
			return "a" + inner + "a"
		}).Or(combinator.Map(combinator.Char('a'), func(rune) string {
		return "a"
	})))
	return g, s
}

// main() starts an interactive CLI, where users may enter arithmetic
// expressions to be parsed with the combinator engine. Lines prefixed
// with ":amb" are parsed against the ambiguous palindrome grammar
// instead, showing how prefix parses and ambiguity surface in results.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to GramPa") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	arith, expr := makeArithGrammar()
	amb, s := makeAmbGrammar()
	//
	// set up REPL
	repl, err := readline.New("grampa> ")
	if err != nil {
		tracer().Errorf(err.Error())
		return
	}
	defer repl.Close()
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF on ctrl-D
			break
		}
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, ":amb "):
			showParses(amb, s, strings.TrimSpace(line[5:]))
		default:
			showParses(arith, expr, line)
		}
	}
}

// showParses runs both entry points and prints the outcomes.
func showParses[R any](g *grammar.Grammar[rune], start *grammar.NT[rune, R], input string) {
	run, err := g.ParsePrefix([]rune(input))
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	if parses, err := start.Results(run); err != nil {
		pterm.Error.Println(err.Error())
	} else {
		for _, p := range distinct(parses) {
			pterm.Info.Printf("prefix parse: %v (rest %q)\n", p.Value, string(p.Remaining))
		}
	}
	run, err = g.ParseComplete([]rune(input))
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	if parses, err := start.Results(run); err != nil {
		pterm.Error.Println(err.Error())
	} else {
		for _, p := range distinct(parses) {
			pterm.Info.Printf("complete parse: %v\n", p.Value)
		}
	}
}

// distinct collapses structurally equal values among ambiguous parses, so
// that the display stays readable for highly ambiguous grammars.
func distinct[R any](parses []grammar.Parse[rune, R]) []grammar.Parse[rune, R] {
	seen := make(map[string]bool)
	out := parses[:0]
	for _, p := range parses {
		h, err := structhash.Hash(struct {
			Value any
			Rest  string
		}{Value: p.Value, Rest: string(p.Remaining)}, 1)
		if err != nil {
			out = append(out, p) // cannot hash, keep it
			continue
		}
		if !seen[h] {
			seen[h] = true
			out = append(out, p)
		}
	}
	return out
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(l string) tracing.TraceLevel {
	switch strings.ToLower(l) {
	case "debug":
		return tracing.LevelDebug
	case "error":
		return tracing.LevelError
	default:
		return tracing.LevelInfo
	}
}
