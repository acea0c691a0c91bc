/*
Package grammar ties mutually recursive non-terminals into a single,
lazily evaluated parsing structure.

Clients declare a grammar as a bundle of named non-terminals, then define
each one as a combinator expression which may reference any non-terminal
of the bundle, including itself. Parsing an input materializes the tail
table: one entry per input position, built right to left, where each entry
holds the memoized result list of every non-terminal starting at that
position. Within an entry the bundle is evaluated lazily, field by field,
so that non-terminals may cross-reference each other at the same position.
Each non-terminal is therefore parsed at most once per position.

Two entry points are provided. ParsePrefix reports, for every
non-terminal, all parses of input prefixes. ParseComplete re-parses only
the leading table entry with every non-terminal required to reach the end
of input, reusing all other positions unchanged, and reports only the
parses that consumed the entire input.

Left-recursive grammars are out of scope for this engine: a left-recursive
reference is detected during evaluation and reported as a parse failure
instead of looping. Use a seeding fixed-point engine for such grammars.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/grampa/combinator"
)

// tracer traces with key 'grampa.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("grampa.grammar")
}

// Grammar is a bundle of named non-terminals over prime-element type T,
// assembled with Declare and Define and frozen with Seal. A sealed grammar
// is immutable and may be shared freely; every parse run builds its own
// tail table.
type Grammar[T any] struct {
	name   string
	bundle *Record // fields are combinator.Parser[T, any]
	sealed bool
}

// New creates an empty grammar. The name appears in trace output only.
func New[T any](name string) *Grammar[T] {
	return &Grammar[T]{
		name:   name,
		bundle: NewRecord(),
	}
}

// Name returns the grammar's name.
func (g *Grammar[T]) Name() string {
	return g.name
}

// NonTerminals returns the names of all declared non-terminals, in
// declaration order.
func (g *Grammar[T]) NonTerminals() []string {
	return g.bundle.Names()
}

// NT is a typed handle for one non-terminal of a grammar: field selector,
// definition site and reference, all in one.
type NT[T, R any] struct {
	g     *Grammar[T]
	index int
	name  string
}

// Declare adds a non-terminal with the given result type to the grammar
// and returns its handle. The handle may be referenced (NT.P) before it is
// defined, which is what makes mutual recursion expressible:
//
//	g := grammar.New[rune]("pairs")
//	a := grammar.Declare[combinator.Unit](g, "a")
//	b := grammar.Declare[combinator.Unit](g, "b")
//	a.Define(...b.P()...)
//	b.Define(...a.P()...)
//
// Declaring on a sealed grammar panics.
func Declare[R any, T any](g *Grammar[T], name string) *NT[T, R] {
	if g.sealed {
		panic(fmt.Sprintf("grammar %q is sealed, cannot declare %q", g.name, name))
	}
	index := g.bundle.Append(name, nil)
	return &NT[T, R]{g: g, index: index, name: name}
}

// Name returns the non-terminal's name.
func (nt *NT[T, R]) Name() string {
	return nt.name
}

// Define installs the non-terminal's body. Every non-terminal must be
// defined exactly once before the grammar is sealed.
func (nt *NT[T, R]) Define(p combinator.Parser[T, R]) {
	if nt.g.sealed {
		panic(fmt.Sprintf("grammar %q is sealed, cannot define %q", nt.g.name, nt.name))
	}
	if nt.g.bundle.At(nt.index) != nil {
		panic(fmt.Sprintf("non-terminal %q defined twice", nt.name))
	}
	nt.g.bundle.fields[nt.index] = combinator.Erase(p)
}

// P returns the parser referencing this non-terminal. Evaluating it reads
// the memoized result list of the non-terminal at the current position; it
// never re-runs the non-terminal's body.
func (nt *NT[T, R]) P() combinator.Parser[T, R] {
	return combinator.NonTerm[T, R](nt.index, nt.name)
}

// Seal validates the grammar and freezes it. Every declared non-terminal
// must have been defined. Seal is idempotent; the parse entry points call
// it implicitly.
func (g *Grammar[T]) Seal() error {
	if g.sealed {
		return nil
	}
	// collect all undefined non-terminals for the diagnostic
	undefined := g.bundle.FoldFields(nil, func(acc any, name string, field any) any {
		if field == nil {
			names, _ := acc.([]string)
			return append(names, name)
		}
		return acc
	})
	if names, _ := undefined.([]string); len(names) > 0 {
		return fmt.Errorf("grammar %q has undefined non-terminals: %s",
			g.name, strings.Join(names, ", "))
	}
	// traversal re-checks each field, short-circuiting on the first problem
	if _, err := g.bundle.TraverseFields(func(name string, field any) (any, error) {
		if _, ok := field.(combinator.Parser[T, any]); !ok {
			return nil, fmt.Errorf("non-terminal %q is not a parser", name)
		}
		return field, nil
	}); err != nil {
		return err
	}
	g.sealed = true
	tracer().Debugf("grammar %q sealed with %d non-terminals", g.name, g.bundle.Size())
	return nil
}

// --- Tail table construction ------------------------------------------------

// tails materializes the tail table for the given input: one entry per
// position, built right to left so that every entry can reach all later
// ones. The memo cells of an entry are installed by mapping over the
// grammar bundle; each cell's closure holds only the entry itself, so a
// field is not evaluated unless some parser actually consults it.
func (g *Grammar[T]) tails(input []T) *combinator.Tails[T] {
	var next *combinator.Tails[T]
	for i := len(input); i >= 0; i-- {
		next = g.memoEntry(input[i:], g.bundle, next)
	}
	return next
}

// memoEntry builds one tail-table node whose cells evaluate the fields of
// defs against the node itself.
func (g *Grammar[T]) memoEntry(suffix []T, defs *Record, next *combinator.Tails[T]) *combinator.Tails[T] {
	node := combinator.NewTails(suffix, defs.Size(), next)
	k := 0
	defs.MapFields(func(name string, field any) any {
		p := field.(combinator.Parser[T, any])
		index := k
		k++
		node.DefineField(index, func() combinator.Results[T, any] {
			return p(node)
		})
		return field
	})
	return node
}

// --- Entry points -----------------------------------------------------------

// Run is the outcome of parsing one input against a grammar: the head of
// the materialized tail table, from which per-non-terminal results are
// extracted. The table, and with it every parse result referencing it,
// stays alive exactly as long as the Run.
type Run[T any] struct {
	g     *Grammar[T]
	input []T
	head  *combinator.Tails[T]
}

// Input returns the input sequence of this run.
func (r *Run[T]) Input() []T {
	return r.input
}

// ParsePrefix parses the input and reports, per non-terminal, every parse
// of an input prefix, paired with the unconsumed rest.
func (g *Grammar[T]) ParsePrefix(input []T) (*Run[T], error) {
	if err := g.Seal(); err != nil {
		return nil, err
	}
	tracer().Debugf("parse prefix of %d elements against %q", len(input), g.name)
	return &Run[T]{g: g, input: input, head: g.tails(input)}, nil
}

// ParseComplete parses the input and reports, per non-terminal, only the
// parses that consumed the entire input. Only the leading table entry is
// computed against the end-of-input requirement; all other positions are
// shared with an ordinary prefix parse.
func (g *Grammar[T]) ParseComplete(input []T) (*Run[T], error) {
	run, err := g.ParsePrefix(input)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("re-parse head entry of %q against end of input", g.name)
	closed := g.bundle.MapFields(func(name string, field any) any {
		p := field.(combinator.Parser[T, any])
		return combinator.Terminated(p, combinator.EOF[T]())
	}).(*Record)
	run.head = reparseTails[T](closed, run.head)
	return run, nil
}

// reparseTails prepends a fresh memo entry for the closed grammar to the
// table. The closed parsers evaluate against the previous head, so
// non-terminal references inside their bodies still resolve to the
// original memos at every position.
func reparseTails[T any](closed *Record, head *combinator.Tails[T]) *combinator.Tails[T] {
	node := combinator.NewTails(head.Suffix(), closed.Size(), head)
	k := 0
	closed.MapFields(func(name string, field any) any {
		p := field.(combinator.Parser[T, any])
		index := k
		k++
		node.DefineField(index, func() combinator.Results[T, any] {
			return p(head)
		})
		return field
	})
	return node
}

// --- Result extraction ------------------------------------------------------

// Parse is one successful parse alternative: the produced value and the
// unconsumed input suffix.
type Parse[T, R any] struct {
	Remaining []T
	Value     R
}

// ParseError reports that a non-terminal has no parse. Position is the
// 1-based distance from the start of the input of the deepest failure
// (position 1 is just before the first element); Expected lists the
// deduplicated labels collected there.
type ParseError struct {
	NonTerminal string
	Position    int
	Expected    []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: at position %d expected %s",
		e.NonTerminal, e.Position, strings.Join(e.Expected, ", "))
}

// Results extracts this non-terminal's alternatives from a parse run, in
// engine order, or a *ParseError if there are none.
func (nt *NT[T, R]) Results(run *Run[T]) ([]Parse[T, R], error) {
	if run.g != nt.g {
		panic(fmt.Sprintf("non-terminal %q used against a foreign grammar run", nt.name))
	}
	rl := run.head.Field(nt.index)
	if !rl.HasSuccess() {
		fail := rl.Failure()
		position := 1
		if !fail.IsNone() {
			position = len(run.input) - fail.Pos + 1
		}
		return nil, &ParseError{
			NonTerminal: nt.name,
			Position:    position,
			Expected:    dedupLabels(fail.Expected),
		}
	}
	var parses []Parse[T, R]
	for _, info := range rl.Successes() {
		parses = append(parses, Parse[T, R]{
			Remaining: info.Tail.Suffix(),
			Value:     info.Value.(R),
		})
	}
	return parses, nil
}

// dedupLabels sorts and deduplicates expected-labels for reporting.
func dedupLabels(labels []string) []string {
	set := treeset.NewWithStringComparator()
	for _, l := range labels {
		set.Add(l)
	}
	out := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		out = append(out, v.(string))
	}
	return out
}
