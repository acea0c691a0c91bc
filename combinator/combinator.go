/*
Package combinator implements the parser value model of GramPa.

A parser is a pure function from a tail table to a result list. The tail
table (see Tails) pairs every suffix of the input with a bundle of memoized
non-terminal results, so that every non-terminal of a grammar is parsed at
most once per input position. The result list (see Results) carries every
successful parse alternative together with the record of the furthest
failure, which makes ambiguity and error reporting compositional: choice
merges result lists, sequencing runs the continuation once per success of
the first operand.

The algebra over parsers is the usual functor/applicative/alternative/monad
family: Map, Ap, Bind, Or, plus the left-biased OrElse, the backtracking
marker Try, label rewriting, lookahead, and repetition. Combinators never
raise; failures are values merged through the result-list monoid.

Combinators are generic in the prime-element type T of the input sequence.
For text, T is rune and the convenience primitives of this package apply;
for token streams, T is a token type produced by package scanner.

This engine does not support left recursion: a left-recursive reference
would demand a memo cell that is currently being evaluated, which is
detected and reported as a labeled failure.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package combinator

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grampa.combinator'.
func tracer() tracing.Trace {
	return tracing.Select("grampa.combinator")
}

// Parser is the common signature of a parser function: given the tail table
// at the current position, produce a result list. Parsers are referentially
// transparent and own no mutable state; all sharing lives in the tail table.
type Parser[T, R any] func(t *Tails[T]) Results[T, R]

// Unit is the result type of parsers that produce no interesting value.
type Unit struct{}

// --- Primitive result constructors ------------------------------------------

// Pure succeeds without consuming input, producing v. The explicit type
// parameter T selects the input alphabet, e.g. Pure[rune](7).
func Pure[T, R any](v R) Parser[T, R] {
	return func(t *Tails[T]) Results[T, R] {
		return Success(t, v)
	}
}

// Empty fails without an expected-label, at the current position.
func Empty[T, R any]() Parser[T, R] {
	return func(t *Tails[T]) Results[T, R] {
		return NoParse[T, R](t.Len())
	}
}

// Fail fails at the current position, expecting msg.
func Fail[T, R any](msg string) Parser[T, R] {
	return func(t *Tails[T]) Results[T, R] {
		return FailWith[T, R](t.Len(), msg)
	}
}

// Unexpected fails at the current position, expecting msg. It is Fail under
// the name the diagnostics vocabulary uses.
func Unexpected[T, R any](msg string) Parser[T, R] {
	return Fail[T, R](msg)
}

// --- Functor / applicative / monad ------------------------------------------

// Map applies f to the value of every successful outcome of p.
func Map[T, A, B any](p Parser[T, A], f func(A) B) Parser[T, B] {
	return func(t *Tails[T]) Results[T, B] {
		return MapResults(p(t), f)
	}
}

// Bind sequences p with a continuation: for every success of p, the
// continuation parser k(value) runs at the success's tail; consumption
// lengths add up. Failures of both operands are merged.
func Bind[T, A, B any](p Parser[T, A], k func(A) Parser[T, B]) Parser[T, B] {
	return func(t *Tails[T]) Results[T, B] {
		ra := p(t)
		out := Results[T, B]{fail: ra.Failure()}
		for _, a := range ra.Successes() {
			rb := k(a.Value)(a.Tail)
			out.fail = out.fail.Merge(rb.Failure())
			for _, b := range rb.Successes() {
				out.succ = cat(out.succ, leaf(Info[T, B]{
					Consumed: a.Consumed + b.Consumed,
					Tail:     b.Tail,
					Value:    b.Value,
				}))
			}
		}
		return out
	}
}

// Ap is applicative sequencing: pf produces functions, pa produces their
// arguments, the result applies each function to each argument reachable
// from it.
func Ap[T, A, B any](pf Parser[T, func(A) B], pa Parser[T, A]) Parser[T, B] {
	return Bind(pf, func(f func(A) B) Parser[T, B] {
		return Map(pa, f)
	})
}

// --- Choice -----------------------------------------------------------------

// Or is unbiased choice: both alternatives run, both result sets are
// retained (p's outcomes first), ambiguity is preserved. The failure record
// keeps whichever failure made deeper progress.
func (p Parser[T, R]) Or(q Parser[T, R]) Parser[T, R] {
	return func(t *Tails[T]) Results[T, R] {
		return p(t).Merge(q(t))
	}
}

// OrElse is left-biased choice: if p yields any success, its result list is
// returned unchanged and q is never evaluated. Only when p fails completely
// does q run, with p's failure record still contributing to diagnostics.
func (p Parser[T, R]) OrElse(q Parser[T, R]) Parser[T, R] {
	return func(t *Tails[T]) Results[T, R] {
		rp := p(t)
		if rp.HasSuccess() {
			return rp
		}
		return rp.Merge(q(t))
	}
}

// Alternative folds a list of parsers with unbiased choice.
func Alternative[T, R any](parsers ...Parser[T, R]) Parser[T, R] {
	if len(parsers) == 0 {
		return Empty[T, R]()
	}
	p := parsers[0]
	for _, q := range parsers[1:] {
		p = p.Or(q)
	}
	return p
}

// --- Failure shaping ---------------------------------------------------------

// Try rewinds the failure record of p to the current position and clears
// its labels, so that p's internal failure depth does not dominate an
// enclosing choice's diagnostics. Successes pass through unchanged; Try
// affects failure reporting only, never the success set.
func Try[T, R any](p Parser[T, R]) Parser[T, R] {
	return func(t *Tails[T]) Results[T, R] {
		return p(t).RewindFailure(t.Len())
	}
}

// Label replaces the expected-labels of p's failure with msg, provided p
// failed without consuming input. Deeper failures keep their own labels.
func Label[T, R any](p Parser[T, R], msg string) Parser[T, R] {
	return func(t *Tails[T]) Results[T, R] {
		return p(t).Relabel(t.Len(), msg)
	}
}

// --- Lookahead --------------------------------------------------------------

// NotFollowedBy succeeds, consuming nothing, iff p yields no success.
func NotFollowedBy[T, A any](p Parser[T, A]) Parser[T, Unit] {
	return func(t *Tails[T]) Results[T, Unit] {
		if r := p(t); r.HasSuccess() {
			return FailWith[T, Unit](t.Len(), "notFollowedBy")
		}
		return Success(t, Unit{})
	}
}

// LookAhead runs p without consuming input: every success of p is collapsed
// to zero consumption anchored at the current position. Ambiguous results
// are retained. Failures propagate unchanged.
func LookAhead[T, R any](p Parser[T, R]) Parser[T, R] {
	return func(t *Tails[T]) Results[T, R] {
		r := p(t)
		out := Results[T, R]{fail: r.Failure()}
		for _, s := range r.Successes() {
			out.succ = cat(out.succ, leaf(Info[T, R]{Consumed: 0, Tail: t, Value: s.Value}))
		}
		return out
	}
}

// --- End of input -----------------------------------------------------------

// EOF succeeds, consuming nothing, iff no input remains.
func EOF[T any]() Parser[T, Unit] {
	return func(t *Tails[T]) Results[T, Unit] {
		if t.AtEnd() {
			return Success(t, Unit{})
		}
		return FailWith[T, Unit](t.Len(), "endOfInput")
	}
}

// --- Non-terminal references --------------------------------------------------

// NonTerm resolves a reference to the non-terminal with the given field
// index: it reads the memoized result list of that non-terminal at the
// current position from the tail table. NonTerm never re-runs the
// non-terminal's body. Package grammar creates these when a non-terminal
// handle is used inside a definition.
func NonTerm[T, R any](index int, name string) Parser[T, R] {
	return func(t *Tails[T]) Results[T, R] {
		if t == nil {
			tracer().Debugf("non-terminal %s referenced past end of tail table", name)
			return FailWith[T, R](0, leftRecursionLabel)
		}
		return assertResults[T, R](t.Field(index))
	}
}

// --- Repetition ----------------------------------------------------------------

// SkipMany applies p any number of times, discarding its values. Every
// repetition count is a distinct success, so an enclosing sequence may
// continue after any number of matches. Zero-width matches of p are not
// followed further, as they would repeat forever.
func SkipMany[T, A any](p Parser[T, A]) Parser[T, Unit] {
	return func(t *Tails[T]) Results[T, Unit] {
		out := Results[T, Unit]{fail: NoFailure()}
		frontier := []Info[T, Unit]{{Consumed: 0, Tail: t, Value: Unit{}}}
		for len(frontier) > 0 {
			var next []Info[T, Unit]
			for _, stop := range frontier {
				out.succ = cat(out.succ, leaf(stop))
				r := p(stop.Tail)
				out.fail = out.fail.Merge(r.Failure())
				for _, s := range r.Successes() {
					if s.Consumed == 0 {
						continue
					}
					next = append(next, Info[T, Unit]{
						Consumed: stop.Consumed + s.Consumed,
						Tail:     s.Tail,
						Value:    Unit{},
					})
				}
			}
			frontier = next
		}
		return out
	}
}

// Many0 applies p any number of times and collects the values. Like
// SkipMany, every repetition count is a distinct success; a grammar wanting
// only the longest run should route the parser through peg.Longest.
func Many0[T, R any](p Parser[T, R]) Parser[T, []R] {
	return manyFrom(p, 0)
}

// Many1 is Many0 requiring at least one match.
func Many1[T, R any](p Parser[T, R]) Parser[T, []R] {
	return manyFrom(p, 1)
}

func manyFrom[T, R any](p Parser[T, R], atLeast int) Parser[T, []R] {
	return func(t *Tails[T]) Results[T, []R] {
		out := Results[T, []R]{fail: NoFailure()}
		type path struct {
			info Info[T, []R]
			reps int
		}
		frontier := []path{{info: Info[T, []R]{Consumed: 0, Tail: t}}}
		for len(frontier) > 0 {
			var next []path
			for _, stop := range frontier {
				if stop.reps >= atLeast {
					out.succ = cat(out.succ, leaf(stop.info))
				}
				r := p(stop.info.Tail)
				out.fail = out.fail.Merge(r.Failure())
				for _, s := range r.Successes() {
					if s.Consumed == 0 {
						continue
					}
					vals := make([]R, len(stop.info.Value), len(stop.info.Value)+1)
					copy(vals, stop.info.Value)
					next = append(next, path{
						info: Info[T, []R]{
							Consumed: stop.info.Consumed + s.Consumed,
							Tail:     s.Tail,
							Value:    append(vals, s.Value),
						},
						reps: stop.reps + 1,
					})
				}
			}
			frontier = next
		}
		return out
	}
}

// --- Ambiguity as data --------------------------------------------------------

// Ambiguous surfaces ambiguity explicitly: all values p produced at the
// same consumption length are wrapped into a single slice, so the result
// list contains at most one outcome per length.
func Ambiguous[T, R any](p Parser[T, R]) Parser[T, []R] {
	return func(t *Tails[T]) Results[T, []R] {
		r := p(t)
		out := Results[T, []R]{fail: r.Failure()}
		for _, g := range GroupByLength(r) {
			out.succ = cat(out.succ, leaf(Info[T, []R]{
				Consumed: g.Consumed,
				Tail:     g.Tail,
				Value:    g.Values,
			}))
		}
		return out
	}
}
