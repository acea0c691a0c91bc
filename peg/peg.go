/*
Package peg provides a measured backtracking PEG parser and adapters
between PEG parsers and the context-free combinator parsers of package
combinator.

PEG matching is prioritized and greedy: ordered choice commits to the
first matching alternative, repetition consumes as much input as it can.
That makes PEG sub-grammars deterministic and fast, at the price of
giving up ambiguity. Parsers of this package are "measured": a match
reports the exact number of prime elements consumed, which is what allows
them to be spliced into the tail-table world of the combinator engine.
The pattern vocabulary (Text, Dot, Seq, Alt, Q0, Q01, Not, Test) follows
the usual PEG repertoire.

Mixing the two worlds goes through three adapters. Longest collapses a
context-free parser into a PEG parser by keeping only its longest parse.
Lift embeds a PEG parser operating on tail tables into the combinator
world. Terminal does the same for PEG parsers operating on raw input
sequences, which is the common case for lexical sub-grammars.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package peg

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/grampa/combinator"
)

// tracer traces with key 'grampa.peg'.
func tracer() tracing.Trace {
	return tracing.Select("grampa.peg")
}

// Parser is a measured backtracking PEG parser: it either matches a
// measured prefix of its input or reports a failure. The input type S is
// a raw sequence []T for terminal-level parsers, or a tail table
// *combinator.Tails[T] for parsers bridged from the combinator world.
type Parser[S, R any] func(input S) Result[S, R]

// Result of a PEG parser: either a match of Consumed prime elements
// producing Value and continuing at Rest, or no match with a failure
// record.
type Result[S, R any] struct {
	Matched  bool
	Consumed int
	Value    R
	Rest     S
	Err      combinator.Failure
}

// Match creates a successful PEG result. Its failure record is the neutral
// one, so merging it into a sequence's diagnostics changes nothing.
func Match[S, R any](consumed int, v R, rest S) Result[S, R] {
	return Result[S, R]{Matched: true, Consumed: consumed, Value: v, Rest: rest,
		Err: combinator.NoFailure()}
}

// NoMatch creates a failed PEG result.
func NoMatch[S, R any](f combinator.Failure) Result[S, R] {
	return Result[S, R]{Err: f}
}

// --- Terminal patterns ------------------------------------------------------

// Lit matches the given literal sequence exactly.
func Lit[T comparable](label string, lit []T) Parser[[]T, []T] {
	return func(input []T) Result[[]T, []T] {
		if len(input) < len(lit) {
			return NoMatch[[]T, []T](combinator.FailureAt(len(input), label))
		}
		for i, e := range lit {
			if input[i] != e {
				return NoMatch[[]T, []T](combinator.FailureAt(len(input), label))
			}
		}
		return Match(len(lit), input[:len(lit)], input[len(lit):])
	}
}

// Text matches the given string exactly.
func Text(s string) Parser[[]rune, string] {
	lit := Lit(fmt.Sprintf("%q", s), []rune(s))
	return func(input []rune) Result[[]rune, string] {
		r := lit(input)
		if !r.Matched {
			return NoMatch[[]rune, string](r.Err)
		}
		return Match(r.Consumed, s, r.Rest)
	}
}

// Dot matches any single element.
func Dot[T any]() Parser[[]T, T] {
	return func(input []T) Result[[]T, T] {
		if len(input) == 0 {
			return NoMatch[[]T, T](combinator.FailureAt(0, "anyToken"))
		}
		return Match(1, input[0], input[1:])
	}
}

// Satisfy matches one element satisfying pred.
func Satisfy[T any](label string, pred func(T) bool) Parser[[]T, T] {
	return func(input []T) Result[[]T, T] {
		if len(input) == 0 || !pred(input[0]) {
			return NoMatch[[]T, T](combinator.FailureAt(len(input), label))
		}
		return Match(1, input[0], input[1:])
	}
}

// --- Combining patterns -----------------------------------------------------

// Map applies f to the value of a match.
func Map[S, A, B any](p Parser[S, A], f func(A) B) Parser[S, B] {
	return func(input S) Result[S, B] {
		r := p(input)
		if !r.Matched {
			return NoMatch[S, B](r.Err)
		}
		return Match(r.Consumed, f(r.Value), r.Rest)
	}
}

// Seq2 matches p followed by q, pairing their values.
func Seq2[T, A, B any](p Parser[[]T, A], q Parser[[]T, B]) Parser[[]T, combinator.PairContainer[A, B]] {
	return func(input []T) Result[[]T, combinator.PairContainer[A, B]] {
		ra := p(input)
		if !ra.Matched {
			return NoMatch[[]T, combinator.PairContainer[A, B]](ra.Err)
		}
		rb := q(ra.Rest)
		if !rb.Matched {
			return NoMatch[[]T, combinator.PairContainer[A, B]](ra.Err.Merge(rb.Err))
		}
		return Match(ra.Consumed+rb.Consumed,
			combinator.PairContainer[A, B]{Left: ra.Value, Right: rb.Value}, rb.Rest)
	}
}

// Seq matches every parser in order, collecting the values.
func Seq[T, R any](parsers ...Parser[[]T, R]) Parser[[]T, []R] {
	return func(input []T) Result[[]T, []R] {
		rest := input
		consumed := 0
		fail := combinator.NoFailure()
		values := make([]R, 0, len(parsers))
		for _, p := range parsers {
			r := p(rest)
			fail = fail.Merge(r.Err)
			if !r.Matched {
				return NoMatch[[]T, []R](fail)
			}
			consumed += r.Consumed
			values = append(values, r.Value)
			rest = r.Rest
		}
		return Match(consumed, values, rest)
	}
}

// Alt is ordered choice: the first matching alternative wins and later
// ones are never tried. Failure records of failing alternatives are
// merged for diagnostics.
func Alt[S, R any](parsers ...Parser[S, R]) Parser[S, R] {
	return func(input S) Result[S, R] {
		fail := combinator.NoFailure()
		for _, p := range parsers {
			r := p(input)
			if r.Matched {
				return r
			}
			fail = fail.Merge(r.Err)
		}
		return NoMatch[S, R](fail)
	}
}

// Q0 greedily matches p as often as possible, possibly not at all.
func Q0[T, R any](p Parser[[]T, R]) Parser[[]T, []R] {
	return func(input []T) Result[[]T, []R] {
		rest := input
		consumed := 0
		var values []R
		for {
			r := p(rest)
			if !r.Matched || r.Consumed == 0 {
				return Match(consumed, values, rest)
			}
			consumed += r.Consumed
			values = append(values, r.Value)
			rest = r.Rest
		}
	}
}

// Q1 greedily matches p as often as possible, at least once.
func Q1[T, R any](p Parser[[]T, R]) Parser[[]T, []R] {
	star := Q0(p)
	return func(input []T) Result[[]T, []R] {
		first := p(input)
		if !first.Matched {
			return NoMatch[[]T, []R](first.Err)
		}
		more := star(first.Rest)
		return Match(first.Consumed+more.Consumed,
			append([]R{first.Value}, more.Value...), more.Rest)
	}
}

// Q01 optionally matches p: zero or one value.
func Q01[T, R any](p Parser[[]T, R]) Parser[[]T, []R] {
	return func(input []T) Result[[]T, []R] {
		r := p(input)
		if !r.Matched {
			return Match[[]T, []R](0, nil, input)
		}
		return Match(r.Consumed, []R{r.Value}, r.Rest)
	}
}

// Not is the negative lookahead predicate: it matches, consuming nothing,
// iff p does not match.
func Not[T, A any](p Parser[[]T, A]) Parser[[]T, combinator.Unit] {
	return func(input []T) Result[[]T, combinator.Unit] {
		if r := p(input); r.Matched {
			return NoMatch[[]T, combinator.Unit](combinator.FailureAt(len(input), "notFollowedBy"))
		}
		return Match(0, combinator.Unit{}, input)
	}
}

// Test is the positive lookahead predicate: it matches, consuming
// nothing, iff p matches.
func Test[T, A any](p Parser[[]T, A]) Parser[[]T, combinator.Unit] {
	return func(input []T) Result[[]T, combinator.Unit] {
		if r := p(input); !r.Matched {
			return NoMatch[[]T, combinator.Unit](r.Err)
		}
		return Match(0, combinator.Unit{}, input)
	}
}
