package peg

import (
	"github.com/npillmayer/grampa/combinator"
)

// The bridge between the context-free combinator world and the PEG world.
// Context-free parsers operate on tail tables and may return many
// results; PEG parsers commit to a single measured match. Longest crosses
// in one direction by collapsing ambiguity, Lift and Terminal cross back.

// Longest wraps a context-free parser as a PEG parser over tail tables.
// If the parser has any success, the one with maximum consumption wins;
// ties are broken by engine order. Failures pass through.
func Longest[T, R any](p combinator.Parser[T, R]) Parser[*combinator.Tails[T], R] {
	return func(t *combinator.Tails[T]) Result[*combinator.Tails[T], R] {
		rl := p(t)
		if !rl.HasSuccess() {
			return NoMatch[*combinator.Tails[T], R](rl.Failure())
		}
		successes := rl.Successes()
		best := successes[0]
		for _, s := range successes[1:] {
			if s.Consumed > best.Consumed {
				best = s
			}
		}
		tracer().Debugf("longest of %d results consumed %d", len(successes), best.Consumed)
		return Match(best.Consumed, best.Value, best.Tail)
	}
}

// Lift embeds a PEG parser over tail tables into the combinator world: a
// match becomes a single-outcome result list, a non-match becomes its
// failure record.
func Lift[T, R any](q Parser[*combinator.Tails[T], R]) combinator.Parser[T, R] {
	return func(t *combinator.Tails[T]) combinator.Results[T, R] {
		r := q(t)
		if !r.Matched {
			return combinator.FromFailure[T, R](r.Err)
		}
		return combinator.Outcome(r.Consumed, r.Rest, r.Value)
	}
}

// Terminal embeds a PEG parser over raw input sequences into the
// combinator world. The parser is fed the input suffix at the current
// position; a match of l elements continues l entries down the tail
// table.
func Terminal[T, R any](q Parser[[]T, R]) combinator.Parser[T, R] {
	return func(t *combinator.Tails[T]) combinator.Results[T, R] {
		r := q(t.Suffix())
		if !r.Matched {
			return combinator.FromFailure[T, R](r.Err)
		}
		return combinator.Outcome(r.Consumed, t.Drop(r.Consumed), r.Value)
	}
}
