package combinator

import (
	"math"
)

// --- Failure records --------------------------------------------------------

// Failure is the furthest-failure record every parse result carries. Pos
// counts the prime elements remaining in the input at the point of failure,
// i.e. smaller positions are closer to the end of the input and therefore
// denote deeper progress. Expected collects human-readable tokens describing
// what was expected at that point.
type Failure struct {
	Pos      int
	Expected []string
}

// Sentinel position for "no failure recorded". It never wins a merge.
const noFailurePos = math.MaxInt

// NoFailure returns the neutral failure record.
func NoFailure() Failure {
	return Failure{Pos: noFailurePos}
}

// FailureAt returns a failure record at the given position, expecting the
// given labels.
func FailureAt(pos int, expected ...string) Failure {
	return Failure{Pos: pos, Expected: expected}
}

// IsNone is true for the neutral failure record.
func (f Failure) IsNone() bool {
	return f.Pos == noFailurePos
}

// Merge combines two failure records, keeping the one with deeper progress.
// If both failed at the same position, the expected-label collections are
// concatenated (deduplication happens at reporting time).
func (f Failure) Merge(other Failure) Failure {
	switch {
	case other.Pos < f.Pos:
		return other
	case f.Pos < other.Pos:
		return f
	case f.Pos == noFailurePos:
		return f
	}
	labels := make([]string, 0, len(f.Expected)+len(other.Expected))
	labels = append(labels, f.Expected...)
	labels = append(labels, other.Expected...)
	return Failure{Pos: f.Pos, Expected: labels}
}

// --- Successful parse outcomes ----------------------------------------------

// Info describes one successful parse outcome: the number of prime elements
// consumed, the tail table at which parsing may continue, and the produced
// value.
type Info[T, R any] struct {
	Consumed int
	Tail     *Tails[T]
	Value    R
}

// Successes are kept in a binary concatenation tree. Merging two result
// lists is then O(1), which matters because merge is the hottest operation
// of the engine (every choice point performs one). Iteration flattens the
// tree in-order, so the relative order of alternatives is preserved.
type tree[T, R any] struct {
	leaf        *Info[T, R]
	left, right *tree[T, R]
}

func leaf[T, R any](info Info[T, R]) *tree[T, R] {
	return &tree[T, R]{leaf: &info}
}

func cat[T, R any](a, b *tree[T, R]) *tree[T, R] {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return &tree[T, R]{left: a, right: b}
}

func (t *tree[T, R]) flatten(out []Info[T, R]) []Info[T, R] {
	if t == nil {
		return out
	}
	if t.leaf != nil {
		return append(out, *t.leaf)
	}
	return t.right.flatten(t.left.flatten(out))
}

// --- Result lists -----------------------------------------------------------

// Results is what every parser invocation returns: an ordered collection of
// successful outcomes plus a furthest-failure record. Both components are
// always present; the success collection may be empty while a failure is
// recorded, and vice versa.
type Results[T, R any] struct {
	succ *tree[T, R]
	fail Failure
}

// Success creates a result list with a single success of zero consumption
// and no failure record.
func Success[T, R any](t *Tails[T], v R) Results[T, R] {
	return Results[T, R]{
		succ: leaf(Info[T, R]{Consumed: 0, Tail: t, Value: v}),
		fail: NoFailure(),
	}
}

// Outcome creates a result list with a single success and no failure record.
func Outcome[T, R any](consumed int, t *Tails[T], v R) Results[T, R] {
	return Results[T, R]{
		succ: leaf(Info[T, R]{Consumed: consumed, Tail: t, Value: v}),
		fail: NoFailure(),
	}
}

// NoParse creates a result list with no successes and an unlabeled failure
// at the given position.
func NoParse[T, R any](pos int) Results[T, R] {
	return Results[T, R]{fail: FailureAt(pos)}
}

// FailWith creates a result list with no successes and a labeled failure at
// the given position.
func FailWith[T, R any](pos int, labels ...string) Results[T, R] {
	return Results[T, R]{fail: FailureAt(pos, labels...)}
}

// FromFailure wraps a bare failure record into an empty result list.
func FromFailure[T, R any](f Failure) Results[T, R] {
	return Results[T, R]{fail: f}
}

// HasSuccess is true if at least one successful outcome is present.
func (r Results[T, R]) HasSuccess() bool {
	return r.succ != nil
}

// Successes flattens the success collection into engine order.
func (r Results[T, R]) Successes() []Info[T, R] {
	return r.succ.flatten(nil)
}

// Failure returns the furthest-failure record.
func (r Results[T, R]) Failure() Failure {
	return r.fail
}

// Merge multiset-unions the successes of two result lists, r's outcomes
// first, and keeps the furthest of the two failure records.
func (r Results[T, R]) Merge(other Results[T, R]) Results[T, R] {
	return Results[T, R]{
		succ: cat(r.succ, other.succ),
		fail: r.fail.Merge(other.fail),
	}
}

// RewindFailure replaces the failure record's position and drops its labels.
// Backtracking combinators use this to hide the deeper cause of a failure
// from enclosing choice points.
func (r Results[T, R]) RewindFailure(pos int) Results[T, R] {
	r.fail = FailureAt(pos)
	return r
}

// Relabel replaces the expected labels with the given one, but only if no
// success is present and the failure occurred exactly at pos, i.e. the
// parser failed without consuming input.
func (r Results[T, R]) Relabel(pos int, label string) Results[T, R] {
	if r.succ == nil && r.fail.Pos == pos {
		r.fail = FailureAt(pos, label)
	}
	return r
}

// MapResults applies f to the value of every successful outcome. Consumption
// lengths, continuation tails and the failure record pass through unchanged.
func MapResults[T, A, B any](r Results[T, A], f func(A) B) Results[T, B] {
	return Results[T, B]{succ: mapTree(r.succ, f), fail: r.fail}
}

func mapTree[T, A, B any](t *tree[T, A], f func(A) B) *tree[T, B] {
	if t == nil {
		return nil
	}
	if t.leaf != nil {
		return leaf(Info[T, B]{
			Consumed: t.leaf.Consumed,
			Tail:     t.leaf.Tail,
			Value:    f(t.leaf.Value),
		})
	}
	return &tree[T, B]{left: mapTree(t.left, f), right: mapTree(t.right, f)}
}

// Erase converts a typed parser into the erased form grammar bundles
// store. The typed view is recovered by NonTerm.
func Erase[T, R any](p Parser[T, R]) Parser[T, any] {
	return func(t *Tails[T]) Results[T, any] {
		return MapResults(p(t), func(v R) any { return v })
	}
}

// assertResults converts an erased result list back to its typed form. A
// mismatch means a non-terminal handle was used against a foreign grammar,
// which is a programmer error, so the conversion is allowed to panic.
func assertResults[T, R any](r Results[T, any]) Results[T, R] {
	return MapResults(r, func(v any) R { return v.(R) })
}

// --- Length grouping --------------------------------------------------------

// LengthGroup is the grouped-by-length view of a success collection: all
// outcomes with the same consumption length, sharing a single continuation
// tail. The Values slice is never empty.
type LengthGroup[T, R any] struct {
	Consumed int
	Tail     *Tails[T]
	Values   []R
}

// GroupByLength converts the flat success collection into length groups.
// Groups appear in order of first occurrence of their length; within a
// group, values keep engine order.
func GroupByLength[T, R any](r Results[T, R]) []LengthGroup[T, R] {
	var groups []LengthGroup[T, R]
	index := make(map[int]int)
	for _, info := range r.Successes() {
		if at, ok := index[info.Consumed]; ok {
			groups[at].Values = append(groups[at].Values, info.Value)
			continue
		}
		index[info.Consumed] = len(groups)
		groups = append(groups, LengthGroup[T, R]{
			Consumed: info.Consumed,
			Tail:     info.Tail,
			Values:   []R{info.Value},
		})
	}
	return groups
}
