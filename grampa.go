package grampa

import "fmt"

// --- Tokens as prime elements ----------------------------------------------

// TokType is a category type for a Token. We do not define any constants here,
// as it is up to applications to define them.
type TokType int

// Tokens are the prime elements of a token-alphabet input sequence: a
// grammar over tokens is a grammar over []Token, with each Token counting
// as one element of consumed input. Tokens carry no semantic value of
// their own; values are produced by the grammar's actions, which inspect
// Lexeme.
//
// An example would be a token for a floating point number:
//
//	Kind    = Float       // category identifier (application specific)
//	Lexeme  = "3.1416"    // lexeme how it appeared in the input stream
//	Span    = 67…73       // extent in the source text, in bytes
type Token interface {
	Kind() TokType
	Lexeme() string
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span locates a token, or a run of tokens, in the source text the
// scanner consumed: the offset of the first byte and the offset just
// behind the last. The engine measures consumption in prime elements, so
// spans are what connects a parse result back to source positions.
//
// The zero Span is the empty span; it is the neutral element of Union.
type Span struct {
	Start uint64
	End   uint64
}

// SpanOf creates the span (start…end).
func SpanOf(start, end uint64) Span {
	return Span{Start: start, End: end}
}

// Len returns the number of bytes a span covers.
func (s Span) Len() uint64 {
	if s.Empty() {
		return 0
	}
	return s.End - s.Start
}

// Empty is true for spans covering nothing.
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// Union returns the smallest span covering both operands. Empty spans
// are neutral.
func (s Span) Union(other Span) Span {
	if s.Empty() {
		return other
	}
	if other.Empty() {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s.Start, s.End)
}

// Cover returns the span covering a run of tokens, e.g. the consumed or
// the unconsumed part of a parse over a token alphabet. An empty run
// yields the empty span.
func Cover(tokens []Token) Span {
	var span Span
	for _, t := range tokens {
		span = span.Union(t.Span())
	}
	return span
}
