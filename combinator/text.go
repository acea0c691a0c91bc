package combinator

import (
	"fmt"
	"unicode"
)

// Conveniences for text grammars, where the prime element is a rune.

// Runes converts an input string into the rune sequence the engine
// operates on.
func Runes(s string) []rune {
	return []rune(s)
}

// Char consumes the single character c.
func Char(c rune) Parser[rune, rune] {
	label := fmt.Sprintf("%q", c)
	return Satisfy(label, func(r rune) bool { return r == c })
}

// SatisfyChar consumes one character satisfying pred.
func SatisfyChar(pred func(rune) bool) Parser[rune, rune] {
	return Satisfy("satisfyChar", pred)
}

// String consumes the given string exactly.
func String(s string) Parser[rune, string] {
	return Map(Literal(fmt.Sprintf("%q", s), []rune(s)), func(rs []rune) string {
		return string(rs)
	})
}

// TakeWhileChar consumes the longest, possibly empty, run of characters
// satisfying pred, as a string.
func TakeWhileChar(pred func(rune) bool) Parser[rune, string] {
	return Map(TakeWhile(pred), func(rs []rune) string {
		return string(rs)
	})
}

// TakeWhile1Char consumes the longest run of characters satisfying pred,
// requiring at least one.
func TakeWhile1Char(label string, pred func(rune) bool) Parser[rune, string] {
	return Map(TakeWhile1(label, pred), func(rs []rune) string {
		return string(rs)
	})
}

// Digit consumes a single decimal digit.
func Digit() Parser[rune, rune] {
	return Satisfy("digit", unicode.IsDigit)
}

// Whitespace consumes a possibly empty run of whitespace.
func Whitespace() Parser[rune, string] {
	return TakeWhileChar(unicode.IsSpace)
}
