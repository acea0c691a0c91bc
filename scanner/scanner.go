/*
Package scanner provides tokenizer front-ends for grammars written over
token alphabets.

The combinator engine is generic in the prime element of its input. For
lexical grammars that element is a rune; for grammars over a token
alphabet it is a grampa.Token, and the input sequence is a token slice
produced ahead of the parse. This package supplies two tokenizers
producing such slices: a thin wrapper over the Go std lib 'text/scanner',
and an adapter for lexmachine, living in sub-package `lexmach`. It also
supplies the primitive parsers matching single tokens by category or
lexeme.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/grampa"
	"github.com/npillmayer/grampa/combinator"
)

// tracer traces with key 'grampa.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("grampa.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() grampa.Token
	SetErrorHandler(func(error))
}

// ReadAll drains a tokenizer into the token sequence a grammar over
// tokens parses. The EOF token is not part of the sequence; end of input
// is represented by the end of the slice.
func ReadAll(t Tokenizer) []grampa.Token {
	collected := arraylist.New()
	for {
		token := t.NextToken()
		if token.Kind() == grampa.TokType(EOF) {
			break
		}
		collected.Add(token)
	}
	tokens := make([]grampa.Token, 0, collected.Size())
	for _, v := range collected.Values() {
		tokens = append(tokens, v.(grampa.Token))
	}
	tracer().Debugf("scanned %d tokens", len(tokens))
	return tokens
}

// --- Token-level primitive parsers -----------------------------------------

// TokOf matches a single token of the given category.
func TokOf(kind grampa.TokType, label string) combinator.Parser[grampa.Token, grampa.Token] {
	return combinator.Satisfy(label, func(t grampa.Token) bool {
		return t.Kind() == kind
	})
}

// LexemeOf matches a single token with the given lexeme.
func LexemeOf(lexeme string) combinator.Parser[grampa.Token, grampa.Token] {
	return combinator.Satisfy(fmt.Sprintf("%q", lexeme), func(t grampa.Token) bool {
		return t.Lexeme() == lexeme
	})
}

// --- Default (Go) tokenizer --------------------------------------------------

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune        // last token this scanner has produced
	Error        func(error) // error handler
	unifyStrings bool        // convert single chars to strings
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// GoTokens scans the complete input with a GoTokenizer and returns the
// token sequence.
func GoTokens(sourceID string, input io.Reader, opts ...Option) []grampa.Token {
	return ReadAll(GoTokenizer(sourceID, input, opts...))
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() grampa.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	return DefaultToken{
		kind:   grampa.TokType(t.lastToken),
		lexeme: t.TokenText(),
		span:   grampa.SpanOf(uint64(t.Position.Offset), uint64(t.Pos().Offset)),
	}
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// tokenizer as well as the LexMachine scanner. It carries category, lexeme
// and source span; semantic values are left to grammar actions.
type DefaultToken struct {
	kind   grampa.TokType
	lexeme string
	span   grampa.Span
}

func MakeDefaultToken(typ grampa.TokType, lexeme string, span grampa.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) Kind() grampa.TokType {
	return t.kind
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() grampa.Span {
	return t.span
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenizer.
type Option func(t *DefaultTokenizer)

// KeepComments lets comment tokens reach the token sequence. The Go
// tokenizer drops comments by default, which suits most grammars; a
// grammar that attaches meaning to comments (doc extraction, pragmas)
// needs them as terminals.
func KeepComments() Option {
	return func(t *DefaultTokenizer) {
		t.Mode &^= scanner.SkipComments
	}
}

// UnifyStrings reports raw strings and single chars as String tokens,
// collapsing the three categories into a single terminal.
func UnifyStrings() Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = true
	}
}

// Lexeme is a helper function to receive a string from a token.
func Lexeme(token interface{}) string {
	switch t := token.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
