/*
Package lexmach adapts lexmachine as a tokenizer front-end.

A grammar over a token alphabet parses a []grampa.Token sequence; this
package drives a lexmachine DFA to produce such sequences. Unlike the
default Go tokenizer, the token categories are entirely application
defined: verbatim literals are registered through a map, everything else
through lexmachine patterns.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach

import (
	"sort"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/grampa"
	"github.com/npillmayer/grampa/scanner"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'grampa.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("grampa.scanner")
}

// Adapter compiles a lexmachine DFA once and then produces the token
// sequence for any number of inputs.
type Adapter struct {
	Lexer *lexmachine.Lexer
}

// New creates a lexmachine adapter. init, if non-nil, may add arbitrary
// patterns to the lexer (numbers, identifiers, whitespace to Skip, …);
// literals maps verbatim terminals ("+", "(", "if", …) to their token
// categories. Literals are escaped, so they match exactly as written.
//
// New returns an error if compiling the DFA failed.
func New(init func(*lexmachine.Lexer), literals map[string]int) (*Adapter, error) {
	adapter := &Adapter{Lexer: lexmachine.NewLexer()}
	if init != nil {
		init(adapter.Lexer)
	}
	// register literals in a stable order, so that DFA construction does
	// not depend on map iteration
	lits := make([]string, 0, len(literals))
	for lit := range literals {
		lits = append(lits, lit)
	}
	sort.Strings(lits)
	for _, lit := range lits {
		adapter.Lexer.Add([]byte(escape(lit)), Emit(literals[lit]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// escape backslash-escapes regex metacharacters, making a literal match
// verbatim.
func escape(lit string) string {
	var b strings.Builder
	for _, r := range lit {
		if strings.ContainsRune(`\.+*?()|[]{}^$-`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Tokens scans the complete input and returns the token sequence a
// grammar over tokens parses. Token spans are byte offsets into the
// input, so parse results can be mapped back to source locations with
// grampa.Cover. Unrecognized input is reported through the trace and
// skipped, resynchronizing behind the offending bytes.
func (a *Adapter) Tokens(input string) ([]grampa.Token, error) {
	s, err := a.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var tokens []grampa.Token
	for {
		tok, err, eof := s.Next()
		if eof {
			break
		}
		if err != nil {
			ui, is := err.(*machines.UnconsumedInput)
			if !is {
				return nil, err
			}
			tracer().Errorf("scanner error: %v", err)
			s.TC = ui.FailTC // resync behind the failure
			continue
		}
		token := tok.(*lexmachine.Token)
		tokens = append(tokens, scanner.MakeDefaultToken(
			grampa.TokType(token.Type),
			string(token.Lexeme),
			grampa.SpanOf(uint64(token.TC), uint64(token.TC+len(token.Lexeme))),
		))
	}
	tracer().Debugf("lexmachine scanned %d tokens", len(tokens))
	return tokens, nil
}

// --- Actions ----------------------------------------------------------------

// Skip is an action for patterns that produce no token, e.g. whitespace.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// Emit is an action producing a token of the given category.
func Emit(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
