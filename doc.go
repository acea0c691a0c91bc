/*
Package grampa is a parser-combinator toolbox for context-free grammars.

GramPa ("grammatical parsing") lets clients write a grammar as a bundle of
named non-terminals, each one a combinator expression which may freely
reference any non-terminal of the bundle, including itself. Parsing then
yields every valid parse of an input against a chosen start non-terminal.
Intermediate results are shared automatically: each non-terminal is parsed
at most once per input position (packrat-style memoization), giving
worst-case O(n²) behaviour for unambiguous grammars. Package structure is
as follows:

■ combinator: Package combinator implements the parser value model, its
result lists and the memoizing tail table the combinators operate on.

■ grammar: Package grammar ties mutually recursive non-terminals into a
single lazily evaluated structure and drives parsing of a full input.

■ peg: Package peg provides a measured backtracking PEG parser, together
with adapters between PEG parsers and context-free combinator parsers.

■ scanner: Package scanner provides tokenizer front-ends for grammars
written over token alphabets instead of plain text.

The base package contains data types which are used throughout all the
other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grampa
