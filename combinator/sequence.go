package combinator

// Delimited parses and discards the result from the prefix parser, then
// parses the result of the main parser, and finally parses and discards
// the result of the suffix parser.
func Delimited[T, OP, O, OS any](prefix Parser[T, OP], parser Parser[T, O], suffix Parser[T, OS]) Parser[T, O] {
	return Terminated(Preceded(prefix, parser), suffix)
}

// Pair applies two parsers in sequence and pairs their outputs. Every
// combination of a success of the left parser with a success of the right
// parser reachable from it yields one outcome.
func Pair[T, LO, RO any](leftParser Parser[T, LO], rightParser Parser[T, RO]) Parser[T, PairContainer[LO, RO]] {
	return Bind(leftParser, func(left LO) Parser[T, PairContainer[LO, RO]] {
		return Map(rightParser, func(right RO) PairContainer[LO, RO] {
			return PairContainer[LO, RO]{left, right}
		})
	})
}

// Preceded parses and discards a result from the prefix parser. It
// then parses a result from the main parser and returns its result.
func Preceded[T, OP, O any](prefix Parser[T, OP], parser Parser[T, O]) Parser[T, O] {
	return Bind(prefix, func(OP) Parser[T, O] {
		return parser
	})
}

// Terminated parses a result from the main parser, it then parses the
// result from the suffix parser and discards it; only returning the result
// of the main parser.
func Terminated[T, O, OS any](parser Parser[T, O], suffix Parser[T, OS]) Parser[T, O] {
	return Bind(parser, func(out O) Parser[T, O] {
		return Map(suffix, func(OS) O {
			return out
		})
	})
}

// SeparatedPair applies two parsers separated by a third and pairs the
// outer outputs, discarding the separator's.
func SeparatedPair[T, LO, S, RO any](leftParser Parser[T, LO], separator Parser[T, S], rightParser Parser[T, RO]) Parser[T, PairContainer[LO, RO]] {
	return Pair(Terminated(leftParser, separator), rightParser)
}

// SeparatedList0 parses a possibly empty list of elements separated by sep.
// Every element count is a distinct success, the empty list first.
func SeparatedList0[T, R, S any](parser Parser[T, R], separator Parser[T, S]) Parser[T, []R] {
	return Pure[T, []R](nil).Or(SeparatedList1(parser, separator))
}

// SeparatedList1 parses a list of one or more elements separated by sep.
// Every element count is a distinct success. An element/separator round
// that consumes nothing is not followed further, as it would repeat
// forever.
func SeparatedList1[T, R, S any](parser Parser[T, R], separator Parser[T, S]) Parser[T, []R] {
	next := Preceded(separator, parser)
	return Bind(parser, func(first R) Parser[T, []R] {
		return func(t *Tails[T]) Results[T, []R] {
			out := Results[T, []R]{fail: NoFailure()}
			frontier := []Info[T, []R]{{Consumed: 0, Tail: t, Value: []R{first}}}
			for len(frontier) > 0 {
				var follow []Info[T, []R]
				for _, stop := range frontier {
					out.succ = cat(out.succ, leaf(stop))
					r := next(stop.Tail)
					out.fail = out.fail.Merge(r.Failure())
					for _, s := range r.Successes() {
						if s.Consumed == 0 {
							continue
						}
						vals := make([]R, len(stop.Value), len(stop.Value)+1)
						copy(vals, stop.Value)
						follow = append(follow, Info[T, []R]{
							Consumed: stop.Consumed + s.Consumed,
							Tail:     s.Tail,
							Value:    append(vals, s.Value),
						})
					}
				}
				frontier = follow
			}
			return out
		}
	})
}
