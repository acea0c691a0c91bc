package combinator

// Primitive parsers inspect the input suffix at the current position
// directly. On success they consume a measured prefix, counted in prime
// elements, and continue with the tail table advanced by that many entries.

// Satisfy consumes one element if it satisfies pred, failing with the given
// label otherwise.
func Satisfy[T any](label string, pred func(T) bool) Parser[T, T] {
	return func(t *Tails[T]) Results[T, T] {
		s := t.Suffix()
		if len(s) == 0 || !pred(s[0]) {
			return FailWith[T, T](t.Len(), label)
		}
		return Outcome(1, t.Drop(1), s[0])
	}
}

// AnyToken consumes any single element.
func AnyToken[T any]() Parser[T, T] {
	return Satisfy("anyToken", func(T) bool { return true })
}

// NotSatisfy succeeds, consuming nothing, if the input is exhausted or its
// next element does not satisfy pred.
func NotSatisfy[T any](label string, pred func(T) bool) Parser[T, Unit] {
	return func(t *Tails[T]) Results[T, Unit] {
		s := t.Suffix()
		if len(s) > 0 && pred(s[0]) {
			return FailWith[T, Unit](t.Len(), label)
		}
		return Success(t, Unit{})
	}
}

// Literal consumes the given literal sequence exactly, failing with the
// label otherwise. An empty literal succeeds without consuming.
func Literal[T comparable](label string, lit []T) Parser[T, []T] {
	return func(t *Tails[T]) Results[T, []T] {
		s := t.Suffix()
		if len(s) < len(lit) {
			return FailWith[T, []T](t.Len(), label)
		}
		for i, e := range lit {
			if s[i] != e {
				return FailWith[T, []T](t.Len(), label)
			}
		}
		return Outcome(len(lit), t.Drop(len(lit)), s[:len(lit)])
	}
}

// TakeWhile consumes the longest, possibly empty, prefix of elements
// satisfying pred. It always succeeds, with a single outcome.
func TakeWhile[T any](pred func(T) bool) Parser[T, []T] {
	return func(t *Tails[T]) Results[T, []T] {
		s := t.Suffix()
		n := 0
		for n < len(s) && pred(s[n]) {
			n++
		}
		return Outcome(n, t.Drop(n), s[:n])
	}
}

// TakeWhile1 is TakeWhile requiring a non-empty prefix.
func TakeWhile1[T any](label string, pred func(T) bool) Parser[T, []T] {
	return func(t *Tails[T]) Results[T, []T] {
		s := t.Suffix()
		n := 0
		for n < len(s) && pred(s[n]) {
			n++
		}
		if n == 0 {
			return FailWith[T, []T](t.Len(), label)
		}
		return Outcome(n, t.Drop(n), s[:n])
	}
}

// Scan consumes elements while the stateful step function accepts them,
// threading the state from element to element. The consumed prefix is the
// result; Scan always succeeds.
func Scan[T, S any](init S, step func(S, T) (S, bool)) Parser[T, []T] {
	return func(t *Tails[T]) Results[T, []T] {
		s := t.Suffix()
		state := init
		n := 0
		for n < len(s) {
			var ok bool
			if state, ok = step(state, s[n]); !ok {
				break
			}
			n++
		}
		return Outcome(n, t.Drop(n), s[:n])
	}
}
