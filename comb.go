// Package comb is a small parser combinator library: a handful of
// primitive matchers over an immutable input position, and combinators
// that glue them into recursive descent parsers.
//
// A Parser is a pure function from a Generator (the position) to a
// result. Failure is opaque: no position, no message. Backtracking is
// done by handing a parser a copy of an earlier Generator, never by
// rewinding one in place.
package comb

import (
	"strings"
	"unicode/utf8"
)

// Generator is an immutable cursor over the remaining input. Forward
// returns a new Generator advanced by n bytes; View returns the
// unconsumed suffix. Copies are cheap, a Generator never owns the
// underlying data.
//
// Forward(n) with n greater than the remaining length is the caller's
// bug. The primitives in this package only ever advance by the byte
// length of input they just matched.
type Generator interface {
	Forward(n int) Generator
	View() string
}

// StrGen is the string-backed Generator. Forward re-slices, so
// duplication and movement cost one string header.
type StrGen struct {
	s string
}

func NewGen(s string) Generator {
	return StrGen{s: s}
}

func (g StrGen) Forward(n int) Generator {
	return StrGen{s: g.s[n:]}
}

func (g StrGen) View() string {
	return g.s
}

// Parser consumes input from g and returns the position after the
// match, the matched value, and whether it matched. On failure the
// other return values are zero and g itself is untouched, so the
// caller can retry from it.
type Parser[O any] func(g Generator) (Generator, O, bool)

// Pair is the output of Concat. Multi-arity sequences are nested
// pairs, matching Concat's binary shape.
type Pair[A, B any] struct {
	A A
	B B
}

// Option is the output of Opt: Set reports whether the wrapped
// parser matched.
type Option[O any] struct {
	Value O
	Set   bool
}

// Char matches exactly the rune c at the head of the input and
// advances past its UTF-8 encoding.
func Char(c rune) Parser[rune] {
	return func(g Generator) (Generator, rune, bool) {
		r, size := utf8.DecodeRuneInString(g.View())
		if size == 0 || r != c {
			return g, 0, false
		}
		return g.Forward(size), r, true
	}
}

// Literal matches the string s at the head of the input.
func Literal(s string) Parser[string] {
	return func(g Generator) (Generator, string, bool) {
		v := g.View()
		if !strings.HasPrefix(v, s) {
			return g, "", false
		}
		return g.Forward(len(s)), v[:len(s)], true
	}
}

// Concat runs l then r, r starting where l left off. Both must match;
// l's consumption is never undone to retry r. The output is the pair
// of both outputs.
func Concat[A, B any](l Parser[A], r Parser[B]) Parser[Pair[A, B]] {
	return func(g Generator) (Generator, Pair[A, B], bool) {
		g1, a, ok := l(g)
		if !ok {
			return g, Pair[A, B]{}, false
		}
		g2, b, ok := r(g1)
		if !ok {
			return g, Pair[A, B]{}, false
		}
		return g2, Pair[A, B]{A: a, B: b}, true
	}
}

// IgnoreLeft is Concat keeping only r's output.
func IgnoreLeft[A, B any](l Parser[A], r Parser[B]) Parser[B] {
	return func(g Generator) (Generator, B, bool) {
		g1, _, ok := l(g)
		if !ok {
			var zero B
			return g, zero, false
		}
		g2, b, ok := r(g1)
		if !ok {
			var zero B
			return g, zero, false
		}
		return g2, b, true
	}
}

// IgnoreRight is Concat keeping only l's output.
func IgnoreRight[A, B any](l Parser[A], r Parser[B]) Parser[A] {
	return func(g Generator) (Generator, A, bool) {
		g1, a, ok := l(g)
		if !ok {
			var zero A
			return g, zero, false
		}
		g2, _, ok := r(g1)
		if !ok {
			var zero A
			return g, zero, false
		}
		return g2, a, true
	}
}

// Or tries l, and if l fails, tries r from the same position. Left
// biased: r is never consulted when l matches, even if r would match
// more input.
func Or[O any](l, r Parser[O]) Parser[O] {
	return func(g Generator) (Generator, O, bool) {
		if g1, v, ok := l(g); ok {
			return g1, v, true
		}
		return r(g)
	}
}

// Choice folds Or over its arguments, first match wins.
func Choice[O any](ps ...Parser[O]) Parser[O] {
	return func(g Generator) (Generator, O, bool) {
		for _, p := range ps {
			if g1, v, ok := p(g); ok {
				return g1, v, true
			}
		}
		var zero O
		return g, zero, false
	}
}

// Maybe wraps p's output in an Option that is always Set. It is not
// zero-or-one: when p fails, Maybe fails too. Use Opt for
// conventional optionality.
func Maybe[O any](p Parser[O]) Parser[Option[O]] {
	return func(g Generator) (Generator, Option[O], bool) {
		g1, v, ok := p(g)
		if !ok {
			return g, Option[O]{}, false
		}
		return g1, Option[O]{Value: v, Set: true}, true
	}
}

// Succeed matches nothing and yields v. Useful as the fallback arm
// of an Or.
func Succeed[O any](v O) Parser[O] {
	return func(g Generator) (Generator, O, bool) {
		return g, v, true
	}
}

// Opt is zero-or-one: an unset Option when p fails, consuming
// nothing. Defined as Or(Maybe(p), Succeed(unset)).
func Opt[O any](p Parser[O]) Parser[Option[O]] {
	return Or(Maybe(p), Succeed(Option[O]{}))
}

// Repeat applies p greedily until it fails, collecting the outputs in
// order. It succeeds at the position of the last successful
// application (the failed probe is discarded), unless fewer than min
// applications succeeded, in which case it fails. min of 0 means zero
// matches is a success with an empty slice at the start position.
//
// There is no backtracking into earlier iterations: input consumed by
// one application is never given back to make a later parser fit.
func Repeat[O any](p Parser[O], min int) Parser[[]O] {
	return func(g Generator) (Generator, []O, bool) {
		var out []O
		pos := g
		for {
			next, v, ok := p(pos)
			if !ok {
				break
			}
			pos = next
			out = append(out, v)
		}
		if len(out) < min {
			return g, nil, false
		}
		return pos, out, true
	}
}

// Map applies f to p's output, leaving the position alone. f is
// assumed pure; if f needs to signal failure it must encode that in
// its return type, the combinator never inspects it.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(g Generator) (Generator, B, bool) {
		g1, v, ok := p(g)
		if !ok {
			var zero B
			return g, zero, false
		}
		return g1, f(v), true
	}
}

// Lookahead matches iff p matches, yielding p's output but consuming
// nothing.
func Lookahead[O any](p Parser[O]) Parser[O] {
	return func(g Generator) (Generator, O, bool) {
		_, v, ok := p(g)
		if !ok {
			var zero O
			return g, zero, false
		}
		return g, v, true
	}
}

// Reject matches iff p fails, consuming nothing.
func Reject[O any](p Parser[O]) Parser[struct{}] {
	return func(g Generator) (Generator, struct{}, bool) {
		if _, _, ok := p(g); ok {
			return g, struct{}{}, false
		}
		return g, struct{}{}, true
	}
}

// End matches only at end of input. The core never checks for
// trailing input on its own; compose this where "whole input" is
// meant.
func End() Parser[struct{}] {
	return func(g Generator) (Generator, struct{}, bool) {
		if g.View() != "" {
			return g, struct{}{}, false
		}
		return g, struct{}{}, true
	}
}

// Ref defers to *p at parse time, so a grammar can refer to a parser
// that is assigned after the referencing parser is built.
//
//	var value comb.Parser[any]
//	list := comb.Ref(&value) // ok before value is assigned
//	value = comb.Choice(...)
func Ref[O any](p *Parser[O]) Parser[O] {
	return func(g Generator) (Generator, O, bool) {
		return (*p)(g)
	}
}
