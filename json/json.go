// Package json decodes JSON text with the comb combinators. Values
// come out shaped like encoding/json's: map[string]any, []any,
// string, float64, bool and nil. The point is the grammar, not the
// performance.
package json

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tef/comb"
)

var ErrInvalid = errors.New("json: invalid document")

var ws = comb.Regex(`[ \t\r\n]*`)

func token[O any](p comb.Parser[O]) comb.Parser[O] {
	return comb.IgnoreLeft(ws, p)
}

func punct(c rune) comb.Parser[rune] {
	return token(comb.Char(c))
}

// value is assigned in init; array and object refer to it through
// Ref before it exists.
var value comb.Parser[any]

var stringTok = comb.Map(
	comb.Regex(`"(?:[^"\\\x00-\x1f]|\\["\\/bfnrt]|\\u[0-9a-fA-F]{4})*"`),
	unescape,
)

var number = comb.Map(
	comb.Regex(`-?(?:0|[1-9][0-9]*)(?:\.[0-9]+)?(?:[eE][-+]?[0-9]+)?`),
	func(s string) any {
		f, _ := strconv.ParseFloat(s, 64)
		return f
	},
)

var constant = comb.Choice(
	comb.Map(comb.Literal("true"), func(string) any { return true }),
	comb.Map(comb.Literal("false"), func(string) any { return false }),
	comb.Map(comb.Literal("null"), func(string) any { return nil }),
)

// commaSep parses p ("," p)* | nothing, yielding the collected items.
func commaSep[O any](p comb.Parser[O]) comb.Parser[[]O] {
	rest := comb.Repeat(comb.IgnoreLeft(punct(','), p), 0)
	some := comb.Map(comb.Concat(p, rest), func(v comb.Pair[O, []O]) []O {
		return append([]O{v.A}, v.B...)
	})
	return comb.Or(some, comb.Succeed[[]O](nil))
}

var array = comb.Map(
	comb.IgnoreRight(
		comb.IgnoreLeft(comb.Char('['), commaSep(comb.Ref(&value))),
		punct(']'),
	),
	func(items []any) any {
		if items == nil {
			return []any{}
		}
		return items
	},
)

type member = comb.Pair[string, any]

var pair = comb.Concat(
	comb.IgnoreRight(token(stringTok), punct(':')),
	comb.Ref(&value),
)

var object = comb.Map(
	comb.IgnoreRight(
		comb.IgnoreLeft(comb.Char('{'), commaSep(pair)),
		punct('}'),
	),
	func(members []member) any {
		m := make(map[string]any, len(members))
		for _, kv := range members {
			m[kv.A] = kv.B
		}
		return m
	},
)

func init() {
	value = token(comb.Choice(
		array,
		object,
		comb.Map(stringTok, func(s string) any { return s }),
		number,
		constant,
	))
}

var document = comb.IgnoreRight(comb.Ref(&value), comb.IgnoreLeft(ws, comb.End()))

// Decode parses one JSON value spanning the whole input.
func Decode(s string) (any, error) {
	_, v, ok := document(comb.NewGen(s))
	if !ok {
		return nil, ErrInvalid
	}
	return v, nil
}

// Valid reports whether s is one well formed JSON value.
func Valid(s string) bool {
	_, _, ok := document(comb.NewGen(s))
	return ok
}

// unescape decodes a quoted string token the grammar already
// validated, surrogate pairs included.
func unescape(tok string) string {
	s := tok[1 : len(tok)-1]
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		switch s[i+1] {
		case '"', '\\', '/':
			b.WriteByte(s[i+1])
			i += 2
		case 'b':
			b.WriteByte('\b')
			i += 2
		case 'f':
			b.WriteByte('\f')
			i += 2
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'u':
			r := hex4(s[i+2 : i+6])
			i += 6
			if utf16.IsSurrogate(r) && i+6 <= len(s) && s[i] == '\\' && s[i+1] == 'u' {
				r2 := hex4(s[i+2 : i+6])
				if dec := utf16.DecodeRune(r, r2); dec != utf8.RuneError {
					r = dec
					i += 6
				}
			}
			if utf16.IsSurrogate(r) {
				r = utf8.RuneError
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

func hex4(s string) rune {
	n, _ := strconv.ParseUint(s, 16, 32)
	return rune(n)
}
