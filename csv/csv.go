// Package csv parses RFC 4180 style records with the comb
// combinators: quoted fields with "" escapes, bare fields, CRLF or
// LF line endings.
package csv

import (
	"errors"
	"strings"

	"github.com/tef/comb"
)

var ErrInvalid = errors.New("csv: invalid input")

var quoted = comb.Map(
	comb.Regex(`"(?:[^"]|"")*"`),
	func(tok string) string {
		return strings.ReplaceAll(tok[1:len(tok)-1], `""`, `"`)
	},
)

// bare may be empty: ",," is a record of three empty fields
var bare = comb.Regex(`[^,"\r\n]*`)

var field = comb.Or(quoted, bare)

var record = comb.Map(
	comb.Concat(field, comb.Repeat(comb.IgnoreLeft(comb.Char(','), field), 0)),
	func(v comb.Pair[string, []string]) []string {
		return append([]string{v.A}, v.B...)
	},
)

var newline = comb.Or(comb.Literal("\r\n"), comb.Literal("\n"))

var document = comb.IgnoreRight(
	comb.Map(
		comb.Concat(record, comb.Repeat(comb.IgnoreLeft(newline, record), 0)),
		func(v comb.Pair[[]string, [][]string]) [][]string {
			return append([][]string{v.A}, v.B...)
		},
	),
	comb.End(),
)

// Parse parses the whole input into records. A trailing newline does
// not produce a final empty record.
func Parse(s string) ([][]string, error) {
	if s == "" {
		return nil, nil
	}
	_, rows, ok := document(comb.NewGen(s))
	if !ok {
		return nil, ErrInvalid
	}
	// the grammar reads "a\n" as a record then an empty one, since
	// a bare field may be empty. Callers mean a terminated line.
	if n := len(rows); n > 1 && len(rows[n-1]) == 1 && rows[n-1][0] == "" {
		rows = rows[:n-1]
	}
	return rows, nil
}
