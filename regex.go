package comb

import "regexp"

// Regex matches the pattern against a prefix of the remaining input
// and yields the matched text. The pattern is anchored at the current
// position; a match further in is not a match. The matching engine is
// the standard regexp package and is a black box to the rest of the
// library: Regex is an ordinary Parser[string] and composes with Map
// like any other primitive.
//
// The pattern must compile; Regex panics otherwise, the same way
// regexp.MustCompile does. Build parsers at init time, not per call.
func Regex(pattern string) Parser[string] {
	re := regexp.MustCompile(`\A(?:` + pattern + `)`)
	return func(g Generator) (Generator, string, bool) {
		v := g.View()
		loc := re.FindStringIndex(v)
		if loc == nil {
			return g, "", false
		}
		return g.Forward(loc[1]), v[:loc[1]], true
	}
}
