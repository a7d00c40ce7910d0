package render

import (
	"strings"
	"unicode"
)

// EmphasizeNumbers escapes text and wraps numeric tokens in <strong>.
// A token is an integer (optionally thousands-grouped), an optional
// decimal fraction, and an optional magnitude or percent suffix. Tokens
// must sit on word boundaries: 12,500 and 1.2m qualify, 12km does not.
// The token itself is escaped before wrapping.
func EmphasizeNumbers(text string) string {
	r := []rune(text)
	var b strings.Builder
	flushed := 0
	i := 0
	for i < len(r) {
		if isDigit(r[i]) && (i == 0 || !isWordRune(r[i-1])) {
			if end, ok := matchNumber(r, i); ok {
				b.WriteString(EscapeText(string(r[flushed:i])))
				b.WriteString("<strong>")
				b.WriteString(EscapeText(string(r[i:end])))
				b.WriteString("</strong>")
				flushed, i = end, end
				continue
			}
		}
		i++
	}
	b.WriteString(EscapeText(string(r[flushed:])))
	return b.String()
}

// matchNumber reports the end of the numeric token starting at i.
// Candidates are tried in preference order: grouped integers before plain
// runs, longer fractions before shorter, a suffix before none. The first
// candidate whose end lands on a non-word boundary wins.
func matchNumber(r []rune, i int) (int, bool) {
	for _, intEnd := range integerEnds(r, i) {
		for _, fracEnd := range fractionEnds(r, intEnd) {
			for _, end := range suffixEnds(r, fracEnd) {
				if end >= len(r) || !isWordRune(r[end]) {
					return end, true
				}
			}
		}
	}
	return 0, false
}

// integerEnds lists candidate ends for the integer part, most preferred
// first: grouped forms like 12,500 with the longest lead and the most
// comma groups, then plain digit runs longest first.
func integerEnds(r []rune, i int) []int {
	run := digitRun(r, i)
	var ends []int
	for lead := min(run, 3); lead >= 1; lead-- {
		for g := groupRun(r, i+lead); g >= 1; g-- {
			ends = append(ends, i+lead+4*g)
		}
	}
	for d := run; d >= 1; d-- {
		ends = append(ends, i+d)
	}
	return ends
}

// fractionEnds lists candidate ends for an optional decimal fraction
// starting at intEnd, longest first, ending with the no-fraction case.
func fractionEnds(r []rune, intEnd int) []int {
	if intEnd < len(r) && r[intEnd] == '.' {
		if run := digitRun(r, intEnd+1); run > 0 {
			ends := make([]int, 0, run+1)
			for d := run; d >= 1; d-- {
				ends = append(ends, intEnd+1+d)
			}
			return append(ends, intEnd)
		}
	}
	return []int{intEnd}
}

// suffixEnds lists candidate ends for an optional magnitude or percent
// suffix, suffixed form first.
func suffixEnds(r []rune, fracEnd int) []int {
	if fracEnd < len(r) && isSuffixRune(r[fracEnd]) {
		return []int{fracEnd + 1, fracEnd}
	}
	return []int{fracEnd}
}

// digitRun counts consecutive ASCII digits starting at i.
func digitRun(r []rune, i int) int {
	n := 0
	for i+n < len(r) && isDigit(r[i+n]) {
		n++
	}
	return n
}

// groupRun counts complete ",ddd" groups starting at i.
func groupRun(r []rune, i int) int {
	n := 0
	for i+4 <= len(r) && r[i] == ',' && isDigit(r[i+1]) && isDigit(r[i+2]) && isDigit(r[i+3]) {
		n++
		i += 4
	}
	return n
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isSuffixRune(c rune) bool {
	switch c {
	case 'k', 'K', 'm', 'M', 'b', 'B', 't', 'T', '%':
		return true
	}
	return false
}

// isWordRune mirrors the regexp word class: letters, numbers, underscore.
func isWordRune(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsNumber(c)
}
