package textfmt

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// unitsToSeparate lists unit symbols that must be separated from the
// preceding number by a single space.
var unitsToSeparate = []string{"%"}

var (
	whitespaceRunRegex    = regexp.MustCompile(`\s\s+`)
	whitespaceBeforeEndRe = regexp.MustCompile(`\s+([.:?])$`)
	curlyDoubleQuoteRegex = regexp.MustCompile(`[“”]`)
	numberBeforeUnitRegex = regexp.MustCompile(`(\d)(` + strings.Join(unitsToSeparate, "|") + `)`)
)

// Format normalizes a free-text field into its canonical form:
// leading/trailing whitespace is trimmed, internal whitespace runs collapse to
// a single space, whitespace before terminal punctuation is removed, curly
// double quotes become straight quotes, and unit symbols are separated from
// the preceding digit.
func Format(text string) string {
	formatted := strings.TrimSpace(text)

	formatted = whitespaceRunRegex.ReplaceAllString(formatted, " ")
	formatted = whitespaceBeforeEndRe.ReplaceAllString(formatted, "$1")
	formatted = curlyDoubleQuoteRegex.ReplaceAllString(formatted, `"`)
	formatted = numberBeforeUnitRegex.ReplaceAllString(formatted, "$1 $2")

	return formatted
}

// CapitalizeFirst upper-cases the first character of s.
func CapitalizeFirst(s string) string {
	if s == "" {
		return s
	}

	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

// EnsureTrailingPeriod appends a period unless s already ends with one.
func EnsureTrailingPeriod(s string) string {
	if s == "" || strings.HasSuffix(s, ".") {
		return s
	}
	return s + "."
}

// RemoveEndPeriod strips a single trailing period.
func RemoveEndPeriod(s string) string {
	return strings.TrimSuffix(s, ".")
}
