package resolver

import (
	"regexp"
	"strings"
)

// trailingPunctRe matches punctuation users tend to drag along when pasting
// a query ("gh issues," / "maps!"). Stripped before resolution.
var trailingPunctRe = regexp.MustCompile("[\\s'\"`#@)\\]\\},.!?:;]+$")

// symmetricQuotes are wrapper pairs stripped from a fully quoted query.
var symmetricQuotes = map[byte]byte{'"': '"', '\'': '\'', '`': '`'}

// SanitizeQuery normalizes an incoming query string: trim, strip a symmetric
// surrounding quote pair, strip trailing punctuation.
func SanitizeQuery(raw string) string {
	q := strings.TrimSpace(raw)
	if len(q) >= 2 {
		if close, ok := symmetricQuotes[q[0]]; ok && q[len(q)-1] == close {
			q = strings.TrimSpace(q[1 : len(q)-1])
		}
	}
	return trailingPunctRe.ReplaceAllString(q, "")
}

// SplitQuery splits a sanitized query into its keyword, the remainder string,
// and the remainder's whitespace-separated words.
func SplitQuery(q string) (keyword, rest string, words []string) {
	parts := strings.Fields(q)
	if len(parts) == 0 {
		return "", "", nil
	}
	return parts[0], strings.Join(parts[1:], " "), parts[1:]
}
