package resolver

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// TemplateKind classifies a stored URL by the placeholders it carries.
// Expansion switches on the kind instead of rescanning the string.
type TemplateKind int

const (
	// TemplatePlain has no placeholders; the URL is used verbatim.
	TemplatePlain TemplateKind = iota
	// TemplateQuery carries at least one whole-query placeholder
	// ({q}, {args}, {args_raw}, {args_url}), possibly positional ones too.
	TemplateQuery
	// TemplatePositional carries only positional placeholders ({1}, {2}, ...).
	TemplatePositional
)

// positionalRe matches positional placeholders like {1}, {2}.
var positionalRe = regexp.MustCompile(`\{(\d+)\}`)

// unknownTokenRe matches any leftover brace token after known substitutions.
var unknownTokenRe = regexp.MustCompile(`\{[^{}]*\}`)

// queryPlaceholders are the whole-query placeholder tokens.
var queryPlaceholders = []string{"{q}", "{args}", "{args_raw}", "{args_url}"}

// Template is a parsed stored URL.
type Template struct {
	raw  string
	kind TemplateKind
	// maxIndex is the highest positional placeholder, 0 when none.
	maxIndex int
}

// ParseTemplate classifies a stored URL into a Template.
func ParseTemplate(raw string) Template {
	t := Template{raw: raw, kind: TemplatePlain}

	for _, m := range positionalRe.FindAllStringSubmatch(raw, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > t.maxIndex {
			t.maxIndex = n
		}
	}
	if t.maxIndex > 0 {
		t.kind = TemplatePositional
	}
	for _, p := range queryPlaceholders {
		if strings.Contains(raw, p) {
			t.kind = TemplateQuery
			break
		}
	}
	return t
}

// Kind returns the template's placeholder classification.
func (t Template) Kind() TemplateKind { return t.kind }

// HasPlaceholders reports whether expansion would change the URL.
func (t Template) HasPlaceholders() bool { return t.kind != TemplatePlain }

// Expand substitutes the user's query into the template. fullQuery is the
// whole sanitized input including the keyword; rest and words are the
// remainder after the keyword. Missing positional words collapse to an empty
// string, as does any token the parser does not recognize.
func (t Template) Expand(fullQuery, rest string, words []string) string {
	if t.kind == TemplatePlain {
		return t.raw
	}

	out := t.raw
	out = strings.ReplaceAll(out, "{q}", encodeTerm(fullQuery))
	out = strings.ReplaceAll(out, "{args}", encodeTerm(rest))
	out = strings.ReplaceAll(out, "{args_raw}", rest)
	out = strings.ReplaceAll(out, "{args_url}", encodeTerm(rest))

	out = positionalRe.ReplaceAllStringFunc(out, func(m string) string {
		sub := positionalRe.FindStringSubmatch(m)
		i, err := strconv.Atoi(sub[1])
		if err != nil || i < 1 || i > len(words) {
			return ""
		}
		return encodeTerm(words[i-1])
	})

	// Anything left in braces is an unexpandable token.
	return unknownTokenRe.ReplaceAllString(out, "")
}

// encodeTerm URL-encodes a query fragment, rendering spaces as %20.
func encodeTerm(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
