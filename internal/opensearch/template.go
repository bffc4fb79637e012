package opensearch

import (
	"net/url"
	"strings"
)

// searchTermsPlaceholders are the accepted spellings of the terms slot in an
// OpenSearch URL template.
var searchTermsPlaceholders = []string{
	"{searchTerms}", "{searchTerms?}", "{searchterms}", "{searchterms?}",
}

// Template is a search-URL template discovered from a site's OpenSearch
// descriptor document.
type Template struct {
	// DocURL is the descriptor document the template came from; relative
	// templates resolve against it.
	DocURL string
	// Pattern is the raw template containing a {searchTerms} placeholder.
	Pattern string
}

// Expand substitutes the URL-encoded terms into the template and strips any
// remaining optional placeholders. The second return is false when the
// pattern has no terms placeholder.
func (t Template) Expand(terms string) (string, bool) {
	encoded := encodeTerms(terms)
	out := t.Pattern
	replaced := false
	for _, p := range searchTermsPlaceholders {
		if strings.Contains(out, p) {
			out = strings.ReplaceAll(out, p, encoded)
			replaced = true
		}
	}
	if !replaced {
		return "", false
	}
	out = stripOptionalPlaceholders(out)

	if doc, err := url.Parse(t.DocURL); err == nil {
		if ref, err := url.Parse(out); err == nil {
			return doc.ResolveReference(ref).String(), true
		}
	}
	return out, true
}

// encodeTerms URL-encodes search terms, rendering spaces as %20.
func encodeTerms(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// stripOptionalPlaceholders removes optional OpenSearch placeholders like
// "{foo?}" while leaving unterminated braces intact.
func stripOptionalPlaceholders(template string) string {
	if !strings.Contains(template, "{") {
		return template
	}

	var out strings.Builder
	var pending []byte

	for i := 0; i < len(template); i++ {
		ch := template[i]
		if pending == nil {
			if ch == '{' {
				pending = []byte{'{'}
			} else {
				out.WriteByte(ch)
			}
			continue
		}

		pending = append(pending, ch)
		if ch != '}' {
			continue
		}
		if len(pending) > 2 && pending[len(pending)-2] == '?' {
			// Optional placeholder: drop it.
			pending = nil
			continue
		}
		out.Write(pending)
		pending = nil
	}

	if pending != nil {
		out.Write(pending)
	}
	return out.String()
}
