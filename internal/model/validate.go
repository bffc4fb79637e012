package model

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// keywordRe restricts keywords to tokens without whitespace; the resolver
// splits the typed query on spaces, so a keyword can never contain one.
var keywordRe = regexp.MustCompile(`^\S+$`)

// slugRe matches URL-friendly list slugs.
var slugRe = regexp.MustCompile(`^[a-z0-9][a-z0-9\-_]*$`)

// allowedSchemes are the URL schemes a link may use.
var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"file":  true,
}

// ValidateLink checks a Link for constraint violations.
// It returns a *ValidationError if any rules fail, or nil if the link is valid.
func ValidateLink(l *Link) error {
	var ve ValidationError

	keyword := strings.TrimSpace(l.Keyword)
	if keyword == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "keyword", Message: "is required"})
	} else if !keywordRe.MatchString(keyword) {
		ve.Errors = append(ve.Errors, FieldError{Field: "keyword", Message: "must not contain whitespace"})
	} else if len([]rune(keyword)) > 100 {
		ve.Errors = append(ve.Errors, FieldError{Field: "keyword", Message: "must be 100 characters or fewer"})
	}

	if len([]rune(l.Title)) > 500 {
		ve.Errors = append(ve.Errors, FieldError{Field: "title", Message: "must be 500 characters or fewer"})
	}

	if err := validateLinkURL(l.URL); err != nil {
		ve.Errors = append(ve.Errors, FieldError{Field: "url", Message: err.Error()})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// validateLinkURL checks that raw is an absolute URL with an allowed scheme.
// Placeholder tokens like {q} are legal in the path and query.
func validateLinkURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("is not a valid URL: %v", err)
	}
	if !allowedSchemes[u.Scheme] {
		return fmt.Errorf("scheme %q is not allowed (http, https, file)", u.Scheme)
	}
	if u.Scheme != "file" && u.Host == "" {
		return fmt.Errorf("must be absolute")
	}
	return nil
}

// ValidateList checks a List for constraint violations.
func ValidateList(l *List) error {
	var ve ValidationError

	slug := strings.TrimSpace(l.Slug)
	if slug == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "slug", Message: "is required"})
	} else if !slugRe.MatchString(slug) {
		ve.Errors = append(ve.Errors, FieldError{Field: "slug", Message: "must be lowercase letters, digits, '-' or '_'"})
	}

	if strings.TrimSpace(l.Name) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "name", Message: "is required"})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
