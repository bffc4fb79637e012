package model

import (
	"regexp"
	"strings"
)

var (
	slugSpaceRe = regexp.MustCompile(`\s+`)
	slugStripRe = regexp.MustCompile(`[^a-z0-9\-_]`)
)

// ToSlug returns a URL-friendly slug for s: lowercase, spaces collapsed to
// hyphens, everything outside [a-z0-9-_] dropped.
func ToSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugSpaceRe.ReplaceAllString(s, "-")
	return slugStripRe.ReplaceAllString(s, "")
}

// NameForSlug derives a display name from a slug ("my-tools" -> "My Tools").
func NameForSlug(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
