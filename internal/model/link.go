package model

import (
	"strings"
	"time"
)

// Link is the core shortcut record: a keyword that redirects to a URL.
type Link struct {
	ID            string    `json:"id"`
	Keyword       string    `json:"keyword"`
	Title         string    `json:"title,omitempty"`
	URL           string    `json:"url"`
	SearchEnabled bool      `json:"search_enabled"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relational data -- populated by queries, not stored in the links table.
	Lists []string `json:"lists,omitempty"`
}

// FoldKeyword normalizes a keyword for case-insensitive identity.
func FoldKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// List groups links under a slug for shared browsing.
type List struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// LinkFilter restricts ListLinks results.
type LinkFilter struct {
	// Search matches keyword, title, or URL as a case-insensitive substring.
	Search string
	// List restricts results to members of the given list slug.
	List string
	// Limit caps the number of results; 0 means no limit.
	Limit int
}

// ImportRow is one parsed line of a CSV import. It exists only for the
// duration of a single import operation.
type ImportRow struct {
	Keyword       string
	Title         string
	URL           string
	SearchEnabled bool
	Lists         []string

	// Recency orders conflicting rows: explicit timestamp when the source
	// provides one, otherwise zero. Line breaks ties by file position.
	Recency time.Time
	Line    int
}
