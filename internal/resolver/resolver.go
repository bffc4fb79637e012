// Package resolver turns a typed query into a redirect target or a ranked
// suggestion list.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/alfredjeanlab/golink/internal/model"
	"github.com/alfredjeanlab/golink/internal/opensearch"
)

// bangPrefix marks a keyword as a search bang ("!so widgets").
const bangPrefix = "!"

// maxSuggestions caps the suggestion list returned for unknown keywords.
const maxSuggestions = 10

// Outcome is the result of a resolution: either a Redirect or Suggestions.
type Outcome interface{ outcome() }

// Redirect sends the caller to a concrete URL.
type Redirect struct {
	URL string `json:"url"`
}

func (Redirect) outcome() {}

// Suggestion is one candidate shown when no exact keyword matched.
type Suggestion struct {
	Keyword string `json:"keyword"`
	Title   string `json:"title,omitempty"`
	URL     string `json:"url"`
}

// Suggestions carries the ranked candidates and an optional fallback search URL.
type Suggestions struct {
	Query       string       `json:"query"`
	Items       []Suggestion `json:"items"`
	FallbackURL string       `json:"fallback_url,omitempty"`
}

func (Suggestions) outcome() {}

// TemplateSource provides a search-URL template for a link's site.
// A false return means no template is available; the resolver degrades to the
// stored URL rather than surfacing the failure. *opensearch.Cache satisfies it.
type TemplateSource interface {
	Template(ctx context.Context, linkURL string) (opensearch.Template, bool)
}

// LinkSource is the read-only slice of the store the resolver needs.
type LinkSource interface {
	GetLink(ctx context.Context, keyword string) (*model.Link, error)
	FindLinks(ctx context.Context, text string) ([]*model.Link, error)
}

// Resolver resolves keywords against the link store, consulting the
// descriptor cache for search bangs. It never caches link data itself; every
// lookup re-reads the store so admin edits take effect immediately.
type Resolver struct {
	store    LinkSource
	search   TemplateSource
	fallback Template
	logger   *slog.Logger
}

// New creates a Resolver. search may be nil to disable search bangs;
// fallbackTemplate may be empty to disable the fallback link on suggestions.
func New(s LinkSource, search TemplateSource, fallbackTemplate string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		store:    s,
		search:   search,
		fallback: ParseTemplate(fallbackTemplate),
		logger:   logger,
	}
}

// Resolve handles one raw typed query ("gh", "!so missing index", "maps ab cd").
// The only error it returns is a store read failure; every other failure mode
// degrades to a Redirect or Suggestions outcome.
func (r *Resolver) Resolve(ctx context.Context, raw string) (Outcome, error) {
	q := SanitizeQuery(raw)
	keyword, rest, words := SplitQuery(q)
	if keyword == "" {
		return Suggestions{Query: q, Items: []Suggestion{}}, nil
	}

	bang := strings.HasPrefix(keyword, bangPrefix)
	lookup := strings.TrimPrefix(keyword, bangPrefix)
	if lookup == "" {
		// A bare "!" resolves nothing; treat the remainder as the query.
		return r.suggest(ctx, q, rest)
	}

	link, err := r.store.GetLink(ctx, lookup)
	if err != nil {
		return nil, fmt.Errorf("get link %q: %w", lookup, err)
	}
	if link == nil {
		return r.suggest(ctx, q, lookup)
	}

	if bang && link.SearchEnabled && rest != "" {
		if url, ok := r.searchURL(ctx, link, rest); ok {
			return Redirect{URL: url}, nil
		}
		// Degrade to the stored URL rather than erroring.
		return Redirect{URL: link.URL}, nil
	}

	tmpl := ParseTemplate(link.URL)
	if tmpl.HasPlaceholders() {
		return Redirect{URL: tmpl.Expand(rest, rest, words)}, nil
	}
	return Redirect{URL: link.URL}, nil
}

// searchURL asks the descriptor cache for the link's search template and
// expands it with the given terms.
func (r *Resolver) searchURL(ctx context.Context, link *model.Link, terms string) (string, bool) {
	if r.search == nil {
		return "", false
	}
	tmpl, ok := r.search.Template(ctx, link.URL)
	if !ok {
		r.logger.Debug("no search template for link", "keyword", link.Keyword, "url", link.URL)
		return "", false
	}
	url, ok := tmpl.Expand(terms)
	if !ok {
		r.logger.Debug("search template has no terms placeholder", "keyword", link.Keyword)
		return "", false
	}
	return url, true
}

// suggest builds the ordered suggestion outcome for an unmatched keyword.
func (r *Resolver) suggest(ctx context.Context, fullQuery, needle string) (Outcome, error) {
	out := Suggestions{Query: fullQuery, Items: []Suggestion{}}

	if needle != "" {
		links, err := r.store.FindLinks(ctx, needle)
		if err != nil {
			return nil, fmt.Errorf("find links %q: %w", needle, err)
		}
		for _, l := range rankSuggestions(links, needle) {
			out.Items = append(out.Items, Suggestion{Keyword: l.Keyword, Title: l.Title, URL: l.URL})
			if len(out.Items) == maxSuggestions {
				break
			}
		}
	}

	if r.fallback.HasPlaceholders() {
		out.FallbackURL = r.fallback.Expand(fullQuery, fullQuery, strings.Fields(fullQuery))
	}
	return out, nil
}

// rankSuggestions orders candidates: keyword-substring matches first, then
// shorter keywords, then case-insensitive lexicographic order.
func rankSuggestions(links []*model.Link, needle string) []*model.Link {
	folded := strings.ToLower(needle)
	ranked := make([]*model.Link, len(links))
	copy(ranked, links)

	keywordMatch := func(l *model.Link) bool {
		return strings.Contains(strings.ToLower(l.Keyword), folded)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		am, bm := keywordMatch(a), keywordMatch(b)
		if am != bm {
			return am
		}
		if len(a.Keyword) != len(b.Keyword) {
			return len(a.Keyword) < len(b.Keyword)
		}
		return strings.ToLower(a.Keyword) < strings.ToLower(b.Keyword)
	})
	return ranked
}
