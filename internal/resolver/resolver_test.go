package resolver

import (
	"context"
	"strings"
	"testing"

	"github.com/alfredjeanlab/golink/internal/model"
	"github.com/alfredjeanlab/golink/internal/opensearch"
)

// fakeStore implements LinkSource over an in-memory link set.
type fakeStore struct {
	links []*model.Link
}

func (f *fakeStore) GetLink(_ context.Context, keyword string) (*model.Link, error) {
	for _, l := range f.links {
		if model.FoldKeyword(l.Keyword) == model.FoldKeyword(keyword) {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindLinks(_ context.Context, text string) ([]*model.Link, error) {
	needle := strings.ToLower(text)
	var out []*model.Link
	for _, l := range f.links {
		if strings.Contains(strings.ToLower(l.Keyword), needle) ||
			strings.Contains(strings.ToLower(l.Title), needle) ||
			strings.Contains(strings.ToLower(l.URL), needle) {
			out = append(out, l)
		}
	}
	return out, nil
}

// fakeTemplateSource returns a fixed template, or reports a miss.
type fakeTemplateSource struct {
	pattern string
	miss    bool
	calls   int
}

func (f *fakeTemplateSource) Template(_ context.Context, _ string) (opensearch.Template, bool) {
	f.calls++
	if f.miss {
		return opensearch.Template{}, false
	}
	return opensearch.Template{Pattern: f.pattern}, true
}

func testLinks() []*model.Link {
	return []*model.Link{
		{Keyword: "gh", Title: "GitHub", URL: "https://github.com"},
		{Keyword: "gl", Title: "GitLab", URL: "https://gitlab.com"},
		{Keyword: "search", URL: "https://example.com/search?q={q}"},
		{Keyword: "maps", URL: "https://maps.example.com/{1}/{2}"},
		{Keyword: "so", URL: "https://stackoverflow.com", SearchEnabled: true},
	}
}

func newTestResolver(search TemplateSource, fallback string) *Resolver {
	return New(&fakeStore{links: testLinks()}, search, fallback, nil)
}

func mustRedirect(t *testing.T, out Outcome) Redirect {
	t.Helper()
	r, ok := out.(Redirect)
	if !ok {
		t.Fatalf("outcome = %T (%+v), want Redirect", out, out)
	}
	return r
}

func mustSuggestions(t *testing.T, out Outcome) Suggestions {
	t.Helper()
	s, ok := out.(Suggestions)
	if !ok {
		t.Fatalf("outcome = %T (%+v), want Suggestions", out, out)
	}
	return s
}

func TestResolve_ExactMatchIsCaseInsensitive(t *testing.T) {
	r := newTestResolver(nil, "")
	for _, input := range []string{"gh", "GH", "Gh"} {
		out, err := r.Resolve(context.Background(), input)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", input, err)
		}
		if got := mustRedirect(t, out).URL; got != "https://github.com" {
			t.Errorf("Resolve(%q) = %q, want github", input, got)
		}
	}
}

func TestResolve_UnknownKeywordReturnsSuggestions(t *testing.T) {
	r := newTestResolver(nil, "")
	out, err := r.Resolve(context.Background(), "nosuchkeyword")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	s := mustSuggestions(t, out)
	if s.Items == nil {
		t.Error("Suggestions.Items is nil, want empty slice")
	}
}

func TestResolve_SuggestionOrdering(t *testing.T) {
	// Keyword-substring matches precede title/url-only matches, shorter
	// keywords first, then case-insensitive lexicographic order.
	links := []*model.Link{
		{Keyword: "github-enterprise", URL: "https://ghe.internal"},
		{Keyword: "git", Title: "Git SCM", URL: "https://git-scm.com"},
		{Keyword: "docs", Title: "Git docs", URL: "https://git-scm.com/docs"},
		{Keyword: "gitlab", URL: "https://gitlab.com"},
	}
	ranked := rankSuggestions(links, "git")
	want := []string{"git", "gitlab", "github-enterprise", "docs"}
	for i, w := range want {
		if ranked[i].Keyword != w {
			t.Fatalf("rank[%d] = %q, want %q (full order %v)", i, ranked[i].Keyword, w, keywords(ranked))
		}
	}

	r := New(&fakeStore{links: links}, nil, "", nil)
	out, err := r.Resolve(context.Background(), "git2")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	mustSuggestions(t, out)
}

func keywords(links []*model.Link) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.Keyword
	}
	return out
}

func TestResolve_QueryTemplate(t *testing.T) {
	r := newTestResolver(nil, "")
	out, err := r.Resolve(context.Background(), "search cats dogs")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := mustRedirect(t, out).URL; got != "https://example.com/search?q=cats%20dogs" {
		t.Errorf("Resolve(search cats dogs) = %q", got)
	}
}

func TestResolve_PositionalTemplate(t *testing.T) {
	r := newTestResolver(nil, "")

	out, err := r.Resolve(context.Background(), "maps ab cd")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := mustRedirect(t, out).URL; got != "https://maps.example.com/ab/cd" {
		t.Errorf("Resolve(maps ab cd) = %q", got)
	}

	// Missing positional words collapse to empty.
	out, err = r.Resolve(context.Background(), "maps ab")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := mustRedirect(t, out).URL; got != "https://maps.example.com/ab/" {
		t.Errorf("Resolve(maps ab) = %q", got)
	}
}

func TestResolve_SearchBang(t *testing.T) {
	search := &fakeTemplateSource{pattern: "https://stackoverflow.com/search?q={searchTerms}"}
	r := newTestResolver(search, "")

	out, err := r.Resolve(context.Background(), "!so missing index")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := mustRedirect(t, out).URL; got != "https://stackoverflow.com/search?q=missing%20index" {
		t.Errorf("Resolve(!so missing index) = %q", got)
	}
	if search.calls != 1 {
		t.Errorf("template source called %d times, want 1", search.calls)
	}
}

func TestResolve_SearchBangFallsBackOnCacheMiss(t *testing.T) {
	search := &fakeTemplateSource{miss: true}
	r := newTestResolver(search, "")

	out, err := r.Resolve(context.Background(), "!so widgets")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := mustRedirect(t, out).URL; got != "https://stackoverflow.com" {
		t.Errorf("Resolve(!so widgets) = %q, want plain stored URL", got)
	}
}

func TestResolve_BangWithoutQueryUsesStoredURL(t *testing.T) {
	search := &fakeTemplateSource{pattern: "https://stackoverflow.com/search?q={searchTerms}"}
	r := newTestResolver(search, "")

	out, err := r.Resolve(context.Background(), "!so")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := mustRedirect(t, out).URL; got != "https://stackoverflow.com" {
		t.Errorf("Resolve(!so) = %q, want plain stored URL", got)
	}
	if search.calls != 0 {
		t.Errorf("template source called %d times for empty terms, want 0", search.calls)
	}
}

func TestResolve_BangOnSearchDisabledLink(t *testing.T) {
	search := &fakeTemplateSource{pattern: "https://github.com/search?q={searchTerms}"}
	r := newTestResolver(search, "")

	out, err := r.Resolve(context.Background(), "!gh tokens")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := mustRedirect(t, out).URL; got != "https://github.com" {
		t.Errorf("Resolve(!gh tokens) = %q, want stored URL", got)
	}
	if search.calls != 0 {
		t.Errorf("template source consulted for search-disabled link")
	}
}

func TestResolve_FallbackURL(t *testing.T) {
	r := newTestResolver(nil, "https://duckduckgo.com/?q={q}")
	out, err := r.Resolve(context.Background(), "nosuchkeyword cats")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	s := mustSuggestions(t, out)
	if s.FallbackURL != "https://duckduckgo.com/?q=nosuchkeyword%20cats" {
		t.Errorf("FallbackURL = %q", s.FallbackURL)
	}
}

func TestResolve_EmptyInput(t *testing.T) {
	r := newTestResolver(nil, "")
	out, err := r.Resolve(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	s := mustSuggestions(t, out)
	if len(s.Items) != 0 {
		t.Errorf("Resolve(blank) returned %d suggestions, want 0", len(s.Items))
	}
}

func TestSanitizeQuery(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"  gh  ", "gh"},
		{`"gh issues"`, "gh issues"},
		{"'maps ab'", "maps ab"},
		{"gh,", "gh"},
		{"gh issues!?", "gh issues"},
		{"", ""},
	} {
		if got := SanitizeQuery(tc.in); got != tc.want {
			t.Errorf("SanitizeQuery(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSplitQuery(t *testing.T) {
	keyword, rest, words := SplitQuery("gh issues open")
	if keyword != "gh" || rest != "issues open" || len(words) != 2 {
		t.Errorf("SplitQuery = (%q, %q, %v)", keyword, rest, words)
	}

	keyword, rest, words = SplitQuery("gh")
	if keyword != "gh" || rest != "" || len(words) != 0 {
		t.Errorf("SplitQuery(gh) = (%q, %q, %v)", keyword, rest, words)
	}
}

func TestParseTemplate(t *testing.T) {
	for _, tc := range []struct {
		raw  string
		kind TemplateKind
	}{
		{"https://example.com", TemplatePlain},
		{"https://example.com/search?q={q}", TemplateQuery},
		{"https://example.com/{1}/{2}", TemplatePositional},
		{"https://example.com/{1}?q={args}", TemplateQuery},
	} {
		if got := ParseTemplate(tc.raw).Kind(); got != tc.kind {
			t.Errorf("ParseTemplate(%q).Kind() = %v, want %v", tc.raw, got, tc.kind)
		}
	}
}

func TestTemplateExpand_UnknownTokenCollapses(t *testing.T) {
	tmpl := ParseTemplate("https://example.com/{q}/{bogus}")
	got := tmpl.Expand("x", "x", []string{"x"})
	if got != "https://example.com/x/" {
		t.Errorf("Expand = %q, want bogus token collapsed", got)
	}
}
