package sync

import (
	"context"
	"sort"

	"github.com/alfredjeanlab/golink/internal/model"
	"github.com/alfredjeanlab/golink/internal/store"
)

// mockStore is an in-memory store.Store for scheduler and export tests.
type mockStore struct {
	links       map[string]*model.Link
	lists       map[string]*model.List
	memberships map[string][]string
}

func newMockStore() *mockStore {
	return &mockStore{
		links:       make(map[string]*model.Link),
		lists:       make(map[string]*model.List),
		memberships: make(map[string][]string),
	}
}

func (m *mockStore) CreateLink(_ context.Context, link *model.Link) error {
	m.links[model.FoldKeyword(link.Keyword)] = link
	return nil
}

func (m *mockStore) GetLink(_ context.Context, keyword string) (*model.Link, error) {
	return m.links[model.FoldKeyword(keyword)], nil
}

func (m *mockStore) GetLinkByURL(_ context.Context, url string) (*model.Link, error) {
	for _, l := range m.links {
		if l.URL == url {
			return l, nil
		}
	}
	return nil, nil
}

func (m *mockStore) ListLinks(_ context.Context, _ model.LinkFilter) ([]*model.Link, error) {
	var out []*model.Link
	for _, l := range m.links {
		clone := *l
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keyword < out[j].Keyword })
	return out, nil
}

func (m *mockStore) UpdateLink(_ context.Context, link *model.Link) error {
	m.links[model.FoldKeyword(link.Keyword)] = link
	return nil
}

func (m *mockStore) DeleteLink(_ context.Context, keyword string) error {
	delete(m.links, model.FoldKeyword(keyword))
	return nil
}

func (m *mockStore) FindLinks(_ context.Context, _ string) ([]*model.Link, error) {
	return m.ListLinks(context.Background(), model.LinkFilter{})
}

func (m *mockStore) SetSearchEnabled(_ context.Context, keyword string, enabled bool) error {
	if l, ok := m.links[model.FoldKeyword(keyword)]; ok {
		l.SearchEnabled = enabled
	}
	return nil
}

func (m *mockStore) CreateList(_ context.Context, list *model.List) error {
	m.lists[list.Slug] = list
	return nil
}

func (m *mockStore) GetList(_ context.Context, slug string) (*model.List, error) {
	return m.lists[slug], nil
}

func (m *mockStore) ListLists(_ context.Context) ([]*model.List, error) {
	var out []*model.List
	for _, l := range m.lists {
		out = append(out, l)
	}
	return out, nil
}

func (m *mockStore) DeleteList(_ context.Context, slug string) error {
	delete(m.lists, slug)
	return nil
}

func (m *mockStore) SetLinkLists(_ context.Context, keyword string, slugs []string) error {
	m.memberships[model.FoldKeyword(keyword)] = slugs
	return nil
}

func (m *mockStore) GetLinkLists(_ context.Context, keyword string) ([]string, error) {
	return m.memberships[model.FoldKeyword(keyword)], nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error { return nil }
