// Package server exposes the link service over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/alfredjeanlab/golink/internal/events"
	"github.com/alfredjeanlab/golink/internal/idgen"
	"github.com/alfredjeanlab/golink/internal/model"
	"github.com/alfredjeanlab/golink/internal/opensearch"
	"github.com/alfredjeanlab/golink/internal/resolver"
	"github.com/alfredjeanlab/golink/internal/store"
)

// LinkServer handles link resolution and administration.
type LinkServer struct {
	store     store.Store
	publisher events.Publisher
	resolver  *resolver.Resolver
	search    *opensearch.Cache
	logger    *slog.Logger
}

// NewLinkServer returns a LinkServer backed by the given store and publisher.
// search may be nil to disable search bangs; fallbackURL may be empty to
// disable the suggestions fallback link.
func NewLinkServer(s store.Store, p events.Publisher, search *opensearch.Cache, fallbackURL string, logger *slog.Logger) *LinkServer {
	if logger == nil {
		logger = slog.Default()
	}
	var source resolver.TemplateSource
	if search != nil {
		source = search
	}
	return &LinkServer{
		store:     s,
		publisher: p,
		resolver:  resolver.New(s, source, fallbackURL, logger),
		search:    search,
		logger:    logger,
	}
}

// publish emits an event to the bus. Best-effort; failures are logged but do
// not block the caller.
func (s *LinkServer) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		s.logger.Warn("failed to publish event", "topic", topic, "error", err)
	}
}

// inputError indicates invalid user input.
// The transport layer maps this to 400.
type inputError string

func (e inputError) Error() string { return string(e) }

type createLinkInput struct {
	Keyword       string   `json:"keyword"`
	Title         string   `json:"title"`
	URL           string   `json:"url"`
	SearchEnabled bool     `json:"search_enabled"`
	Lists         []string `json:"lists"`
}

type updateLinkInput struct {
	Title         *string `json:"title"`
	URL           *string `json:"url"`
	SearchEnabled *bool   `json:"search_enabled"`
}

// createLink validates and persists a new link.
func (s *LinkServer) createLink(ctx context.Context, in createLinkInput) (*model.Link, error) {
	link := &model.Link{
		Keyword:       model.FoldKeyword(in.Keyword),
		Title:         strings.TrimSpace(in.Title),
		URL:           strings.TrimSpace(in.URL),
		SearchEnabled: in.SearchEnabled,
		Lists:         in.Lists,
	}
	if err := model.ValidateLink(link); err != nil {
		return nil, inputError(err.Error())
	}

	id, err := idgen.NewLinkID()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}
	link.ID = id

	err = s.store.RunInTransaction(ctx, func(tx store.Store) error {
		if err := tx.CreateLink(ctx, link); err != nil {
			return err
		}
		if len(link.Lists) == 0 {
			return nil
		}
		for _, slug := range link.Lists {
			if err := s.ensureList(ctx, tx, slug); err != nil {
				return err
			}
		}
		return tx.SetLinkLists(ctx, link.Keyword, link.Lists)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TopicLinkCreated, events.LinkCreated{Link: link})
	return link, nil
}

// updateLink applies a partial update to an existing link.
// It returns (nil, nil) when the keyword does not exist.
func (s *LinkServer) updateLink(ctx context.Context, keyword string, in updateLinkInput) (*model.Link, error) {
	link, err := s.store.GetLink(ctx, keyword)
	if err != nil || link == nil {
		return nil, err
	}

	changes := make(map[string]any)
	if in.Title != nil && *in.Title != link.Title {
		link.Title = strings.TrimSpace(*in.Title)
		changes["title"] = link.Title
	}
	if in.URL != nil && *in.URL != link.URL {
		link.URL = strings.TrimSpace(*in.URL)
		changes["url"] = link.URL
		// A new destination invalidates any cached descriptor probe.
		if s.search != nil {
			s.search.Forget(link.URL)
		}
	}
	if in.SearchEnabled != nil && *in.SearchEnabled != link.SearchEnabled {
		link.SearchEnabled = *in.SearchEnabled
		changes["search_enabled"] = link.SearchEnabled
	}
	if len(changes) == 0 {
		return link, nil
	}

	if err := model.ValidateLink(link); err != nil {
		return nil, inputError(err.Error())
	}
	if err := s.store.UpdateLink(ctx, link); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TopicLinkUpdated, events.LinkUpdated{Link: link, Changes: changes})
	return link, nil
}

// deleteLink removes a link. It reports whether the keyword existed.
func (s *LinkServer) deleteLink(ctx context.Context, keyword string) (bool, error) {
	link, err := s.store.GetLink(ctx, keyword)
	if err != nil {
		return false, err
	}
	if link == nil {
		return false, nil
	}
	if err := s.store.DeleteLink(ctx, keyword); err != nil {
		return false, err
	}
	s.publish(ctx, events.TopicLinkDeleted, events.LinkDeleted{Keyword: link.Keyword})
	return true, nil
}

// setLinkLists replaces a link's list memberships, creating lists as needed.
func (s *LinkServer) setLinkLists(ctx context.Context, keyword string, slugs []string) error {
	normalized := make([]string, 0, len(slugs))
	seen := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		slug = strings.ToLower(strings.TrimSpace(slug))
		if slug == "" || seen[slug] {
			continue
		}
		if err := model.ValidateList(&model.List{Slug: slug, Name: model.NameForSlug(slug)}); err != nil {
			return inputError(err.Error())
		}
		seen[slug] = true
		normalized = append(normalized, slug)
	}
	sort.Strings(normalized)

	return s.store.RunInTransaction(ctx, func(tx store.Store) error {
		for _, slug := range normalized {
			if err := s.ensureList(ctx, tx, slug); err != nil {
				return err
			}
		}
		return tx.SetLinkLists(ctx, keyword, normalized)
	})
}

// ensureList creates a list if it does not exist yet.
func (s *LinkServer) ensureList(ctx context.Context, st store.Store, slug string) error {
	existing, err := st.GetList(ctx, slug)
	if err != nil {
		return fmt.Errorf("get list %q: %w", slug, err)
	}
	if existing != nil {
		return nil
	}
	id, err := idgen.NewListID()
	if err != nil {
		return fmt.Errorf("generate id: %w", err)
	}
	list := &model.List{ID: id, Slug: slug, Name: model.NameForSlug(slug)}
	if err := st.CreateList(ctx, list); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil
		}
		return fmt.Errorf("create list %q: %w", slug, err)
	}
	s.publish(ctx, events.TopicListCreated, events.ListCreated{List: list})
	return nil
}

// refreshSearch re-probes a link's site for a search descriptor and records
// the result on the link. It returns the new search_enabled value, or
// (false, nil, nil) when the keyword does not exist.
func (s *LinkServer) refreshSearch(ctx context.Context, keyword string) (bool, *model.Link, error) {
	link, err := s.store.GetLink(ctx, keyword)
	if err != nil || link == nil {
		return false, nil, err
	}

	found := false
	if s.search != nil {
		s.search.Forget(link.URL)
		_, found = s.search.Template(ctx, link.URL)
	}

	if found != link.SearchEnabled {
		if err := s.store.SetSearchEnabled(ctx, link.Keyword, found); err != nil {
			return false, nil, err
		}
		link.SearchEnabled = found
		s.publish(ctx, events.TopicLinkUpdated, events.LinkUpdated{
			Link:    link,
			Changes: map[string]any{"search_enabled": found},
		})
	}
	return found, link, nil
}
