package store

import (
	"context"
	"errors"

	"github.com/alfredjeanlab/golink/internal/model"
)

// ErrConflict is returned when a write would violate keyword or URL uniqueness.
var ErrConflict = errors.New("keyword or url already exists")

// Store defines the persistence interface for links and lists.
type Store interface {
	// Link CRUD
	CreateLink(ctx context.Context, link *model.Link) error
	// GetLink looks up a link by case-folded keyword; (nil, nil) when absent.
	GetLink(ctx context.Context, keyword string) (*model.Link, error)
	// GetLinkByURL looks up a link by exact URL; (nil, nil) when absent.
	GetLinkByURL(ctx context.Context, url string) (*model.Link, error)
	ListLinks(ctx context.Context, filter model.LinkFilter) ([]*model.Link, error)
	UpdateLink(ctx context.Context, link *model.Link) error
	DeleteLink(ctx context.Context, keyword string) error

	// FindLinks returns links whose keyword, title, or URL contains text as a
	// case-insensitive substring. Used by the resolver's suggestion path.
	FindLinks(ctx context.Context, text string) ([]*model.Link, error)

	// SetSearchEnabled flips a link's search-bang flag, typically after a
	// descriptor probe confirmed (or failed to find) a usable template.
	SetSearchEnabled(ctx context.Context, keyword string, enabled bool) error

	// Lists
	CreateList(ctx context.Context, list *model.List) error
	GetList(ctx context.Context, slug string) (*model.List, error)
	ListLists(ctx context.Context) ([]*model.List, error)
	DeleteList(ctx context.Context, slug string) error
	SetLinkLists(ctx context.Context, keyword string, slugs []string) error
	GetLinkLists(ctx context.Context, keyword string) ([]string, error)

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}
