// Package client provides a transport-agnostic interface for the golink
// service and an HTTP/JSON implementation that talks to the golink REST API.
package client

import (
	"context"
	"io"

	"github.com/alfredjeanlab/golink/internal/importer"
	"github.com/alfredjeanlab/golink/internal/model"
	"github.com/alfredjeanlab/golink/internal/resolver"
)

// LinkClient is the interface that all golink CLI commands use to communicate
// with the server. It is implemented by HTTPClient (default) and can be
// backed by any transport.
type LinkClient interface {
	// Resolution
	Resolve(ctx context.Context, query string) (*ResolveResult, error)

	// Link CRUD
	CreateLink(ctx context.Context, req *CreateLinkRequest) (*model.Link, error)
	GetLink(ctx context.Context, keyword string) (*model.Link, error)
	ListLinks(ctx context.Context, req *ListLinksRequest) (*ListLinksResponse, error)
	UpdateLink(ctx context.Context, keyword string, req *UpdateLinkRequest) (*model.Link, error)
	DeleteLink(ctx context.Context, keyword string) error
	SetLinkLists(ctx context.Context, keyword string, lists []string) (*model.Link, error)
	RefreshSearch(ctx context.Context, keyword string) (bool, error)

	// Lists
	ListLists(ctx context.Context) ([]*model.List, error)
	GetList(ctx context.Context, slug string) (*ListDetail, error)
	DeleteList(ctx context.Context, slug string) error

	// Bulk
	Import(ctx context.Context, csv io.Reader) (*importer.Summary, error)
	Export(ctx context.Context, w io.Writer) error

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// ResolveResult is the outcome of a resolution request: either a redirect
// target or a suggestion list.
type ResolveResult struct {
	// RedirectURL is set when the query matched a keyword.
	RedirectURL string
	// Suggestions is set when it did not.
	Suggestions *resolver.Suggestions
}

// CreateLinkRequest holds parameters for creating a link.
type CreateLinkRequest struct {
	Keyword       string   `json:"keyword"`
	Title         string   `json:"title,omitempty"`
	URL           string   `json:"url"`
	SearchEnabled bool     `json:"search_enabled,omitempty"`
	Lists         []string `json:"lists,omitempty"`
}

// ListLinksRequest holds parameters for listing links.
type ListLinksRequest struct {
	Search string `json:"search,omitempty"`
	List   string `json:"list,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// ListLinksResponse is the response from ListLinks.
type ListLinksResponse struct {
	Links []*model.Link `json:"links"`
	Total int           `json:"total"`
}

// UpdateLinkRequest holds optional parameters for updating a link.
// Nil pointer fields mean "don't change".
type UpdateLinkRequest struct {
	Title         *string `json:"title,omitempty"`
	URL           *string `json:"url,omitempty"`
	SearchEnabled *bool   `json:"search_enabled,omitempty"`
}

// ListDetail is a list plus its member links.
type ListDetail struct {
	List  *model.List   `json:"list"`
	Links []*model.Link `json:"links"`
}
