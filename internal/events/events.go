package events

import (
	"context"

	"github.com/alfredjeanlab/golink/internal/model"
)

// Event topic constants
const (
	TopicLinkCreated = "golink.link.created"
	TopicLinkUpdated = "golink.link.updated"
	TopicLinkDeleted = "golink.link.deleted"

	TopicListCreated = "golink.list.created"
	TopicListDeleted = "golink.list.deleted"

	TopicImportCompleted = "golink.import.completed"
)

// Event types

type LinkCreated struct {
	Link *model.Link `json:"link"`
}

type LinkUpdated struct {
	Link    *model.Link    `json:"link"`
	Changes map[string]any `json:"changes"` // field name -> new value
}

type LinkDeleted struct {
	Keyword string `json:"keyword"`
}

type ListCreated struct {
	List *model.List `json:"list"`
}

type ListDeleted struct {
	Slug string `json:"slug"`
}

type ImportCompleted struct {
	Created  int `json:"created"`
	Updated  int `json:"updated"`
	Deleted  int `json:"deleted"`
	Rejected int `json:"rejected"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
