package sync

import (
	"context"
	"fmt"
	"io"

	"github.com/alfredjeanlab/golink/internal/importer"
	"github.com/alfredjeanlab/golink/internal/model"
	"github.com/alfredjeanlab/golink/internal/store"
)

// ExportCSV writes every link from the store as CSV to w, including list
// memberships, in the same format the import endpoint accepts.
func ExportCSV(ctx context.Context, s store.Store, w io.Writer) error {
	links, err := s.ListLinks(ctx, model.LinkFilter{})
	if err != nil {
		return fmt.Errorf("list links: %w", err)
	}

	for _, l := range links {
		lists, err := s.GetLinkLists(ctx, l.Keyword)
		if err != nil {
			return fmt.Errorf("get lists for %s: %w", l.Keyword, err)
		}
		l.Lists = lists
	}

	if err := importer.FormatCSV(w, links); err != nil {
		return fmt.Errorf("format csv: %w", err)
	}
	return nil
}
