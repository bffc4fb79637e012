package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alfredjeanlab/golink/internal/idgen"
	"github.com/alfredjeanlab/golink/internal/model"
	"github.com/alfredjeanlab/golink/internal/store"
)

// Summary reports what one import run changed.
type Summary struct {
	Created  int         `json:"created"`
	Updated  int         `json:"updated"`
	Deleted  int         `json:"deleted"`
	Rejected []Rejection `json:"rejected,omitempty"`
}

// Apply merges rows against the store's current links and writes the result.
// Each row is applied independently: a store-level uniqueness violation folds
// into the rejections for that row and the rest of the batch still applies.
func Apply(ctx context.Context, st store.Store, rows []model.ImportRow, logger *slog.Logger) (Summary, error) {
	if logger == nil {
		logger = slog.Default()
	}

	existing, err := st.ListLinks(ctx, model.LinkFilter{})
	if err != nil {
		return Summary{}, fmt.Errorf("list links: %w", err)
	}

	res := Merge(rows, existing)
	sum := Summary{Rejected: res.Rejected}

	for _, keyword := range res.Deletes {
		if err := st.DeleteLink(ctx, keyword); err != nil {
			return sum, fmt.Errorf("delete link %q: %w", keyword, err)
		}
		sum.Deleted++
	}

	for _, link := range res.Upserts {
		if err := applyLink(ctx, st, link); err != nil {
			if errors.Is(err, store.ErrConflict) {
				sum.Rejected = append(sum.Rejected, Rejection{
					Row:    model.ImportRow{Keyword: link.Keyword, URL: link.URL},
					Reason: fmt.Sprintf("keyword %q: %v", link.Keyword, err),
				})
				logger.Warn("import row conflicted at write time", "keyword", link.Keyword, "err", err)
				continue
			}
			return sum, fmt.Errorf("apply link %q: %w", link.Keyword, err)
		}
		if link.ID == "" {
			sum.Created++
		} else {
			sum.Updated++
		}
	}
	return sum, nil
}

// applyLink writes one merged link and its list memberships in a transaction.
func applyLink(ctx context.Context, st store.Store, link *model.Link) error {
	return st.RunInTransaction(ctx, func(tx store.Store) error {
		if link.ID == "" {
			id, err := idgen.NewLinkID()
			if err != nil {
				return err
			}
			l := *link
			l.ID = id
			if err := tx.CreateLink(ctx, &l); err != nil {
				return err
			}
		} else if err := tx.UpdateLink(ctx, link); err != nil {
			return err
		}

		for _, slug := range link.Lists {
			if err := ensureList(ctx, tx, slug); err != nil {
				return err
			}
		}
		return tx.SetLinkLists(ctx, link.Keyword, link.Lists)
	})
}

// ensureList creates the list if it does not exist yet.
func ensureList(ctx context.Context, st store.Store, slug string) error {
	existing, err := st.GetList(ctx, slug)
	if err != nil {
		return fmt.Errorf("get list %q: %w", slug, err)
	}
	if existing != nil {
		return nil
	}
	id, err := idgen.NewListID()
	if err != nil {
		return err
	}
	err = st.CreateList(ctx, &model.List{ID: id, Slug: slug, Name: model.NameForSlug(slug)})
	if err != nil && !errors.Is(err, store.ErrConflict) {
		return fmt.Errorf("create list %q: %w", slug, err)
	}
	return nil
}
