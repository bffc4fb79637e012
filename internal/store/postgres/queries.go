package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/alfredjeanlab/golink/internal/model"
	"github.com/alfredjeanlab/golink/internal/store"
)

// linkColumns is the column list used for SELECT statements on the links table.
const linkColumns = `id, keyword, title, url, search_enabled, created_at, updated_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// uniqueViolation is the PostgreSQL error code for unique constraint failures.
const uniqueViolation = "23505"

// mapConflict converts a unique-constraint failure into store.ErrConflict so
// callers can detect late keyword/URL collisions without parsing driver errors.
func mapConflict(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
		return fmt.Errorf("%w: %s", store.ErrConflict, pqErr.Detail)
	}
	return err
}

func queryCreateLink(ctx context.Context, db executor, l *model.Link) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO links (id, keyword, title, url, search_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID,
		l.Keyword,
		nullString(l.Title),
		l.URL,
		l.SearchEnabled,
		l.CreatedAt,
		l.UpdatedAt,
	)
	return mapConflict(err)
}

func queryGetLink(ctx context.Context, db executor, keyword string) (*model.Link, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+linkColumns+` FROM links WHERE lower(keyword) = lower($1)`, keyword)
	l, err := scanLink(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func queryGetLinkByURL(ctx context.Context, db executor, url string) (*model.Link, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+linkColumns+` FROM links WHERE url = $1`, url)
	l, err := scanLink(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func queryListLinks(ctx context.Context, db executor, filter model.LinkFilter) ([]*model.Link, error) {
	query := `SELECT ` + qualify(linkColumns, "l") + ` FROM links l`
	var args []any

	if filter.List != "" {
		query += `
			JOIN link_lists ll ON ll.link_id = l.id
			JOIN lists li ON li.id = ll.list_id AND li.slug = $1`
		args = append(args, filter.List)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query += fmt.Sprintf(`
			WHERE (l.keyword ILIKE $%d OR l.title ILIKE $%d OR l.url ILIKE $%d)`,
			len(args)+1, len(args)+2, len(args)+3)
		args = append(args, pattern, pattern, pattern)
	}
	query += ` ORDER BY lower(l.keyword)`
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, filter.Limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLinks(rows)
}

func queryFindLinks(ctx context.Context, db executor, text string) ([]*model.Link, error) {
	pattern := "%" + text + "%"
	rows, err := db.QueryContext(ctx, `
		SELECT `+linkColumns+` FROM links
		WHERE keyword ILIKE $1 OR title ILIKE $1 OR url ILIKE $1
		ORDER BY lower(keyword)`,
		pattern,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLinks(rows)
}

func queryUpdateLink(ctx context.Context, db executor, l *model.Link) error {
	res, err := db.ExecContext(ctx, `
		UPDATE links
		SET keyword = $2, title = $3, url = $4, search_enabled = $5, updated_at = $6
		WHERE id = $1`,
		l.ID,
		l.Keyword,
		nullString(l.Title),
		l.URL,
		l.SearchEnabled,
		l.UpdatedAt,
	)
	if err != nil {
		return mapConflict(err)
	}
	return requireRow(res, "link", l.ID)
}

func queryDeleteLink(ctx context.Context, db executor, keyword string) error {
	res, err := db.ExecContext(ctx,
		`DELETE FROM links WHERE lower(keyword) = lower($1)`, keyword)
	if err != nil {
		return err
	}
	return requireRow(res, "link", keyword)
}

func querySetSearchEnabled(ctx context.Context, db executor, keyword string, enabled bool) error {
	res, err := db.ExecContext(ctx,
		`UPDATE links SET search_enabled = $2 WHERE lower(keyword) = lower($1)`,
		keyword, enabled)
	if err != nil {
		return err
	}
	return requireRow(res, "link", keyword)
}

func queryCreateList(ctx context.Context, db executor, l *model.List) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO lists (id, slug, name, description)
		VALUES ($1, $2, $3, $4)`,
		l.ID,
		l.Slug,
		l.Name,
		nullString(l.Description),
	)
	return mapConflict(err)
}

func queryGetList(ctx context.Context, db executor, slug string) (*model.List, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, slug, name, description FROM lists WHERE slug = $1`, slug)
	l, err := scanList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func queryListLists(ctx context.Context, db executor) ([]*model.List, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, slug, name, description FROM lists ORDER BY lower(name)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []*model.List
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

func queryDeleteList(ctx context.Context, db executor, slug string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM lists WHERE slug = $1`, slug)
	if err != nil {
		return err
	}
	return requireRow(res, "list", slug)
}

func querySetLinkLists(ctx context.Context, db executor, keyword string, slugs []string) error {
	var linkID string
	err := db.QueryRowContext(ctx,
		`SELECT id FROM links WHERE lower(keyword) = lower($1)`, keyword).Scan(&linkID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("link %q not found", keyword)
	}
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx,
		`DELETE FROM link_lists WHERE link_id = $1`, linkID); err != nil {
		return err
	}

	for _, slug := range slugs {
		_, err := db.ExecContext(ctx, `
			INSERT INTO link_lists (link_id, list_id)
			SELECT $1, id FROM lists WHERE slug = $2
			ON CONFLICT DO NOTHING`,
			linkID, slug)
		if err != nil {
			return err
		}
	}
	return nil
}

func queryGetLinkLists(ctx context.Context, db executor, keyword string) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT li.slug
		FROM lists li
		JOIN link_lists ll ON ll.list_id = li.id
		JOIN links l ON l.id = ll.link_id
		WHERE lower(l.keyword) = lower($1)
		ORDER BY li.slug`,
		keyword,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

// requireRow returns a not-found error when an UPDATE/DELETE touched zero rows.
func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %q not found", kind, id)
	}
	return nil
}
