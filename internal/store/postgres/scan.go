package postgres

import (
	"database/sql"
	"strings"

	"github.com/alfredjeanlab/golink/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanLink scans a single row into a model.Link.
// The row must contain columns in the order defined by linkColumns.
func scanLink(row scannable) (*model.Link, error) {
	var l model.Link
	var title sql.NullString

	err := row.Scan(
		&l.ID,
		&l.Keyword,
		&title,
		&l.URL,
		&l.SearchEnabled,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.Title = title.String
	return &l, nil
}

// scanLinks drains rows into a slice of links.
func scanLinks(rows *sql.Rows) ([]*model.Link, error) {
	var links []*model.Link
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// scanList scans a single row into a model.List.
func scanList(row scannable) (*model.List, error) {
	var l model.List
	var description sql.NullString

	err := row.Scan(
		&l.ID,
		&l.Slug,
		&l.Name,
		&description,
	)
	if err != nil {
		return nil, err
	}

	l.Description = description.String
	return &l, nil
}

// nullString maps an empty string to NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: strings.TrimSpace(s) != ""}
}

// qualify prefixes each column in a comma-separated list with a table alias.
func qualify(columns, alias string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
