// Package importer parses shortcut CSV files and merges them into the
// existing link set, resolving keyword and URL collisions by recency.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/alfredjeanlab/golink/internal/model"
)

// Header is the required CSV header. An updated_at column may follow it to
// carry explicit recency; otherwise row order decides.
var Header = []string{"keyword", "title", "url", "search_enabled", "lists"}

const updatedAtColumn = "updated_at"

// listSeparator joins list slugs inside the lists cell. Slugs cannot contain
// spaces, so the split is unambiguous.
const listSeparator = " "

// Rejection records one row that was not applied, with a human-readable reason.
type Rejection struct {
	Row    model.ImportRow `json:"row"`
	Reason string          `json:"reason"`
}

// ParseCSV reads shortcut rows from r. Rows that fail validation are returned
// as rejections rather than aborting the parse; the error is reserved for an
// unreadable file or a bad header.
func ParseCSV(r io.Reader) ([]model.ImportRow, []Rejection, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}
	cols, err := headerIndex(header)
	if err != nil {
		return nil, nil, err
	}

	var rows []model.ImportRow
	var rejected []Rejection
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rejected = append(rejected, Rejection{
				Row:    model.ImportRow{Line: line},
				Reason: fmt.Sprintf("line %d: malformed csv: %v", line, err),
			})
			continue
		}

		row, err := parseRow(record, cols, line)
		if err != nil {
			rejected = append(rejected, Rejection{
				Row:    model.ImportRow{Line: line},
				Reason: fmt.Sprintf("line %d: %v", line, err),
			})
			continue
		}
		rows = append(rows, row)
	}
	return rows, rejected, nil
}

// headerIndex maps the known column names to their positions.
func headerIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range Header {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("csv header missing column %q", name)
		}
	}
	return cols, nil
}

func parseRow(record []string, cols map[string]int, line int) (model.ImportRow, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	row := model.ImportRow{
		Keyword: model.FoldKeyword(field("keyword")),
		Title:   field("title"),
		URL:     field("url"),
		Lists:   splitLists(field("lists")),
		Line:    line,
	}

	if tok := field("search_enabled"); tok != "" {
		enabled, err := parseBoolToken(tok)
		if err != nil {
			return model.ImportRow{}, err
		}
		row.SearchEnabled = enabled
	}

	if tok := field(updatedAtColumn); tok != "" {
		ts, err := time.Parse(time.RFC3339, tok)
		if err != nil {
			return model.ImportRow{}, fmt.Errorf("updated_at %q: %w", tok, err)
		}
		row.Recency = ts
	}

	if err := model.ValidateLink(&model.Link{
		Keyword:       row.Keyword,
		Title:         row.Title,
		URL:           row.URL,
		SearchEnabled: row.SearchEnabled,
	}); err != nil {
		return model.ImportRow{}, err
	}
	for _, slug := range row.Lists {
		if err := model.ValidateList(&model.List{Slug: slug, Name: model.NameForSlug(slug)}); err != nil {
			return model.ImportRow{}, fmt.Errorf("list %q: %w", slug, err)
		}
	}
	return row, nil
}

func splitLists(cell string) []string {
	if cell == "" {
		return nil
	}
	fields := strings.Fields(cell)
	seen := make(map[string]bool, len(fields))
	var out []string
	for _, f := range fields {
		slug := strings.ToLower(f)
		if !seen[slug] {
			seen[slug] = true
			out = append(out, slug)
		}
	}
	return out
}

// parseBoolToken accepts the strconv spellings plus yes/no and on/off.
func parseBoolToken(tok string) (bool, error) {
	switch strings.ToLower(tok) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("search_enabled %q is not a boolean", tok)
}

// FormatCSV writes links to w in the import format, ordered by keyword so
// repeated exports diff cleanly.
func FormatCSV(w io.Writer, links []*model.Link) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append(append([]string{}, Header...), updatedAtColumn)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	ordered := make([]*model.Link, len(links))
	copy(ordered, links)
	sort.Slice(ordered, func(i, j int) bool {
		return model.FoldKeyword(ordered[i].Keyword) < model.FoldKeyword(ordered[j].Keyword)
	})

	for _, l := range ordered {
		enabled := "false"
		if l.SearchEnabled {
			enabled = "true"
		}
		var updated string
		if !l.UpdatedAt.IsZero() {
			updated = l.UpdatedAt.UTC().Format(time.RFC3339)
		}
		record := []string{
			l.Keyword,
			l.Title,
			l.URL,
			enabled,
			strings.Join(l.Lists, listSeparator),
			updated,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %q: %w", l.Keyword, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
