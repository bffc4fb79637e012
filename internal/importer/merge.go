package importer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alfredjeanlab/golink/internal/model"
)

// Result is the outcome of merging an import batch against the current links.
type Result struct {
	// Upserts are the links to create or update, ordered by keyword.
	Upserts []*model.Link
	// Deletes names existing keywords retired by conflict resolution: their
	// URL was claimed by a newer definition under a different keyword.
	Deletes []string
	// Rejected holds rows that were not applied, each with a reason.
	Rejected []Rejection
}

// record tracks one link in the working set during a merge.
type record struct {
	link     *model.Link
	existing bool // came from the store snapshot
	dirty    bool
	srcRow   *model.ImportRow // batch row that last defined it, nil if none
}

// Merge computes the writes needed to bring the existing links in line with
// the import rows. A row matches an existing link by case-folded keyword or by
// URL; when the two match different links the newer definition wins and the
// other link's claim is retired. Rows are applied in recency order (explicit
// timestamp first, then file order), so within a batch the later definition
// of a keyword or URL supersedes the earlier one.
//
// Merge never violates keyword or URL uniqueness in its output, and it is
// idempotent: merging the same rows against its own applied output produces
// no further upserts.
func Merge(rows []model.ImportRow, existing []*model.Link) Result {
	var res Result

	byKeyword := make(map[string]*record)
	byURL := make(map[string]*record)
	index := func(r *record) {
		byKeyword[model.FoldKeyword(r.link.Keyword)] = r
		byURL[r.link.URL] = r
	}
	unindex := func(r *record) {
		delete(byKeyword, model.FoldKeyword(r.link.Keyword))
		delete(byURL, r.link.URL)
	}
	for _, l := range existing {
		index(&record{link: cloneLink(l), existing: true})
	}

	ordered := make([]model.ImportRow, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.Recency.IsZero() && !b.Recency.IsZero() && !a.Recency.Equal(b.Recency) {
			return a.Recency.Before(b.Recency)
		}
		return a.Line < b.Line
	})

	for i := range ordered {
		row := ordered[i]
		kwRec := byKeyword[row.Keyword]
		urlRec := byURL[row.URL]

		// A timestamped row older than the stored definition it would
		// overwrite is stale, not authoritative.
		if stale(row, kwRec) || stale(row, urlRec) {
			res.Rejected = append(res.Rejected, Rejection{
				Row:    row,
				Reason: fmt.Sprintf("line %d: older than the existing definition of %q", row.Line, row.Keyword),
			})
			continue
		}

		switch {
		case kwRec == nil && urlRec == nil:
			r := &record{link: rowLink(row), srcRow: &ordered[i]}
			index(r)

		case kwRec != nil && (urlRec == nil || urlRec == kwRec):
			applyRow(&res, kwRec, row, &ordered[i], index, unindex)

		case kwRec == nil:
			// URL already claimed under another keyword: the newer
			// definition renames it.
			applyRow(&res, urlRec, row, &ordered[i], index, unindex)

		default:
			// Keyword and URL match two different links. The row is the
			// newest definition of both, so it lands on the keyword's link
			// and the other link's URL claim is retired.
			retire(&res, urlRec, row, unindex)
			applyRow(&res, kwRec, row, &ordered[i], index, unindex)
		}
	}

	for _, r := range byKeyword {
		if r.dirty || !r.existing {
			res.Upserts = append(res.Upserts, r.link)
		}
	}
	sort.Slice(res.Upserts, func(i, j int) bool {
		return model.FoldKeyword(res.Upserts[i].Keyword) < model.FoldKeyword(res.Upserts[j].Keyword)
	})
	sort.Strings(res.Deletes)
	sort.Slice(res.Rejected, func(i, j int) bool {
		return res.Rejected[i].Row.Line < res.Rejected[j].Row.Line
	})
	return res
}

// applyRow overwrites rec's definition with the row, reindexing if the
// keyword or URL changed. An identical definition leaves the record clean.
func applyRow(res *Result, rec *record, row model.ImportRow, src *model.ImportRow, index, unindex func(*record)) {
	if sameDefinition(rec.link, row) {
		rec.srcRow = src
		return
	}
	if prev := rec.srcRow; prev != nil && prev != src {
		res.Rejected = append(res.Rejected, Rejection{
			Row:    *prev,
			Reason: fmt.Sprintf("line %d: superseded by line %d", prev.Line, row.Line),
		})
	}

	unindex(rec)
	rec.link.Keyword = row.Keyword
	rec.link.Title = row.Title
	rec.link.URL = row.URL
	rec.link.SearchEnabled = row.SearchEnabled
	rec.link.Lists = append([]string(nil), row.Lists...)
	if !row.Recency.IsZero() {
		rec.link.UpdatedAt = row.Recency
	}
	rec.dirty = true
	rec.srcRow = src
	index(rec)
}

// retire removes rec from the working set because a newer definition claimed
// its URL. Stored links are scheduled for deletion; batch-only links report
// their source row as superseded.
func retire(res *Result, rec *record, row model.ImportRow, unindex func(*record)) {
	unindex(rec)
	if rec.existing {
		res.Deletes = append(res.Deletes, rec.link.Keyword)
		return
	}
	if rec.srcRow != nil {
		res.Rejected = append(res.Rejected, Rejection{
			Row:    *rec.srcRow,
			Reason: fmt.Sprintf("line %d: url superseded by line %d", rec.srcRow.Line, row.Line),
		})
	}
}

// stale reports whether a timestamped row predates the stored link it matches.
func stale(row model.ImportRow, rec *record) bool {
	if rec == nil || !rec.existing || row.Recency.IsZero() || rec.link.UpdatedAt.IsZero() {
		return false
	}
	return row.Recency.Before(rec.link.UpdatedAt)
}

// sameDefinition reports whether the row restates the link exactly.
func sameDefinition(l *model.Link, row model.ImportRow) bool {
	return model.FoldKeyword(l.Keyword) == row.Keyword &&
		l.Title == row.Title &&
		l.URL == row.URL &&
		l.SearchEnabled == row.SearchEnabled &&
		sameLists(l.Lists, row.Lists)
}

func sameLists(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if !strings.EqualFold(as[i], bs[i]) {
			return false
		}
	}
	return true
}

func rowLink(row model.ImportRow) *model.Link {
	l := &model.Link{
		Keyword:       row.Keyword,
		Title:         row.Title,
		URL:           row.URL,
		SearchEnabled: row.SearchEnabled,
		Lists:         append([]string(nil), row.Lists...),
	}
	if !row.Recency.IsZero() {
		l.UpdatedAt = row.Recency
	}
	return l
}

func cloneLink(l *model.Link) *model.Link {
	c := *l
	c.Lists = append([]string(nil), l.Lists...)
	return &c
}
