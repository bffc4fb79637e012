package importer

import (
	"testing"
	"time"

	"github.com/alfredjeanlab/golink/internal/model"
)

func link(keyword, url string) *model.Link {
	return &model.Link{ID: "ln-" + keyword, Keyword: keyword, URL: url}
}

func row(line int, keyword, url string) model.ImportRow {
	return model.ImportRow{Keyword: keyword, URL: url, Line: line}
}

func upsertKeywords(res Result) []string {
	out := make([]string, len(res.Upserts))
	for i, l := range res.Upserts {
		out[i] = l.Keyword
	}
	return out
}

func TestMerge_PureInserts(t *testing.T) {
	res := Merge([]model.ImportRow{
		row(2, "gh", "https://github.com"),
		row(3, "gl", "https://gitlab.com"),
	}, nil)

	if len(res.Upserts) != 2 || len(res.Rejected) != 0 || len(res.Deletes) != 0 {
		t.Fatalf("Merge = %d upserts, %d rejected, %d deletes", len(res.Upserts), len(res.Rejected), len(res.Deletes))
	}
	if got := upsertKeywords(res); got[0] != "gh" || got[1] != "gl" {
		t.Errorf("upserts = %v, want keyword order [gh gl]", got)
	}
	if res.Upserts[0].ID != "" {
		t.Errorf("insert carries ID %q, want empty", res.Upserts[0].ID)
	}
}

func TestMerge_RestatedRowsAreNoOps(t *testing.T) {
	existing := []*model.Link{link("gh", "https://github.com")}
	res := Merge([]model.ImportRow{row(2, "gh", "https://github.com")}, existing)
	if len(res.Upserts) != 0 {
		t.Errorf("restating an existing link produced %d upserts, want 0", len(res.Upserts))
	}
}

func TestMerge_UpdateByKeyword(t *testing.T) {
	existing := []*model.Link{link("gh", "https://github.com")}
	r := row(2, "gh", "https://github.com")
	r.Title = "GitHub"
	r.SearchEnabled = true

	res := Merge([]model.ImportRow{r}, existing)
	if len(res.Upserts) != 1 {
		t.Fatalf("got %d upserts, want 1", len(res.Upserts))
	}
	up := res.Upserts[0]
	if up.ID != "ln-gh" || up.Title != "GitHub" || !up.SearchEnabled {
		t.Errorf("upsert = %+v, want updated ln-gh", up)
	}
}

func TestMerge_RenameByURL(t *testing.T) {
	// Same URL under a new keyword renames the link rather than duplicating it.
	existing := []*model.Link{link("gh", "https://github.com")}
	res := Merge([]model.ImportRow{row(2, "hub", "https://github.com")}, existing)

	if len(res.Upserts) != 1 || len(res.Deletes) != 0 {
		t.Fatalf("Merge = %d upserts, %d deletes, want 1/0", len(res.Upserts), len(res.Deletes))
	}
	if up := res.Upserts[0]; up.ID != "ln-gh" || up.Keyword != "hub" {
		t.Errorf("upsert = %+v, want ln-gh renamed to hub", up)
	}
}

func TestMerge_CrossConflictNewerRowWins(t *testing.T) {
	// gh's new definition claims gl's URL: gh is rewritten, gl retired.
	existing := []*model.Link{
		link("gh", "https://github.com"),
		link("gl", "https://gitlab.com"),
	}
	r := row(2, "gh", "https://gitlab.com")
	r.Recency = time.Now()

	res := Merge([]model.ImportRow{r}, existing)
	if len(res.Upserts) != 1 {
		t.Fatalf("got %d upserts, want 1", len(res.Upserts))
	}
	if up := res.Upserts[0]; up.ID != "ln-gh" || up.URL != "https://gitlab.com" {
		t.Errorf("upsert = %+v, want ln-gh pointing at gitlab", up)
	}
	if len(res.Deletes) != 1 || res.Deletes[0] != "gl" {
		t.Errorf("deletes = %v, want [gl]", res.Deletes)
	}
	if len(res.Rejected) != 0 {
		t.Errorf("rejected = %v, want none", res.Rejected)
	}
}

func TestMerge_LaterRowInBatchWins(t *testing.T) {
	res := Merge([]model.ImportRow{
		row(2, "gh", "https://github.com"),
		row(3, "gh", "https://github.example.com"),
	}, nil)

	if len(res.Upserts) != 1 {
		t.Fatalf("got %d upserts, want 1", len(res.Upserts))
	}
	if url := res.Upserts[0].URL; url != "https://github.example.com" {
		t.Errorf("surviving url = %q, want the later row's", url)
	}
	if len(res.Rejected) != 1 || res.Rejected[0].Row.Line != 2 {
		t.Fatalf("rejected = %+v, want the superseded line 2 row", res.Rejected)
	}
}

func TestMerge_ExplicitRecencyBeatsFileOrder(t *testing.T) {
	older := row(3, "gh", "https://old.example.com")
	older.Recency = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := row(2, "gh", "https://new.example.com")
	newer.Recency = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	res := Merge([]model.ImportRow{older, newer}, nil)
	if len(res.Upserts) != 1 {
		t.Fatalf("got %d upserts, want 1", len(res.Upserts))
	}
	if url := res.Upserts[0].URL; url != "https://new.example.com" {
		t.Errorf("surviving url = %q, want the newer-timestamped row's", url)
	}
}

func TestMerge_StaleRowRejected(t *testing.T) {
	stored := link("gh", "https://github.com")
	stored.UpdatedAt = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	r := row(2, "gh", "https://old.example.com")
	r.Recency = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	res := Merge([]model.ImportRow{r}, []*model.Link{stored})
	if len(res.Upserts) != 0 {
		t.Errorf("stale row produced %d upserts, want 0", len(res.Upserts))
	}
	if len(res.Rejected) != 1 {
		t.Fatalf("rejected = %+v, want the stale row", res.Rejected)
	}
}

func TestMerge_BatchURLCollision(t *testing.T) {
	res := Merge([]model.ImportRow{
		row(2, "gh", "https://github.com"),
		row(3, "hub", "https://github.com"),
	}, nil)

	if len(res.Upserts) != 1 {
		t.Fatalf("got %d upserts, want 1", len(res.Upserts))
	}
	if kw := res.Upserts[0].Keyword; kw != "hub" {
		t.Errorf("surviving keyword = %q, want hub (later row)", kw)
	}
	if len(res.Rejected) != 1 || res.Rejected[0].Row.Line != 2 {
		t.Errorf("rejected = %+v, want line 2 superseded", res.Rejected)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	rows := []model.ImportRow{
		row(2, "gh", "https://github.com"),
		row(3, "gl", "https://gitlab.com"),
		{Keyword: "so", URL: "https://stackoverflow.com", SearchEnabled: true, Lists: []string{"dev"}, Line: 4},
	}

	first := Merge(rows, []*model.Link{link("gh", "https://github.example.com")})

	// Simulate applying the first merge, then re-import the same rows.
	var applied []*model.Link
	for _, l := range first.Upserts {
		c := *l
		if c.ID == "" {
			c.ID = "ln-" + model.FoldKeyword(c.Keyword)
		}
		applied = append(applied, &c)
	}
	second := Merge(rows, applied)

	if len(second.Upserts) != 0 || len(second.Deletes) != 0 {
		t.Errorf("second merge = %d upserts, %d deletes, want 0/0", len(second.Upserts), len(second.Deletes))
	}
}

func TestMerge_ListChangesMarkDirty(t *testing.T) {
	stored := link("gh", "https://github.com")
	stored.Lists = []string{"dev"}

	r := row(2, "gh", "https://github.com")
	r.Lists = []string{"dev", "infra"}

	res := Merge([]model.ImportRow{r}, []*model.Link{stored})
	if len(res.Upserts) != 1 {
		t.Fatalf("got %d upserts, want 1", len(res.Upserts))
	}
	if got := res.Upserts[0].Lists; len(got) != 2 {
		t.Errorf("upsert lists = %v, want [dev infra]", got)
	}
}
