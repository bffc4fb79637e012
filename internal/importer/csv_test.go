package importer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alfredjeanlab/golink/internal/model"
)

const sampleCSV = `keyword,title,url,search_enabled,lists
gh,GitHub,https://github.com,true,dev tools
gl,,https://gitlab.com,false,
so,Stack Overflow,https://stackoverflow.com,yes,dev
`

func TestParseCSV(t *testing.T) {
	rows, rejected, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rejected) != 0 {
		t.Fatalf("rejected = %+v, want none", rejected)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	gh := rows[0]
	if gh.Keyword != "gh" || gh.Title != "GitHub" || !gh.SearchEnabled || gh.Line != 2 {
		t.Errorf("row 0 = %+v", gh)
	}
	if len(gh.Lists) != 2 || gh.Lists[0] != "dev" || gh.Lists[1] != "tools" {
		t.Errorf("row 0 lists = %v, want [dev tools]", gh.Lists)
	}
	if so := rows[2]; !so.SearchEnabled {
		t.Errorf("row 2 search_enabled = false, want yes parsed as true")
	}
}

func TestParseCSV_MissingHeader(t *testing.T) {
	_, _, err := ParseCSV(strings.NewReader("keyword,url\ngh,https://github.com\n"))
	if err == nil {
		t.Fatal("ParseCSV accepted a header missing required columns")
	}
}

func TestParseCSV_BadRowsRejectedNotFatal(t *testing.T) {
	in := `keyword,title,url,search_enabled,lists
gh,GitHub,https://github.com,true,
bad keyword,,https://example.com,false,
ftp,,ftp://example.com,false,
flag,,https://example.org,maybe,
gl,,https://gitlab.com,false,
`
	rows, rejected, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("got %d valid rows, want 2 (gh, gl)", len(rows))
	}
	if len(rejected) != 3 {
		t.Fatalf("rejected = %d rows, want 3: %+v", len(rejected), rejected)
	}
	for _, rej := range rejected {
		if rej.Reason == "" || rej.Row.Line == 0 {
			t.Errorf("rejection missing reason or line: %+v", rej)
		}
	}
}

func TestParseCSV_ExplicitRecency(t *testing.T) {
	in := `keyword,title,url,search_enabled,lists,updated_at
gh,,https://github.com,false,,2026-06-01T12:00:00Z
`
	rows, rejected, err := ParseCSV(strings.NewReader(in))
	if err != nil || len(rejected) != 0 || len(rows) != 1 {
		t.Fatalf("ParseCSV = %d rows, %d rejected, err %v", len(rows), len(rejected), err)
	}
	want := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	if !rows[0].Recency.Equal(want) {
		t.Errorf("Recency = %v, want %v", rows[0].Recency, want)
	}
}

func TestFormatCSV_RoundTrip(t *testing.T) {
	links := []*model.Link{
		{Keyword: "gl", URL: "https://gitlab.com"},
		{Keyword: "gh", Title: "GitHub", URL: "https://github.com", SearchEnabled: true, Lists: []string{"dev", "tools"}},
	}

	var buf bytes.Buffer
	if err := FormatCSV(&buf, links); err != nil {
		t.Fatalf("FormatCSV: %v", err)
	}

	rows, rejected, err := ParseCSV(&buf)
	if err != nil || len(rejected) != 0 {
		t.Fatalf("ParseCSV of export: %v (rejected %+v)", err, rejected)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// Export orders by keyword.
	if rows[0].Keyword != "gh" || rows[1].Keyword != "gl" {
		t.Errorf("exported order = [%s %s], want [gh gl]", rows[0].Keyword, rows[1].Keyword)
	}
	if rows[0].Title != "GitHub" || !rows[0].SearchEnabled || len(rows[0].Lists) != 2 {
		t.Errorf("gh row = %+v", rows[0])
	}

	// An exported set merges back as a no-op.
	res := Merge(rows, links)
	if len(res.Upserts) != 0 {
		t.Errorf("re-importing an export produced %d upserts, want 0", len(res.Upserts))
	}
}
