package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alfredjeanlab/golink/internal/importer"
	"github.com/alfredjeanlab/golink/internal/model"
	"github.com/alfredjeanlab/golink/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printLinkTable(link *model.Link) {
	fmt.Printf("Keyword:        %s\n", ui.RenderAccent(link.Keyword))
	if link.Title != "" {
		fmt.Printf("Title:          %s\n", link.Title)
	}
	fmt.Printf("URL:            %s\n", link.URL)
	fmt.Printf("Search:         %s\n", enabledMarker(link.SearchEnabled))
	if len(link.Lists) > 0 {
		fmt.Printf("Lists:          %s\n", strings.Join(link.Lists, ", "))
	}
	fmt.Printf("ID:             %s\n", ui.RenderMuted(link.ID))
	if !link.CreatedAt.IsZero() {
		fmt.Printf("Created At:     %s\n", link.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if !link.UpdatedAt.IsZero() {
		fmt.Printf("Updated At:     %s\n", link.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}

func enabledMarker(enabled bool) string {
	if enabled {
		return ui.RenderOK("enabled")
	}
	return ui.RenderMuted("disabled")
}

func printLinkListTable(links []*model.Link, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEYWORD\tURL\tSEARCH\tTITLE")
	for _, l := range links {
		title := l.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		search := ""
		if l.SearchEnabled {
			search = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.Keyword, l.URL, search, title)
	}
	w.Flush()
	fmt.Printf("\n%d links (%d total)\n", len(links), total)
}

func printListTable(lists []*model.List) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tNAME\tDESCRIPTION")
	for _, l := range lists {
		fmt.Fprintf(w, "%s\t%s\t%s\n", l.Slug, l.Name, l.Description)
	}
	w.Flush()
}

func printImportSummary(sum *importer.Summary) {
	fmt.Printf("created: %d, updated: %d, deleted: %d, rejected: %d\n",
		sum.Created, sum.Updated, sum.Deleted, len(sum.Rejected))
	for _, rej := range sum.Rejected {
		fmt.Printf("  %s line %d (%s): %s\n",
			ui.RenderWarn("rejected"), rej.Row.Line, rej.Row.Keyword, rej.Reason)
	}
}
