package main

import (
	"context"
	"fmt"

	"github.com/alfredjeanlab/golink/internal/client"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List links",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		list, _ := cmd.Flags().GetString("list")
		limit, _ := cmd.Flags().GetInt("limit")

		resp, err := linkClient.ListLinks(context.Background(), &client.ListLinksRequest{
			Search: search,
			List:   list,
			Limit:  limit,
		})
		if err != nil {
			return fmt.Errorf("listing links: %w", err)
		}

		if jsonOutput {
			printJSON(resp.Links)
		} else {
			printLinkListTable(resp.Links, resp.Total)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("search", "s", "", "filter by keyword or title substring")
	listCmd.Flags().StringP("list", "l", "", "filter by list slug")
	listCmd.Flags().Int("limit", 0, "maximum number of links to return")
}
