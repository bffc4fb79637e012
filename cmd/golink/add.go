package main

import (
	"context"
	"fmt"

	"github.com/alfredjeanlab/golink/internal/client"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <keyword> <url>",
	Short: "Add a new link",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		keyword, url := args[0], args[1]

		title, _ := cmd.Flags().GetString("title")
		lists, _ := cmd.Flags().GetStringSlice("list")
		search, _ := cmd.Flags().GetBool("search")

		req := &client.CreateLinkRequest{
			Keyword:       keyword,
			Title:         title,
			URL:           url,
			SearchEnabled: search,
			Lists:         lists,
		}

		link, err := linkClient.CreateLink(context.Background(), req)
		if err != nil {
			return fmt.Errorf("creating link: %w", err)
		}

		if jsonOutput {
			printJSON(link)
		} else {
			printLinkTable(link)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringP("title", "t", "", "human-readable title")
	addCmd.Flags().StringSliceP("list", "l", nil, "list memberships (repeatable)")
	addCmd.Flags().Bool("search", false, "mark the target as search-capable")
}
