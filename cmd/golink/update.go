package main

import (
	"context"
	"fmt"

	"github.com/alfredjeanlab/golink/internal/client"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update <keyword>",
	Short: "Update a link's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keyword := args[0]

		req := &client.UpdateLinkRequest{}
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			req.Title = &title
		}
		if cmd.Flags().Changed("url") {
			url, _ := cmd.Flags().GetString("url")
			req.URL = &url
		}
		if cmd.Flags().Changed("search") {
			search, _ := cmd.Flags().GetBool("search")
			req.SearchEnabled = &search
		}

		if req.Title == nil && req.URL == nil && req.SearchEnabled == nil && !cmd.Flags().Changed("lists") {
			return fmt.Errorf("nothing to update; pass --title, --url, --search, or --lists")
		}

		var err error
		if req.Title != nil || req.URL != nil || req.SearchEnabled != nil {
			if _, err = linkClient.UpdateLink(context.Background(), keyword, req); err != nil {
				return fmt.Errorf("updating link: %w", err)
			}
		}

		if cmd.Flags().Changed("lists") {
			lists, _ := cmd.Flags().GetStringSlice("lists")
			if _, err = linkClient.SetLinkLists(context.Background(), keyword, lists); err != nil {
				return fmt.Errorf("updating lists: %w", err)
			}
		}

		link, err := linkClient.GetLink(context.Background(), keyword)
		if err != nil {
			return fmt.Errorf("fetching link: %w", err)
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
	updateCmd.Flags().StringP("title", "t", "", "new title")
	updateCmd.Flags().StringP("url", "u", "", "new target URL")
	updateCmd.Flags().Bool("search", false, "set the search-capable flag")
	updateCmd.Flags().StringSlice("lists", nil, "replace list memberships (empty clears all)")
}
