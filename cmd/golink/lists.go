package main

import (
	"context"
	"fmt"

	"github.com/alfredjeanlab/golink/internal/ui"
	"github.com/spf13/cobra"
)

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Manage lists",
	RunE: func(cmd *cobra.Command, args []string) error {
		lists, err := linkClient.ListLists(context.Background())
		if err != nil {
			return fmt.Errorf("listing lists: %w", err)
		}
		if jsonOutput {
			printJSON(lists)
		} else if len(lists) == 0 {
			fmt.Println(ui.RenderMuted("no lists"))
		} else {
			printListTable(lists)
		}
		return nil
	},
}

var listsShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a list and its member links",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		detail, err := linkClient.GetList(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("fetching list: %w", err)
		}
		if jsonOutput {
			printJSON(detail)
			return nil
		}
		fmt.Printf("Slug:        %s\n", ui.RenderAccent(detail.List.Slug))
		if detail.List.Name != "" {
			fmt.Printf("Name:        %s\n", detail.List.Name)
		}
		if detail.List.Description != "" {
			fmt.Printf("Description: %s\n", detail.List.Description)
		}
		fmt.Println()
		printLinkListTable(detail.Links, len(detail.Links))
		return nil
	},
}

var listsRmCmd = &cobra.Command{
	Use:   "rm <slug>",
	Short: "Delete a list (links keep existing, memberships are dropped)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slug := args[0]
		if err := linkClient.DeleteList(context.Background(), slug); err != nil {
			return fmt.Errorf("deleting list: %w", err)
		}
		fmt.Printf("list %q deleted\n", slug)
		return nil
	},
}

func init() {
	listsCmd.AddCommand(listsShowCmd)
	listsCmd.AddCommand(listsRmCmd)
}
