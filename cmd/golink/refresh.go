package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh <keyword>",
	Short: "Re-probe a link's site for a search descriptor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keyword := args[0]
		enabled, err := linkClient.RefreshSearch(context.Background(), keyword)
		if err != nil {
			return fmt.Errorf("refreshing search descriptor: %w", err)
		}
		fmt.Printf("%s: search %s\n", keyword, enabledMarker(enabled))
		return nil
	},
}
