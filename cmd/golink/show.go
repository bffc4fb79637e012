package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <keyword>",
	Short: "Show a link's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		link, err := linkClient.GetLink(context.Background(), args[0])
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
