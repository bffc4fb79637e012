package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <keyword>",
	Short: "Delete a link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keyword := args[0]
		if err := linkClient.DeleteLink(context.Background(), keyword); err != nil {
			return fmt.Errorf("deleting link: %w", err)
		}
		fmt.Printf("link %q deleted\n", keyword)
		return nil
	},
}
