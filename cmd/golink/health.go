package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := linkClient.Health(context.Background())
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Println(status)
		return nil
	},
}
