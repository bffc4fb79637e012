package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/alfredjeanlab/golink/internal/ui"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <query>...",
	Short: "Resolve a query and print the redirect target or suggestions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		res, err := linkClient.Resolve(context.Background(), query)
		if err != nil {
			return fmt.Errorf("resolving: %w", err)
		}

		if jsonOutput {
			printJSON(res)
			return nil
		}

		if res.RedirectURL != "" {
			fmt.Println(res.RedirectURL)
			return nil
		}

		sug := res.Suggestions
		if len(sug.Items) == 0 {
			fmt.Println(ui.RenderMuted("no matches"))
		} else {
			for _, item := range sug.Items {
				line := ui.RenderAccent(item.Keyword) + "  " + item.URL
				if item.Title != "" {
					line += "  " + ui.RenderMuted(item.Title)
				}
				fmt.Println(line)
			}
		}
		if sug.FallbackURL != "" {
			fmt.Println(ui.RenderMuted("fallback: " + sug.FallbackURL))
		}
		return nil
	},
}
