package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import links from a CSV file (reads stdin when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		sum, err := linkClient.Import(context.Background(), in)
		if err != nil {
			return fmt.Errorf("importing: %w", err)
		}

		if jsonOutput {
			printJSON(sum)
		} else {
			printImportSummary(sum)
		}
		return nil
	},
}
