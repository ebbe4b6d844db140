package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hoanghai1803/readlist/internal/browser"
)

var opener browser.Opener = browser.NewSystemOpener()

var openCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Open a saved page in the default browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseItemID(args[0])
		if err != nil {
			return err
		}

		item, err := svc.Open(cmd.Context(), id, opener)
		if err != nil {
			return fmt.Errorf("failed to open item: %w", err)
		}
		if item == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "No item with id %d\n", id)
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Opened: %s\n", item.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
