package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <feed-url>",
	Short: "Add the entries of an RSS or Atom feed",
	Long:  "Fetch an RSS or Atom feed and add every entry that is not already on the reading list. Entries without a title get the title of their page.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		tabs, err := fetcher.FetchTabs(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to fetch feed: %w", err)
		}
		tabs, err = fetcher.ResolveTitles(ctx, tabs)
		if err != nil {
			return fmt.Errorf("failed to resolve titles: %w", err)
		}

		added, err := svc.Import(ctx, tabs)
		if err != nil {
			return fmt.Errorf("failed to import feed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added %d of %d entries\n", added, len(tabs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
