package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hoanghai1803/readlist/internal/browser"
)

var addPageCmd = &cobra.Command{
	Use:   "add-page <url>",
	Short: "Add a page, looking up its title",
	Long:  "Add the page at url to the reading list. Unless --title is given, the title is read from the page itself; if the page cannot be fetched the url is used.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")

		src := browser.TitleResolver{
			Source:  browser.StaticTab{Title: title, URL: args[0]},
			Fetcher: fetcher,
		}
		item, err := svc.AddCurrentPage(cmd.Context(), src)
		if err != nil {
			return fmt.Errorf("failed to add page: %w", err)
		}
		if item == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing added: url is required")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added %d: %s\n", item.ID, item.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addPageCmd)

	addPageCmd.Flags().StringP("title", "t", "", "use this title instead of fetching it")
}
