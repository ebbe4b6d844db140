package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <title> <url>",
	Short: "Add a page to the reading list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := svc.Add(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to add page: %w", err)
		}
		if item == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing added: title and url are both required")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added %d: %s\n", item.ID, item.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
