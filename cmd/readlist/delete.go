package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a page from the reading list",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseItemID(args[0])
		if err != nil {
			return err
		}

		removed, err := svc.Delete(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to delete item: %w", err)
		}
		if !removed {
			fmt.Fprintf(cmd.OutOrStdout(), "No item with id %d\n", id)
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
