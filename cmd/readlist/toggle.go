package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Mark a page read, or unread again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseItemID(args[0])
		if err != nil {
			return err
		}

		item, err := svc.ToggleRead(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}
		if item == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "No item with id %d\n", id)
			return nil
		}

		state := "unread"
		if item.Read {
			state = "read"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Marked as %s: %s\n", state, item.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
