package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/hoanghai1803/readlist/internal/view"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the reading list",
	Long:    "List saved pages, optionally filtered by a search term matched against title and url",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		sortKey, _ := cmd.Flags().GetString("sort")
		asJSON, _ := cmd.Flags().GetBool("json")
		if sortKey == "" {
			sortKey = cfg.ReadingList.DefaultSort
		}

		items, err := svc.Query(cmd.Context(), query, sortKey)
		if err != nil {
			return fmt.Errorf("failed to list reading list: %w", err)
		}
		rows := view.Rows(items)

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		}

		if len(rows) == 0 {
			fmt.Fprintln(out, "Nothing saved yet.")
			return nil
		}

		faint := color.New(color.Faint).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()

		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"ID", "", "Title", "URL", "Added"})
		table.SetBorder(false)
		table.SetAutoWrapText(false)
		for _, row := range rows {
			indicator := row.Indicator
			if row.Read {
				indicator = green(indicator)
			}
			table.Append([]string{
				strconv.FormatInt(row.ID, 10),
				indicator,
				row.Title,
				faint(row.URL),
				faint(row.Added),
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("query", "q", "", "only show pages whose title or url contains this text")
	listCmd.Flags().StringP("sort", "s", "", `sort order: "date-added" or "title" (default from config)`)
	listCmd.Flags().Bool("json", false, "print rows as JSON")
}
