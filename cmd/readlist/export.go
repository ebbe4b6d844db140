package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hoanghai1803/readlist/internal/readinglist"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the whole reading list as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		var w io.Writer = cmd.OutOrStdout()
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			w = f
		}

		if err := svc.Export(cmd.Context(), w, format); err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("format", "f", readinglist.FormatJSON, `output format: "json" or "yaml"`)
	exportCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
}
