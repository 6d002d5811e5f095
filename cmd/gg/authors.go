package main

import (
	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/gauge/internal/report"
)

var authorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "Roll up violations per assignee",
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, _, err := computeReport(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(rep.AuthorRollup)
		}
		printTable(report.AuthorTable(rep))
		return nil
	},
}
