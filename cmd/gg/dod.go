package main

import (
	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/gauge/internal/report"
)

var dodCmd = &cobra.Command{
	Use:   "dod",
	Short: "Audit issues against their definition-of-done checklist",
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, _, err := computeReport(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(rep.DoDResults)
		}
		printTable(report.DoDTable(rep))
		return nil
	},
}
