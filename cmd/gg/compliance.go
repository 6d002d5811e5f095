package main

import (
	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/gauge/internal/engine"
	"github.com/alfredjeanlab/gauge/internal/report"
)

var complianceCmd = &cobra.Command{
	Use:   "compliance",
	Short: "List non-compliant issues, worst first",
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, cfg, err := computeReport(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(engine.NonCompliant(rep.ComplianceResults))
		}
		printTable(report.NonCompliantTable(rep, cfg))
		return nil
	},
}
