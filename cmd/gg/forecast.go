package main

import (
	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/gauge/internal/report"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Project initiative completion from trailing velocity",
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, _, err := computeReport(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(rep.Forecasts)
		}
		printTable(report.ForecastTable(rep))
		return nil
	},
}
