package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/gauge/internal/report"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every report table to a directory as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, cfg, err := computeReport(cmd.Context())
		if err != nil {
			return err
		}
		if err := report.ExportCSV(exportDir, rep, cfg); err != nil {
			return err
		}
		for _, name := range report.Names() {
			fmt.Printf("wrote %s/%s.csv\n", exportDir, name)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", "export", "output directory for CSV files")
}
