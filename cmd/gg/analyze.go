package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/gauge/internal/config"
	"github.com/alfredjeanlab/gauge/internal/snapshot"
	"github.com/alfredjeanlab/gauge/internal/ui"
)

var analyzeUpload string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full pipeline and print a summary (or the full bundle with --json)",
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, _, err := computeReport(cmd.Context())
		if err != nil {
			return err
		}
		if analyzeUpload != "" {
			bucket, key, ok := snapshot.ParseS3URL(analyzeUpload)
			if !ok {
				return fmt.Errorf("invalid --upload value %q (want s3://bucket/key)", analyzeUpload)
			}
			envCfg := config.Load()
			dst, err := snapshot.NewS3Source(cmd.Context(), bucket, key, envCfg.S3Region, envCfg.S3Endpoint)
			if err != nil {
				return err
			}
			body, err := json.Marshal(rep)
			if err != nil {
				return fmt.Errorf("marshal report: %w", err)
			}
			if err := dst.Put(cmd.Context(), body); err != nil {
				return err
			}
			fmt.Printf("uploaded report to %s\n", dst.Name())
		}
		if jsonOutput {
			return printJSON(rep)
		}

		st := rep.Stats
		fmt.Printf("Issues:            %d\n", st.TotalIssues)
		fmt.Printf("Compliant:         %d (%s%%)\n", st.CompliantIssues, ui.RenderScore(st.ComplianceRate, 40, 70))
		fmt.Printf("Severity buckets:  %d %s / %d %s / %d %s\n",
			st.SeverityBuckets.High, ui.RenderSeverity("high"),
			st.SeverityBuckets.Medium, ui.RenderSeverity("medium"),
			st.SeverityBuckets.Low, ui.RenderSeverity("low"))
		fmt.Printf("Stale:             %d (%d critical, %d warning)\n",
			st.Stale.Total, st.Stale.Critical, st.Stale.Warning)
		fmt.Printf("Initiatives:       %d\n", len(rep.Initiatives))
		fmt.Printf("Teams:             %d\n", len(rep.Teams))
		fmt.Printf("Dependency edges:  %d\n", len(rep.Dependencies))
		fmt.Printf("Blocking roots:    %d\n", len(rep.BlockingRoots))
		fmt.Printf("Forecasts:         %d\n", len(rep.Forecasts))
		if len(rep.ShapeErrors) > 0 {
			fmt.Printf("Shape errors:      %d\n", len(rep.ShapeErrors))
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeUpload, "upload", "", "upload the full report JSON to s3://bucket/key")
}

