package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/gauge/internal/config"
	"github.com/alfredjeanlab/gauge/internal/engine"
	"github.com/alfredjeanlab/gauge/internal/model"
	"github.com/alfredjeanlab/gauge/internal/rules"
	"github.com/alfredjeanlab/gauge/internal/snapshot"
	"github.com/alfredjeanlab/gauge/internal/ui"
)

var (
	snapshotPath string
	rulesPath    string
	nowFlag      string
	jsonOutput   bool
	noColorFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "gg",
	Short: "Offline analytics over issue-tracker snapshots",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag || !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}
	},
}

// loadSnapshot reads the snapshot from --snapshot: a local path, an
// s3://bucket/key URL, or stdin when "-".
func loadSnapshot(ctx context.Context) (*model.Snapshot, error) {
	if snapshotPath == "" {
		return nil, fmt.Errorf("--snapshot is required (path, s3://bucket/key, or - for stdin)")
	}
	var src snapshot.Source
	switch {
	case snapshotPath == "-":
		src = &snapshot.ReaderSource{Reader: os.Stdin, Label: "stdin"}
	case strings.HasPrefix(snapshotPath, "s3://"):
		bucket, key, ok := snapshot.ParseS3URL(snapshotPath)
		if !ok {
			return nil, fmt.Errorf("invalid S3 URL %q (want s3://bucket/key)", snapshotPath)
		}
		cfg := config.Load()
		s3src, err := snapshot.NewS3Source(ctx, bucket, key, cfg.S3Region, cfg.S3Endpoint)
		if err != nil {
			return nil, err
		}
		src = s3src
	default:
		src = &snapshot.FileSource{Path: snapshotPath}
	}
	return snapshot.Load(ctx, src)
}

// loadRules resolves rule configuration from --rules; a missing flag
// yields the defaults.
func loadRules() (*rules.Effective, error) {
	if rulesPath == "" {
		return rules.Default(), nil
	}
	overrides, err := rules.LoadFile(rulesPath)
	if err != nil {
		return nil, err
	}
	eff := rules.Resolve(overrides)
	for _, e := range eff.Errors {
		fmt.Fprintf(os.Stderr, "warning: %s\n", e.Error())
	}
	return eff, nil
}

// resolveNow parses --now, defaulting to the current instant. A pinned
// clock makes runs reproducible.
func resolveNow() (time.Time, error) {
	if nowFlag == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, nowFlag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now value %q: %w", nowFlag, err)
	}
	return t.UTC(), nil
}

// computeReport runs the full pipeline for report-printing commands.
func computeReport(ctx context.Context) (*model.Report, *rules.Effective, error) {
	snap, err := loadSnapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := loadRules()
	if err != nil {
		return nil, nil, err
	}
	now, err := resolveNow()
	if err != nil {
		return nil, nil, err
	}
	for _, se := range snap.ShapeErrors {
		fmt.Fprintf(os.Stderr, "warning: malformed record skipped: %s\n", se.Error())
	}
	return engine.Compute(snap, cfg, now), cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&snapshotPath, "snapshot", "s", "", "snapshot JSON file (- for stdin)")
	rootCmd.PersistentFlags().StringVarP(&rulesPath, "rules", "r", "", "TOML rule overrides file")
	rootCmd.PersistentFlags().StringVar(&nowFlag, "now", "", "pin the clock (RFC 3339) for reproducible runs")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(complianceCmd)
	rootCmd.AddCommand(authorsCmd)
	rootCmd.AddCommand(dodCmd)
	rootCmd.AddCommand(initiativesCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(attributionCmd)
	rootCmd.AddCommand(contentionCmd)
	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
