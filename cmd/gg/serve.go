package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/gauge/internal/config"
	"github.com/alfredjeanlab/gauge/internal/events"
	"github.com/alfredjeanlab/gauge/internal/rules"
	"github.com/alfredjeanlab/gauge/internal/server"
	"github.com/alfredjeanlab/gauge/internal/snapshot"
	"github.com/alfredjeanlab/gauge/internal/store"
	"github.com/alfredjeanlab/gauge/internal/store/postgres"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the report server (configured via GAUGE_* environment variables)",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
		cfg := config.Load()

		var st store.Store
		if cfg.DatabaseURL != "" {
			pg, err := postgres.New(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pg.Close()
			st = pg
			logger.Info("run archive enabled")
		}

		var pub events.Publisher = &events.NoopPublisher{}
		if cfg.NATSURL != "" {
			np, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				return fmt.Errorf("connect to nats: %w", err)
			}
			defer np.Close()
			pub = np
			logger.Info("event publishing enabled", "url", cfg.NATSURL)
		}

		ruleCfg := rules.Default()
		if cfg.RulesFile != "" {
			overrides, err := rules.LoadFile(cfg.RulesFile)
			if err != nil {
				return fmt.Errorf("load rules: %w", err)
			}
			ruleCfg = rules.Resolve(overrides)
			for _, e := range ruleCfg.Errors {
				logger.Warn("rule override rejected", "error", e.Error())
			}
		}

		srv := server.New(st, pub, ruleCfg, logger)

		if err := preloadSnapshot(cmd, cfg, srv, logger); err != nil {
			return err
		}

		logger.Info("starting report server", "addr", cfg.HTTPAddr)
		return http.ListenAndServe(cfg.HTTPAddr, srv.NewHTTPHandler(cfg.AuthToken))
	},
}

// preloadSnapshot ingests an initial snapshot from S3 or the local
// filesystem so the server does not boot empty. A failed preload aborts
// startup; a missing configuration is not an error.
func preloadSnapshot(cmd *cobra.Command, cfg *config.Config, srv *server.ReportServer, logger *slog.Logger) error {
	ctx := cmd.Context()

	var src snapshot.Source
	switch {
	case cfg.S3Bucket != "":
		s3src, err := snapshot.NewS3Source(ctx, cfg.S3Bucket, cfg.S3Key, cfg.S3Region, cfg.S3Endpoint)
		if err != nil {
			return fmt.Errorf("configure s3 source: %w", err)
		}
		src = s3src
	case cfg.SnapshotFile != "":
		src = &snapshot.FileSource{Path: cfg.SnapshotFile}
	default:
		return nil
	}

	data, err := src.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch snapshot from %s: %w", src.Name(), err)
	}
	summary, err := srv.Ingest(ctx, data, src.Name(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("ingest snapshot from %s: %w", src.Name(), err)
	}
	logger.Info("preloaded snapshot",
		"source", src.Name(),
		"run_id", summary.RunID,
		"issues", summary.IssueCount,
		"shape_errors", summary.ShapeErrorCount)
	return nil
}
