// Package config loads the report server's environment configuration.
package config

import "os"

type Config struct {
	HTTPAddr    string // GAUGE_HTTP_ADDR (default ":8080")
	AuthToken   string // GAUGE_AUTH_TOKEN (optional, empty = auth disabled)
	DatabaseURL string // GAUGE_DATABASE_URL (optional, empty = no run archive)
	NATSURL     string // GAUGE_NATS_URL (optional, empty = no events)
	RulesFile   string // GAUGE_RULES_FILE (optional TOML overrides)

	// Snapshot source settings
	SnapshotFile string // GAUGE_SNAPSHOT_FILE (optional, preloaded on boot)
	S3Bucket     string // GAUGE_S3_BUCKET (enables S3 when set)
	S3Key        string // GAUGE_S3_KEY (default "gauge/snapshot.json")
	S3Region     string // GAUGE_S3_REGION (default "us-east-1")
	S3Endpoint   string // GAUGE_S3_ENDPOINT (custom endpoint for MinIO)
}

func Load() *Config {
	return &Config{
		HTTPAddr:     envOrDefault("GAUGE_HTTP_ADDR", ":8080"),
		AuthToken:    os.Getenv("GAUGE_AUTH_TOKEN"),
		DatabaseURL:  os.Getenv("GAUGE_DATABASE_URL"),
		NATSURL:      os.Getenv("GAUGE_NATS_URL"),
		RulesFile:    os.Getenv("GAUGE_RULES_FILE"),
		SnapshotFile: os.Getenv("GAUGE_SNAPSHOT_FILE"),
		S3Bucket:     os.Getenv("GAUGE_S3_BUCKET"),
		S3Key:        envOrDefault("GAUGE_S3_KEY", "gauge/snapshot.json"),
		S3Region:     envOrDefault("GAUGE_S3_REGION", "us-east-1"),
		S3Endpoint:   os.Getenv("GAUGE_S3_ENDPOINT"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
