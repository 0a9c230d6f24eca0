package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // THREADS_DATABASE_URL (required)
	HTTPAddr    string // THREADS_HTTP_ADDR (default ":8080")
	NATSURL     string // THREADS_NATS_URL (optional, empty = no events)
	AuthToken   string // THREADS_AUTH_TOKEN (optional, empty = auth disabled)

	// Archive settings
	ArchiveInterval   time.Duration // THREADS_ARCHIVE_INTERVAL (default 1h; 0 = disabled)
	ArchiveS3Bucket   string        // THREADS_ARCHIVE_S3_BUCKET (enables S3 when set)
	ArchiveS3Endpoint string        // THREADS_ARCHIVE_S3_ENDPOINT (custom endpoint for MinIO)
	ArchiveS3Region   string        // THREADS_ARCHIVE_S3_REGION (default "us-east-1")
	ArchiveS3Key      string        // THREADS_ARCHIVE_S3_KEY (default "threads/archive.jsonl")
	ArchiveGitRepo    string        // THREADS_ARCHIVE_GIT_REPO (enables git when set; path to working tree)
	ArchiveGitFile    string        // THREADS_ARCHIVE_GIT_FILE (default "threads.jsonl")
	ArchiveGitBranch  string        // THREADS_ARCHIVE_GIT_BRANCH (default "main")

	// Notification delivery hook
	NotifyCommand string        // THREADS_NOTIFY_COMMAND (optional; run once per notification)
	NotifyTimeout time.Duration // THREADS_NOTIFY_TIMEOUT (default 30s)

	// Presence
	PresenceTTL time.Duration // THREADS_PRESENCE_TTL (default 2m; viewer idle threshold)
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:       os.Getenv("THREADS_DATABASE_URL"),
		HTTPAddr:          envOrDefault("THREADS_HTTP_ADDR", ":8080"),
		NATSURL:           os.Getenv("THREADS_NATS_URL"),
		AuthToken:         os.Getenv("THREADS_AUTH_TOKEN"),
		ArchiveS3Bucket:   os.Getenv("THREADS_ARCHIVE_S3_BUCKET"),
		ArchiveS3Endpoint: os.Getenv("THREADS_ARCHIVE_S3_ENDPOINT"),
		ArchiveS3Region:   envOrDefault("THREADS_ARCHIVE_S3_REGION", "us-east-1"),
		ArchiveS3Key:      envOrDefault("THREADS_ARCHIVE_S3_KEY", "threads/archive.jsonl"),
		ArchiveGitRepo:    os.Getenv("THREADS_ARCHIVE_GIT_REPO"),
		ArchiveGitFile:    envOrDefault("THREADS_ARCHIVE_GIT_FILE", "threads.jsonl"),
		ArchiveGitBranch:  envOrDefault("THREADS_ARCHIVE_GIT_BRANCH", "main"),
		NotifyCommand:     os.Getenv("THREADS_NOTIFY_COMMAND"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("THREADS_DATABASE_URL is required")
	}

	var err error
	if c.ArchiveInterval, err = durationOrDefault("THREADS_ARCHIVE_INTERVAL", "1h"); err != nil {
		return nil, err
	}
	if c.NotifyTimeout, err = durationOrDefault("THREADS_NOTIFY_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if c.PresenceTTL, err = durationOrDefault("THREADS_PRESENCE_TTL", "2m"); err != nil {
		return nil, err
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
