// Package config loads service configuration from GOLINK_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL string // GOLINK_DATABASE_URL (required)
	HTTPAddr    string // GOLINK_HTTP_ADDR (default ":8080")
	NATSURL     string // GOLINK_NATS_URL (optional, empty = no events)
	AuthToken   string // GOLINK_AUTH_TOKEN (optional, empty = auth disabled)

	// FallbackURL is a search template ({q} placeholder) rendered on the
	// suggestions page when no keyword matched; empty disables it.
	FallbackURL string // GOLINK_FALLBACK_URL

	// Descriptor cache settings
	SearchCacheSize        int           // GOLINK_SEARCH_CACHE_SIZE (default 128)
	SearchCacheTTL         time.Duration // GOLINK_SEARCH_CACHE_TTL (default 1h)
	SearchCacheNegativeTTL time.Duration // GOLINK_SEARCH_CACHE_NEGATIVE_TTL (default 5m)
	SearchFetchTimeout     time.Duration // GOLINK_SEARCH_FETCH_TIMEOUT (default 5s)

	// Sync settings
	SyncInterval   time.Duration // GOLINK_SYNC_INTERVAL (default 3m; 0 = disabled)
	SyncS3Bucket   string        // GOLINK_SYNC_S3_BUCKET (enables S3 when set)
	SyncS3Endpoint string        // GOLINK_SYNC_S3_ENDPOINT (custom endpoint for MinIO)
	SyncS3Region   string        // GOLINK_SYNC_S3_REGION (default "us-east-1")
	SyncS3Key      string        // GOLINK_SYNC_S3_KEY (default "golink/links.csv")
	SyncGitRepo    string        // GOLINK_SYNC_GIT_REPO (enables git when set; path to clone)
	SyncGitFile    string        // GOLINK_SYNC_GIT_FILE (default "links.csv")
	SyncGitBranch  string        // GOLINK_SYNC_GIT_BRANCH (default "main")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:    os.Getenv("GOLINK_DATABASE_URL"),
		HTTPAddr:       envOrDefault("GOLINK_HTTP_ADDR", ":8080"),
		NATSURL:        os.Getenv("GOLINK_NATS_URL"),
		AuthToken:      os.Getenv("GOLINK_AUTH_TOKEN"),
		FallbackURL:    os.Getenv("GOLINK_FALLBACK_URL"),
		SyncS3Bucket:   os.Getenv("GOLINK_SYNC_S3_BUCKET"),
		SyncS3Endpoint: os.Getenv("GOLINK_SYNC_S3_ENDPOINT"),
		SyncS3Region:   envOrDefault("GOLINK_SYNC_S3_REGION", "us-east-1"),
		SyncS3Key:      envOrDefault("GOLINK_SYNC_S3_KEY", "golink/links.csv"),
		SyncGitRepo:    os.Getenv("GOLINK_SYNC_GIT_REPO"),
		SyncGitFile:    envOrDefault("GOLINK_SYNC_GIT_FILE", "links.csv"),
		SyncGitBranch:  envOrDefault("GOLINK_SYNC_GIT_BRANCH", "main"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("GOLINK_DATABASE_URL is required")
	}

	size, err := envInt("GOLINK_SEARCH_CACHE_SIZE", 128)
	if err != nil {
		return nil, err
	}
	c.SearchCacheSize = size

	for _, d := range []struct {
		key      string
		fallback string
		dst      *time.Duration
	}{
		{"GOLINK_SEARCH_CACHE_TTL", "1h", &c.SearchCacheTTL},
		{"GOLINK_SEARCH_CACHE_NEGATIVE_TTL", "5m", &c.SearchCacheNegativeTTL},
		{"GOLINK_SEARCH_FETCH_TIMEOUT", "5s", &c.SearchFetchTimeout},
		{"GOLINK_SYNC_INTERVAL", "3m", &c.SyncInterval},
	} {
		v, err := time.ParseDuration(envOrDefault(d.key, d.fallback))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = v
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
