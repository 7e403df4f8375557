// Package config handles environment variable loading for ports, database strings, etc.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration values for the application.
type Config struct {
	// Database connection string. Empty means the in-memory catalog.
	DatabaseURL string

	// HTTP server port
	HTTPPort int

	// Number of refresh workers
	WorkerConcurrency int

	// Buffered capacity of the refresh task queue
	JobQueueDepth int

	// OTLP collector address for traces; empty disables tracing
	OTELEndpoint string

	// Requests per second allowed per client; 0 means unlimited
	RateLimit float64
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		HTTPPort:          7171,
		WorkerConcurrency: 4,
		JobQueueDepth:     64,
		OTELEndpoint:      os.Getenv("OTEL_ENDPOINT"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		cfg.HTTPPort = p
	}

	if concurrencyStr := os.Getenv("WORKER_CONCURRENCY"); concurrencyStr != "" {
		c, err := strconv.Atoi(concurrencyStr)
		if err != nil {
			return nil, fmt.Errorf("invalid WORKER_CONCURRENCY: %w", err)
		}
		cfg.WorkerConcurrency = c
	}

	if depthStr := os.Getenv("JOB_QUEUE_DEPTH"); depthStr != "" {
		d, err := strconv.Atoi(depthStr)
		if err != nil {
			return nil, fmt.Errorf("invalid JOB_QUEUE_DEPTH: %w", err)
		}
		cfg.JobQueueDepth = d
	}

	if limitStr := os.Getenv("RATE_LIMIT"); limitStr != "" {
		l, err := strconv.ParseFloat(limitStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT: %w", err)
		}
		cfg.RateLimit = l
	}

	return cfg, nil
}
