package config

import (
	"testing"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("WORKER_CONCURRENCY", "")
	t.Setenv("JOB_QUEUE_DEPTH", "")
	t.Setenv("RATE_LIMIT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DatabaseURL != "" {
		t.Errorf("expected empty DatabaseURL, got %s", cfg.DatabaseURL)
	}
	if cfg.HTTPPort != 7171 {
		t.Errorf("expected HTTPPort 7171, got %d", cfg.HTTPPort)
	}
	if cfg.WorkerConcurrency != 4 {
		t.Errorf("expected WorkerConcurrency 4, got %d", cfg.WorkerConcurrency)
	}
	if cfg.JobQueueDepth != 64 {
		t.Errorf("expected JobQueueDepth 64, got %d", cfg.JobQueueDepth)
	}
	if cfg.RateLimit != 0 {
		t.Errorf("expected RateLimit 0, got %v", cfg.RateLimit)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/poolplane")
	t.Setenv("PORT", "8080")
	t.Setenv("WORKER_CONCURRENCY", "8")
	t.Setenv("JOB_QUEUE_DEPTH", "128")
	t.Setenv("OTEL_ENDPOINT", "localhost:4317")
	t.Setenv("RATE_LIMIT", "2.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DatabaseURL != "postgres://localhost/poolplane" {
		t.Errorf("unexpected DatabaseURL: %s", cfg.DatabaseURL)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("expected HTTPPort 8080, got %d", cfg.HTTPPort)
	}
	if cfg.WorkerConcurrency != 8 {
		t.Errorf("expected WorkerConcurrency 8, got %d", cfg.WorkerConcurrency)
	}
	if cfg.JobQueueDepth != 128 {
		t.Errorf("expected JobQueueDepth 128, got %d", cfg.JobQueueDepth)
	}
	if cfg.OTELEndpoint != "localhost:4317" {
		t.Errorf("unexpected OTELEndpoint: %s", cfg.OTELEndpoint)
	}
	if cfg.RateLimit != 2.5 {
		t.Errorf("expected RateLimit 2.5, got %v", cfg.RateLimit)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", "PORT", "not-a-port"},
		{"bad concurrency", "WORKER_CONCURRENCY", "many"},
		{"bad queue depth", "JOB_QUEUE_DEPTH", "deep"},
		{"bad rate limit", "RATE_LIMIT", "fast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
