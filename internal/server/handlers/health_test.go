package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthz(t *testing.T) {
	f := newFixture(t)

	rr := httptest.NewRecorder()
	f.handlers.Healthz(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("got status %d, want 200", rr.Code)
	}
}

func TestReadyz(t *testing.T) {
	f := newFixture(t)

	// No readiness probe configured means always ready.
	rr := httptest.NewRecorder()
	f.handlers.Readyz(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("got status %d, want 200", rr.Code)
	}
}

func TestReadyzProbeFailure(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	failing := func(ctx context.Context) error { return errors.New("db down") }
	h := New(nil, nil, nil, nil, failing, log)

	rr := httptest.NewRecorder()
	h.Readyz(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("got status %d, want 503", rr.Code)
	}
}
