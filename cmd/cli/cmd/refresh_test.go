package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"poolplane/pkg/api"
)

func TestRefreshCommand_Success(t *testing.T) {
	resetViper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT method, got %s", r.Method)
		}
		if r.URL.Path != "/products/subscriptions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("product"); got != "p1" {
			t.Errorf("unexpected product query param: %s", got)
		}

		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode([]api.RefreshJobResponse{
			{
				ID:        "job-1",
				Name:      "Refresh Pools for Owner: owner-a",
				OwnerKey:  "owner-a",
				Status:    "QUEUED",
				CreatedAt: time.Now(),
			},
			{
				ID:        "job-2",
				Name:      "Refresh Pools for Owner: owner-b",
				OwnerKey:  "owner-b",
				Status:    "QUEUED",
				CreatedAt: time.Now(),
			},
		})
	}))
	defer server.Close()

	viper.Set("url", server.URL)

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"refresh", "p1"})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "Dispatched 2 refresh job(s)") {
		t.Errorf("expected dispatch summary, got: %s", output)
	}
	if !strings.Contains(output, "job-1") || !strings.Contains(output, "job-2") {
		t.Errorf("expected job ids in output, got: %s", output)
	}
	if !strings.Contains(output, "owner=owner-a") {
		t.Errorf("expected owner key in output, got: %s", output)
	}
}

func TestRefreshCommand_NoAffectedOwners(t *testing.T) {
	resetViper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode([]api.RefreshJobResponse{})
	}))
	defer server.Close()

	viper.Set("url", server.URL)

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"refresh", "nobody-has-this"})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "nothing to refresh") {
		t.Errorf("expected nothing-to-refresh message, got: %s", output)
	}
}

func TestRefreshCommand_ServerError(t *testing.T) {
	resetViper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"at least one product id is required"}`))
	}))
	defer server.Close()

	viper.Set("url", server.URL)

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"refresh", "p1"})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "Failed to dispatch refresh jobs") {
		t.Errorf("expected error message, got: %s", output)
	}
	if !strings.Contains(output, "400") {
		t.Errorf("expected status code in output, got: %s", output)
	}
}

func TestRefreshCommand_Accepts200Response(t *testing.T) {
	resetViper()

	// Older servers reply 200 instead of 202; both are success
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode([]api.RefreshJobResponse{
			{ID: "job-9", OwnerKey: "owner-a", Status: "RUNNING", CreatedAt: time.Now()},
		})
	}))
	defer server.Close()

	viper.Set("url", server.URL)

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"refresh", "p1"})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "job-9") {
		t.Errorf("expected job id in output, got: %s", output)
	}
}

func TestRefreshCommand_RequiresProductArgument(t *testing.T) {
	resetViper()

	var stderr bytes.Buffer
	rootCmd.SetOut(&stderr)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"refresh"})

	err := rootCmd.Execute()
	if err == nil {
		t.Error("expected error when no product id provided")
	}
}
