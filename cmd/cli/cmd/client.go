package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"poolplane/pkg/api"
)

// PoolClient handles API calls to the poolplane server.
type PoolClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewPoolClient creates a new client with the given base URL.
func NewPoolClient(baseURL string) *PoolClient {
	return &PoolClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError represents an error response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

func productQuery(productIDs []string) string {
	q := url.Values{}
	for _, id := range productIDs {
		q.Add("product", id)
	}
	return q.Encode()
}

// GetOwnersWithProducts sends GET /products/owners to resolve the owners
// whose catalogs contain any of the given product ids.
func (c *PoolClient) GetOwnersWithProducts(productIDs []string) ([]api.OwnerResponse, error) {
	endpoint := fmt.Sprintf("%s/products/owners?%s", c.BaseURL, productQuery(productIDs))
	httpReq, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Add("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	var result []api.OwnerResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return result, nil
}

// RefreshPools sends PUT /products/subscriptions to dispatch refresh jobs
// for every owner affected by the given product ids.
func (c *PoolClient) RefreshPools(productIDs []string) ([]api.RefreshJobResponse, error) {
	endpoint := fmt.Sprintf("%s/products/subscriptions?%s", c.BaseURL, productQuery(productIDs))
	httpReq, err := http.NewRequest(http.MethodPut, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Add("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	var result []api.RefreshJobResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return result, nil
}

// GetJob sends GET /jobs/{id} to retrieve a refresh job's status.
func (c *PoolClient) GetJob(jobID string) (*api.JobStatusResponse, error) {
	httpReq, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/jobs/%s", c.BaseURL, jobID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Add("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	var result api.JobStatusResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &result, nil
}
