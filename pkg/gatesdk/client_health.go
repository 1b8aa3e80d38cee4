package gatesdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Livez reports whether the process is up.
func (c *SDKClient) Livez(ctx context.Context) (HealthResponse, error) {
	return c.getHealth(ctx, "/livez")
}

// Readyz reports whether the service can reach its dependencies.
func (c *SDKClient) Readyz(ctx context.Context) (HealthResponse, error) {
	return c.getHealth(ctx, "/readyz")
}

func (c *SDKClient) getHealth(ctx context.Context, path string) (HealthResponse, error) {
	var out HealthResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return out, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return out, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return out, &APIError{StatusCode: resp.StatusCode, Code: ErrorCodeServerError}
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}
