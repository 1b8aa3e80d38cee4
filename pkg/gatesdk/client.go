package gatesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// SDKClient is a client for the gatehouse service. It keeps a cookie jar so
// the invite-code cookie set by the redeem endpoint is replayed on the
// subsequent signup request, exactly as a browser would.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// Token is set after a successful sign up / sign in and sent as a Bearer
	// token on authenticated calls.
	Token string
}

// NewSDKClient creates a client with a fresh cookie jar.
func NewSDKClient(baseURL string) *SDKClient {
	jar, _ := cookiejar.New(nil)
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
			// Redeem answers with a redirect on failure; the test client
			// wants to observe it, not follow it.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// postJSON sends a JSON body and decodes a JSON answer into out (when out is
// non-nil). Non-2xx responses become *APIError.
func (c *SDKClient) postJSON(ctx context.Context, path string, in, out any) error {
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), &body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Code: ErrorCodeServerError}
	var er ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err == nil && er.Error != "" {
		apiErr.Code = er.Error
		apiErr.Description = er.ErrorDescription
	}
	return apiErr
}
