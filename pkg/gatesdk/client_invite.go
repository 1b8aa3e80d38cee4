package gatesdk

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// CreateInvite mints a new invite code. Requires Token to be set.
func (c *SDKClient) CreateInvite(ctx context.Context, maxUses int) (InviteResponse, error) {
	var out InviteResponse
	err := c.postJSON(ctx, "/v1/invites/create", CreateInviteRequest{MaxUses: maxUses}, &out)
	return out, err
}

// RedeemInvite stages an invite code for signup (single-use deployments).
// On success the service plants the invite cookie in the client's jar; on
// failure it answers with a redirect to the sign-in page, which is returned
// as an *APIError carrying the redirect location in Description.
func (c *SDKClient) RedeemInvite(ctx context.Context, code string) error {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.url("/v1/invites/redeem"),
		strings.NewReader(`{"code":"`+code+`"}`),
	)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusFound:
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        ErrorCodeInvalidOrExpiredInvite,
			Description: resp.Header.Get("Location"),
		}
	default:
		return decodeError(resp)
	}
}

// ActivateInvite stages an invite code for consumption (counted deployments).
func (c *SDKClient) ActivateInvite(ctx context.Context, code string) error {
	return c.postJSON(ctx, "/v1/invites/activate", RedeemInviteRequest{Code: code}, nil)
}
