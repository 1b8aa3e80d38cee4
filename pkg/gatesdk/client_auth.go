package gatesdk

import "context"

// SignUpEmail registers an account. Any invite cookie previously staged by
// RedeemInvite or ActivateInvite rides along automatically via the jar. On
// success the session token is retained for later authenticated calls.
func (c *SDKClient) SignUpEmail(ctx context.Context, email, name, password string) (SessionResponse, error) {
	var out SessionResponse
	err := c.postJSON(ctx, "/v1/sign-up/email", SignUpRequest{
		Email:    email,
		Name:     name,
		Password: password,
	}, &out)
	if err == nil {
		c.Token = out.Token
	}
	return out, err
}

// SignInEmail authenticates with email and password.
func (c *SDKClient) SignInEmail(ctx context.Context, email, password string) (SessionResponse, error) {
	var out SessionResponse
	err := c.postJSON(ctx, "/v1/sign-in/email", SignInRequest{
		Email:    email,
		Password: password,
	}, &out)
	if err == nil {
		c.Token = out.Token
	}
	return out, err
}

// SignInOTP authenticates with a TOTP code.
func (c *SDKClient) SignInOTP(ctx context.Context, email, code string) (SessionResponse, error) {
	var out SessionResponse
	err := c.postJSON(ctx, "/v1/sign-in/otp", OTPSignInRequest{
		Email: email,
		Code:  code,
	}, &out)
	if err == nil {
		c.Token = out.Token
	}
	return out, err
}

// EnrollOTP provisions a TOTP secret for the signed-in account.
func (c *SDKClient) EnrollOTP(ctx context.Context) (EnrollOTPResponse, error) {
	var out EnrollOTPResponse
	err := c.postJSON(ctx, "/v1/otp/enroll", nil, &out)
	return out, err
}

// Bootstrap creates the very first account using the shared bootstrap token.
func (c *SDKClient) Bootstrap(ctx context.Context, token, email, name, password string) (SessionResponse, error) {
	var out SessionResponse
	err := c.postJSON(ctx, "/v1/bootstrap", BootstrapRequest{
		Token:    token,
		Email:    email,
		Name:     name,
		Password: password,
	}, &out)
	if err == nil {
		c.Token = out.Token
	}
	return out, err
}
