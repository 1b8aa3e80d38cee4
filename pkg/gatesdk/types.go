package gatesdk

import "time"

// ErrorResponse is the JSON error body every non-2xx response carries.
type ErrorResponse struct {
	// Error is the machine-readable code (e.g. "INVALID_OR_EXPIRED_INVITE").
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error.
	ErrorDescription string `json:"error_description,omitempty"`
}

// CreateInviteRequest is the body for POST /v1/invites/create.
type CreateInviteRequest struct {
	// MaxUses overrides the configured per-invite use cap. Only honored when
	// the service runs in counted mode; zero means "use the configured default".
	MaxUses int `json:"max_uses,omitempty"`
}

// InviteResponse is returned from invite creation.
type InviteResponse struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	MaxUses   int       `json:"max_uses,omitempty"`
}

// RedeemInviteRequest is the body for POST /v1/invites/redeem and
// /v1/invites/activate.
type RedeemInviteRequest struct {
	Code string `json:"code"`
}

// SignUpRequest is the body for POST /v1/sign-up/email.
type SignUpRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// SignInRequest is the body for POST /v1/sign-in/email.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OTPSignInRequest is the body for POST /v1/sign-in/otp.
type OTPSignInRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// SessionResponse is returned from every endpoint that signs a user in.
type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
}

// EnrollOTPResponse is returned from POST /v1/otp/enroll.
type EnrollOTPResponse struct {
	Secret       string `json:"secret"`
	ProvisionURI string `json:"provision_uri"`
}

// BootstrapRequest is the body for POST /v1/bootstrap.
type BootstrapRequest struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// UserResponse describes an account in API responses.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// HealthResponse is returned from /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version,omitempty"`
	Uptime  string        `json:"uptime,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks carries per-dependency readiness detail.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
