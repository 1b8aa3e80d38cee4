package gatesdk

import "fmt"

// Machine-readable error codes the service emits.
const (
	ErrorCodeInvalidRequest          = "INVALID_REQUEST"
	ErrorCodeNotLoggedIn             = "NOT_LOGGED_IN"
	ErrorCodeUserNotFound            = "USER_NOT_FOUND"
	ErrorCodeInsufficientPermissions = "INSUFFICIENT_PERMISSIONS"
	ErrorCodeInvalidOrExpiredInvite  = "INVALID_OR_EXPIRED_INVITE"
	ErrorCodeNoUsesLeft              = "NO_USES_LEFT_FOR_INVITE_CODE"
	ErrorCodeSignupRequiresInvite    = "SIGNUP_REQUIRES_INVITE"
	ErrorCodeEmailAlreadyTaken       = "EMAIL_ALREADY_TAKEN"
	ErrorCodeInvalidCredentials      = "INVALID_CREDENTIALS"
	ErrorCodeServerError             = "SERVER_ERROR"
)

// APIError represents a non-2xx response from the service.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}
