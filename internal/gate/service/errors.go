package service

import "errors"

// Authorization errors: surfaced to the caller as client errors, never retried.
var (
	ErrNotLoggedIn             = errors.New("not logged in")
	ErrUserNotFound            = errors.New("user not found")
	ErrInsufficientPermissions = errors.New("insufficient permissions to create invite")
)

// Validation errors: client errors on direct redeem/activate calls; absorbed
// (degraded to no-upgrade) inside the post-signup hook, where the account
// already exists and cannot be un-created.
var (
	ErrInviteNotFound   = errors.New("invite not found or expired")
	ErrInviteExpired    = errors.New("invite expired")
	ErrInviteExhausted  = errors.New("no uses left for invite code")
	ErrInviteBadRequest = errors.New("invalid invite request")
)

var (
	ErrSignupRequiresInvite  = errors.New("signup requires an invite")
	ErrEmailAlreadyTaken     = errors.New("email already taken")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrOTPNotEnrolled        = errors.New("otp not enrolled for user")
	ErrInvalidOTP            = errors.New("invalid otp code")
	ErrAlreadyBootstrapped   = errors.New("service already has users")
	ErrInvalidBootstrapToken = errors.New("invalid bootstrap token")
)
