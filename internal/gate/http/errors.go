package http

import (
	"errors"
	"net/http"

	"github.com/harborchat/gatehouse/internal/gate/service"
	"github.com/harborchat/gatehouse/pkg/gatesdk"
	"github.com/harborchat/gatehouse/pkg/httpx"
	"github.com/harborchat/gatehouse/pkg/slogx"
)

// writeServiceError maps service errors onto the wire taxonomy. NotFound and
// Expired deliberately collapse into one code so callers cannot probe which
// codes ever existed.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotLoggedIn):
		writeError(w, http.StatusBadRequest,
			gatesdk.ErrorCodeNotLoggedIn, "You must be logged in to do this")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusBadRequest,
			gatesdk.ErrorCodeUserNotFound, "User not found")
	case errors.Is(err, service.ErrInsufficientPermissions):
		writeError(w, http.StatusBadRequest,
			gatesdk.ErrorCodeInsufficientPermissions, "You are not allowed to create invites")
	case errors.Is(err, service.ErrInviteNotFound), errors.Is(err, service.ErrInviteExpired):
		writeError(w, http.StatusBadRequest,
			gatesdk.ErrorCodeInvalidOrExpiredInvite, "Invite code is invalid or expired")
	case errors.Is(err, service.ErrInviteExhausted):
		writeError(w, http.StatusBadRequest,
			gatesdk.ErrorCodeNoUsesLeft, "No uses left for invite code")
	case errors.Is(err, service.ErrSignupRequiresInvite):
		writeError(w, http.StatusBadRequest,
			gatesdk.ErrorCodeSignupRequiresInvite, "Signup requires a valid invite")
	case errors.Is(err, service.ErrEmailAlreadyTaken):
		writeError(w, http.StatusBadRequest,
			gatesdk.ErrorCodeEmailAlreadyTaken, "Email is already taken")
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidOTP),
		errors.Is(err, service.ErrOTPNotEnrolled):
		writeError(w, http.StatusUnauthorized,
			gatesdk.ErrorCodeInvalidCredentials, "Invalid credentials")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError,
			gatesdk.ErrorCodeServerError, "Internal server error")
	}
}

func writeError(w http.ResponseWriter, code int, errCode, desc string) {
	httpx.WriteJSON(w, code, gatesdk.ErrorResponse{
		Error:            errCode,
		ErrorDescription: desc,
	})
}
