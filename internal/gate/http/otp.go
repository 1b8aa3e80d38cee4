package http

import (
	"encoding/json"
	"net/http"

	"github.com/harborchat/gatehouse/internal/gate/service"
	"github.com/harborchat/gatehouse/pkg/gatesdk"
	"github.com/harborchat/gatehouse/pkg/httpx"
)

// OTPHandler covers TOTP enrollment and OTP-based sign in. In counted
// deployments a successful OTP sign in runs the after-hooks, so an existing
// account can redeem a staged invite this way.
type OTPHandler struct {
	OTPService    *service.OTPService
	SignupService *service.SignupService
	Hooks         *service.Hooks

	CookieName string
	CookieKey  []byte
}

// HandleEnroll godoc
//
//	@Summary		OTP Enrollment Endpoint
//	@Description	Provision a TOTP secret for the signed-in account. Re-enrolling replaces the previous secret.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	gatesdk.EnrollOTPResponse	"secret, provision_uri"
//	@Failure		401	{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/otp/enroll [post].
func (h *OTPHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeServiceError(w, r, service.ErrNotLoggedIn)
		return
	}

	enrollment, err := h.OTPService.Enroll(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.EnrollOTPResponse{
		Secret:       enrollment.Secret,
		ProvisionURI: enrollment.ProvisionURI,
	})
}

// HandleSignIn godoc
//
//	@Summary		OTP Signin Endpoint
//	@Description	Authenticate with a TOTP code. In counted deployments a staged invite cookie is consumed on success.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.OTPSignInRequest	true	"email, code"
//	@Success		200		{object}	gatesdk.SessionResponse		"token, expires_at, user_id, role"
//	@Failure		401		{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Router			/v1/sign-in/otp [post].
func (h *OTPHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req gatesdk.OTPSignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest,
			gatesdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	user, err := h.OTPService.SignIn(ctx, req.Email, req.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	hc := &service.HookContext{
		Path:        r.URL.Path,
		Code:        readInviteCode(r, h.CookieName, h.CookieKey),
		User:        user,
		ClearCookie: func() { httpx.ClearCookie(w, h.CookieName) },
	}
	h.Hooks.RunAfter(ctx, hc)

	sess, err := h.SignupService.IssueSession(ctx, hc.User)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.SessionResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		UserID:    hc.User.ID,
		Role:      hc.User.Role,
	})
}
