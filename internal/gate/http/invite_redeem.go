package http

import (
	"encoding/json"
	"net/http"

	"github.com/harborchat/gatehouse/internal/gate/service"
	"github.com/harborchat/gatehouse/pkg/cryptox"
	"github.com/harborchat/gatehouse/pkg/gatesdk"
	"github.com/harborchat/gatehouse/pkg/httpx"
)

// InviteRedeemHandler stages an invite code for the signup that follows, in
// single-use deployments. The code travels to the signup request in a signed
// HttpOnly cookie whose lifetime mirrors the invite's expiry.
type InviteRedeemHandler struct {
	InviteService *service.InviteService

	CookieName string
	CookieKey  []byte
	SigninURL  string
}

// ServeHTTP godoc
//
//	@Summary		Redeem Invitation Endpoint
//	@Description	Validate an invite code and stage it in a cookie for the upcoming signup. An invalid code redirects to the sign-in page.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body	gatesdk.RedeemInviteRequest	true	"invite code"
//	@Success		204		"cookie planted"
//	@Failure		302		"redirect to sign-in with error=invalid_invite"
//	@Router			/v1/invites/redeem [post].
func (h *InviteRedeemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req gatesdk.RedeemInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		h.redirectFailure(w, r)
		return
	}

	inv, outcome, err := h.InviteService.Validate(ctx, req.Code, h.InviteService.Policy.Time())
	if err != nil || outcome != service.OutcomeValid {
		h.redirectFailure(w, r)
		return
	}

	signed := cryptox.SignValue(inv.Code, h.CookieKey)
	httpx.SetScopedCookie(w, h.CookieName, signed, inv.ExpiresAt)
	w.WriteHeader(http.StatusNoContent)
}

func (h *InviteRedeemHandler) redirectFailure(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.SigninURL+"?error=invalid_invite", http.StatusFound)
}

// InviteActivateHandler is the counted-mode counterpart to redeem: same
// cookie staging, but failures answer with a JSON error instead of a
// redirect, and exhaustion is reported distinctly.
type InviteActivateHandler struct {
	InviteService *service.InviteService

	CookieName string
	CookieKey  []byte
}

// ServeHTTP godoc
//
//	@Summary		Activate Invitation Endpoint
//	@Description	Validate an invite code and stage it in a cookie for the upcoming signup or OTP sign-in.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body	gatesdk.RedeemInviteRequest	true	"invite code"
//	@Success		204		"cookie planted"
//	@Failure		400		{object}	gatesdk.ErrorResponse	"INVALID_OR_EXPIRED_INVITE or NO_USES_LEFT_FOR_INVITE_CODE"
//	@Router			/v1/invites/activate [post].
func (h *InviteActivateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req gatesdk.RedeemInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		writeError(w, http.StatusBadRequest,
			gatesdk.ErrorCodeInvalidRequest, "code is required")
		return
	}

	inv, outcome, err := h.InviteService.Validate(ctx, req.Code, h.InviteService.Policy.Time())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if outcome != service.OutcomeValid {
		writeServiceError(w, r, outcome.Err())
		return
	}

	signed := cryptox.SignValue(inv.Code, h.CookieKey)
	httpx.SetScopedCookie(w, h.CookieName, signed, inv.ExpiresAt)
	w.WriteHeader(http.StatusNoContent)
}
