package http

import (
	"encoding/json"
	"net/http"

	"github.com/harborchat/gatehouse/internal/gate/service"
	"github.com/harborchat/gatehouse/pkg/gatesdk"
	"github.com/harborchat/gatehouse/pkg/httpx"
)

type InviteCreateHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Create Invitation Endpoint
//	@Description	Mint a fresh invite code for sharing. The caller must hold a role beyond the default signup role.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.CreateInviteRequest	false	"max_uses override (counted deployments only)"
//	@Success		201		{object}	gatesdk.InviteResponse		"code, expires_at"
//	@Failure		400		{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invites/create [post].
func (h *InviteCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// The body is optional; an empty or absent one means defaults.
	var req gatesdk.CreateInviteRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest,
				gatesdk.ErrorCodeInvalidRequest, "Invalid JSON body")
			return
		}
	}

	userID, _ := httpx.UserIDFromContext(ctx)
	invite, err := h.InviteService.CreateInvite(ctx, userID, req.MaxUses)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, gatesdk.InviteResponse{
		Code:      invite.Code,
		ExpiresAt: invite.ExpiresAt,
		MaxUses:   invite.MaxUses,
	})
}
