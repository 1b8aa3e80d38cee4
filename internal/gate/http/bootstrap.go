package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harborchat/gatehouse/internal/gate/service"
	"github.com/harborchat/gatehouse/pkg/gatesdk"
	"github.com/harborchat/gatehouse/pkg/httpx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
	SignupService    *service.SignupService
}

// ServeHTTP godoc
//
//	@Summary		Bootstrap Endpoint
//	@Description	Create the first account with the shared bootstrap token. Refuses once any user exists.
//	@Tags			System
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.BootstrapRequest	true	"token, email, name, password"
//	@Success		201		{object}	gatesdk.SessionResponse		"token, expires_at, user_id, role"
//	@Failure		400		{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req gatesdk.BootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest,
			gatesdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest,
			gatesdk.ErrorCodeInvalidRequest, "email and password are required")
		return
	}

	user, err := h.BootstrapService.Bootstrap(ctx, req.Token, req.Email, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidBootstrapToken):
			writeError(w, http.StatusForbidden,
				gatesdk.ErrorCodeInvalidRequest, "Invalid bootstrap token")
		case errors.Is(err, service.ErrAlreadyBootstrapped):
			writeError(w, http.StatusForbidden,
				gatesdk.ErrorCodeInvalidRequest, "Service already has users")
		default:
			writeServiceError(w, r, err)
		}
		return
	}

	sess, err := h.SignupService.IssueSession(ctx, user)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, gatesdk.SessionResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		UserID:    user.ID,
		Role:      user.Role,
	})
}
