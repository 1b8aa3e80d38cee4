package http

import (
	"encoding/json"
	"net/http"

	"github.com/harborchat/gatehouse/internal/gate/service"
	"github.com/harborchat/gatehouse/pkg/cryptox"
	"github.com/harborchat/gatehouse/pkg/gatesdk"
	"github.com/harborchat/gatehouse/pkg/httpx"
)

// readInviteCode extracts and verifies the staged invite code from the
// request cookie. A missing or tampered cookie both read as "no code"; the
// MAC failure is not worth distinguishing to the client.
func readInviteCode(r *http.Request, cookieName string, key []byte) string {
	raw := httpx.ReadCookie(r, cookieName)
	if raw == "" {
		return ""
	}
	code, err := cryptox.VerifyValue(raw, key)
	if err != nil {
		return ""
	}
	return code
}

// SignUpHandler creates accounts. The invite lifecycle rides along through
// hooks: before-hooks may veto the signup entirely, after-hooks consume the
// staged invite and upgrade the fresh account's role.
type SignUpHandler struct {
	SignupService *service.SignupService
	Hooks         *service.Hooks

	CookieName string
	CookieKey  []byte
}

// ServeHTTP godoc
//
//	@Summary		Email Signup Endpoint
//	@Description	Register a new account with email and password. A staged invite cookie, when present and valid, upgrades the account role.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.SignUpRequest	true	"email, name, password"
//	@Success		201		{object}	gatesdk.SessionResponse	"token, expires_at, user_id, role"
//	@Failure		400		{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/sign-up/email [post].
func (h *SignUpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req gatesdk.SignUpRequest
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

	hc := &service.HookContext{
		Path:        r.URL.Path,
		Code:        readInviteCode(r, h.CookieName, h.CookieKey),
		ClearCookie: func() { httpx.ClearCookie(w, h.CookieName) },
	}

	if err := h.Hooks.RunBefore(ctx, hc); err != nil {
		writeServiceError(w, r, err)
		return
	}

	sess, err := h.SignupService.SignUpEmail(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// The account exists from here on; hook failures degrade, never undo.
	hc.User = sess.User
	h.Hooks.RunAfter(ctx, hc)

	httpx.WriteJSON(w, http.StatusCreated, gatesdk.SessionResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		UserID:    hc.User.ID,
		Role:      hc.User.Role,
	})
}

// SignInHandler authenticates existing email/password accounts. Plain
// sign-in is never an invite consumption point.
type SignInHandler struct {
	SignupService *service.SignupService
}

// ServeHTTP godoc
//
//	@Summary		Email Signin Endpoint
//	@Description	Authenticate with email and password.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.SignInRequest	true	"email, password"
//	@Success		200		{object}	gatesdk.SessionResponse	"token, expires_at, user_id, role"
//	@Failure		401		{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/sign-in/email [post].
func (h *SignInHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req gatesdk.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest,
			gatesdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	sess, err := h.SignupService.SignInEmail(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.SessionResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		UserID:    sess.User.ID,
		Role:      sess.User.Role,
	})
}
