package handler

import (
	"net/http"
	"strings"

	"github.com/padelmixer/padelmixer-admin/internal/api/request"
	"github.com/padelmixer/padelmixer-admin/internal/api/response"
	"github.com/padelmixer/padelmixer-admin/internal/session"
)

// AuthHandler handles the sign-in endpoint
type AuthHandler struct {
	authenticator *session.TableAuthenticator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authenticator *session.TableAuthenticator) *AuthHandler {
	return &AuthHandler{authenticator: authenticator}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.Login
	if err := request.Decode(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if strings.TrimSpace(req.Identifier) == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Secret == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	s, err := h.authenticator.Authenticate(r.Context(), req)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LoginFromSession(s, h.authenticator.TokenTTL()))
}
