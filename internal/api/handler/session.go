package handler

import (
	"net/http"

	"github.com/padelmixer/padelmixer-admin/internal/api/middleware"
	"github.com/padelmixer/padelmixer-admin/internal/api/response"
)

// Me handles GET /api/auth/me, echoing the identity carried by the bearer token
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		WriteError(w, NewInvalidRequestError("no session in request"))
		return
	}

	response.JSON(w, http.StatusOK, response.Identity{
		ID:        claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	})
}
