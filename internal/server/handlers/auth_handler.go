package handlers

import (
	"encoding/json"
	"net/http"

	"resultportal/internal/auth"
	"resultportal/internal/server/util"
)

// AuthHandler serves the admin login/logout/validate endpoints.
type AuthHandler struct {
	AuthService *auth.Service
}

// LoginRequest is the JSON body for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, admin, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"token":    token,
		"username": admin.Username,
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenStr, err := util.ExtractToken(r)
	if err != nil {
		util.WriteJSONError(w, http.StatusUnauthorized, "Authorization token required")
		return
	}

	if err := h.AuthService.Logout(r.Context(), tokenStr); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Logged out",
	})
}

// ValidateToken handles GET /api/auth/validate (behind auth middleware, so
// reaching it at all means the token checked out).
func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		util.WriteJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"valid":    true,
		"username": claims.Username,
	})
}
