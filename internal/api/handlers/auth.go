package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/baharkarakas/contact-manager/internal/api/httpx"
	"github.com/baharkarakas/contact-manager/internal/auth"
)

type AuthHandler struct {
	TM           *auth.TokenManager
	Username     string
	PasswordHash string
}

func NewAuthHandler(tm *auth.TokenManager, username, passwordHash string) *AuthHandler {
	return &AuthHandler{TM: tm, Username: username, PasswordHash: passwordHash}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResp struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds until the access token expires
}

// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.Username)) == 1
	// bcrypt runs even when the username already mismatched
	passErr := auth.VerifyPassword(req.Password, h.PasswordHash)
	if !userOK || passErr != nil {
		httpx.WriteMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	h.issue(w, h.Username)
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

// POST /api/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := httpx.DecodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		httpx.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	claims, err := h.TM.ParseRefresh(req.RefreshToken)
	if err != nil || claims.Role != auth.RoleAdmin {
		httpx.WriteMessage(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	h.issue(w, claims.Subject)
}

func (h *AuthHandler) issue(w http.ResponseWriter, subject string) {
	pair, err := h.TM.GeneratePair(subject, auth.RoleAdmin)
	if err != nil {
		httpx.WriteServerError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResp{
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
		ExpiresIn:    int64(time.Until(pair.AccessExp).Truncate(time.Second) / time.Second),
	})
}
