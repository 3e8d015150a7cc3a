package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"weighbridge-backend/internal/cache"
	"weighbridge-backend/internal/middleware"
	"weighbridge-backend/internal/models"
	"weighbridge-backend/internal/services"
	"weighbridge-backend/pkg/utils"
)

// LoginLogger records sign-in attempts and sign-outs
type LoginLogger interface {
	CreateLoginLog(ctx context.Context, l *models.LoginLog) (int, error)
	UpdateLogoutTime(ctx context.Context, userID int) error
}

type AuthHandler struct {
	Service      *services.UserService
	LoginLogRepo LoginLogger
}

func NewAuthHandler(s *services.UserService, loginLogRepo LoginLogger) *AuthHandler {
	return &AuthHandler{
		Service:      s,
		LoginLogRepo: loginLogRepo,
	}
}

// authErrorResponse is the body of a failed sign-in
type authErrorResponse struct {
	Code    services.AuthErrorCode `json:"code"`
	Message string                 `json:"message"`
}

func authErrorStatus(code services.AuthErrorCode) int {
	if code == services.AuthInvalidEmail {
		return http.StatusBadRequest
	}
	return http.StatusUnauthorized
}

// Signup handles user registration
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	authResp, err := h.Service.Signup(r.Context(), &req)
	if err != nil {
		var authErr *services.AuthError
		if errors.As(err, &authErr) {
			utils.JSON(w, http.StatusBadRequest, authErrorResponse{Code: authErr.Code, Message: authErr.Error()})
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	utils.JSON(w, http.StatusCreated, authResp)
}

// Login handles user authentication. Failures answer with a classified, localized message.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entry := &models.LoginLog{
		Email:     strings.TrimSpace(req.Email),
		IPAddress: getIPAddress(r),
		UserAgent: r.UserAgent(),
	}

	authResp, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		authErr := services.ClassifyAuthError(err)
		entry.ErrorCode = string(authErr.Code)
		h.recordLogin(r.Context(), entry)
		if authErr.Code == services.AuthOther {
			log.Printf("[Auth] Login failed for %s: %v", entry.Email, err)
		}
		utils.JSON(w, authErrorStatus(authErr.Code), authErrorResponse{Code: authErr.Code, Message: authErr.Error()})
		return
	}

	entry.UserID = &authResp.User.ID
	entry.Success = true
	h.recordLogin(r.Context(), entry)

	utils.JSON(w, http.StatusOK, authResp)
}

func (h *AuthHandler) recordLogin(ctx context.Context, entry *models.LoginLog) {
	if h.LoginLogRepo == nil {
		return
	}
	if _, err := h.LoginLogRepo.CreateLoginLog(ctx, entry); err != nil {
		log.Printf("[Auth] Failed to record login: %v", err)
	}
}

// Logout revokes the presented token and closes the user's open login record
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if tokenID, expires := middleware.GetTokenFromContext(r.Context()); tokenID != "" {
		cache.RevokeToken(r.Context(), tokenID, time.Until(expires))
	}
	if h.LoginLogRepo != nil {
		if err := h.LoginLogRepo.UpdateLogoutTime(r.Context(), userID); err != nil {
			log.Printf("[Auth] Failed to record logout for user %d: %v", userID, err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me returns the signed-in user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.Service.GetUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	utils.JSON(w, http.StatusOK, user)
}

// getIPAddress extracts the real IP address from the request
func getIPAddress(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs, take the first one
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		ips := strings.Split(forwarded, ",")
		return strings.TrimSpace(ips[0])
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	return r.RemoteAddr
}
