package handler

import (
	"log/slog"
	"net/http"

	"github.com/yx043749/beaver-farm/internal/api/middleware"
	"github.com/yx043749/beaver-farm/internal/api/request"
	"github.com/yx043749/beaver-farm/internal/api/response"
	"github.com/yx043749/beaver-farm/internal/services/auth"
)

// AuthHandler handles account and session endpoints
type AuthHandler struct {
	authService *auth.Service
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := request.Decode(r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	if _, err := h.authService.Register(r.Context(), req.Username, req.Password); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Message{
		Success: true,
		Message: "Registration successful, please log in",
	})
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := request.Decode(r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LoginFromSession(session))
}

// AutoLogin handles POST /api/auto-login
func (h *AuthHandler) AutoLogin(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	user, err := h.authService.AutoLogin(r.Context(), username)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AutoLogin{
		Success:   true,
		Username:  user.Username,
		MaxHabits: user.MaxHabits,
	})
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	if err := h.authService.Logout(r.Context(), username); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Message{Success: true, Message: "Logged out"})
}

// LastLogin handles GET /api/last-login
func (h *AuthHandler) LastLogin(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	info, err := h.authService.LastLogin(r.Context(), username)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LastLogin{
		Success:   true,
		LastLogin: info.LastLogin,
		CreatedAt: info.CreatedAt,
	})
}
