// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"
	"strconv"

	"fleetride-service/internal/domain/user"
	"fleetride-service/internal/middleware"
	"fleetride-service/internal/pkg/response"
	service "fleetride-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "account created successfully", result)
}

// Login verifies credentials and issues a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "login successful", result)
}

// Profile returns a user account (self or admin)
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := targetUserID(c)
	if !ok {
		return
	}

	result, err := h.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "profile retrieved", result)
}

// UpdateProfile patches a user account (self or admin)
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := targetUserID(c)
	if !ok {
		return
	}

	var req user.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.authService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "profile updated", result)
}

// Deactivate soft-deletes a user account (self or admin)
func (h *AuthHandler) Deactivate(c *gin.Context) {
	userID, ok := targetUserID(c)
	if !ok {
		return
	}

	if err := h.authService.Deactivate(c.Request.Context(), userID); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "account deactivated", nil)
}

// targetUserID resolves the :id path param and enforces self-or-admin.
func targetUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user ID", err)
		return 0, false
	}
	if id != middleware.MustGetUserID(c) && !middleware.IsAdmin(c) {
		response.Forbidden(c, "you may only manage your own account")
		return 0, false
	}
	return id, true
}
