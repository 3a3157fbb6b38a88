package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/internlink/internship-service/internal/services"
	"github.com/internlink/internship-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// Register creates a new account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respond(c, http.StatusCreated, "Registration successful", user)
}

// Login verifies credentials, sets the session cookie and returns the
// token so API clients can use the Authorization header instead.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	SetSessionCookie(c, token, int(services.DefaultTokenTTL.Seconds()))
	h.respond(c, http.StatusOK, "Login successful", gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

// Logout clears the session cookie. The token itself stays valid until it
// expires; there is no server-side session to revoke.
func (h *AuthHandler) Logout(c *gin.Context) {
	ClearSessionCookie(c)
	h.respond(c, http.StatusOK, "Logged out", nil)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		h.respondError(c, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}
	h.respond(c, http.StatusOK, "", user)
}
