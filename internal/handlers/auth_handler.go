package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "thimar/internal/errors"
	"thimar/internal/services"
	"thimar/internal/session"
)

// AuthHandler handles sign-in, sign-out and profile requests
type AuthHandler struct {
	authService services.AuthServicer
	session     *session.Session
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthServicer, sess *session.Session) *AuthHandler {
	return &AuthHandler{authService: authService, session: sess}
}

// LoginRequest represents the request payload for signing in
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents the request payload for creating an account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Phone    string `json:"phone" binding:"required,saudi_phone"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateProfileRequest represents the request payload for editing the profile
type UpdateProfileRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email" binding:"omitempty,email"`
	Avatar *string `json:"avatar"`
}

// ChangePasswordRequest represents the request payload for changing the password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// Login signs a user in
// @Summary     Sign in
// @Description Exchange phone and password for a session
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Credentials"
// @Success     200 {object} map[string]any "Signed-in user"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrMissingCredentials, err))
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Register creates an investor account and signs it in
// @Summary     Register
// @Description Create an investor account
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "Account details"
// @Success     201 {object} map[string]any "Created user"
// @Failure     422 {object} ErrorResponse "Phone already taken"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Name, req.Phone, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Logout signs the current user out
// @Summary     Sign out
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]any "Signed out"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "تم تسجيل الخروج"})
}

// Me returns the current user's profile
// @Summary     Current user
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]any "Current user"
// @Failure     401 {object} ErrorResponse "Not signed in"
// @Router      /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.CurrentUser(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile edits the current user's profile
// @Summary     Update profile
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateProfileRequest true "Profile fields"
// @Success     200 {object} map[string]any "Updated user"
// @Router      /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), services.ProfileUpdate{
		Name:   req.Name,
		Email:  req.Email,
		Avatar: req.Avatar,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ChangePassword changes the current user's password
// @Summary     Change password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ChangePasswordRequest true "Passwords"
// @Success     200 {object} map[string]any "Password changed"
// @Failure     401 {object} ErrorResponse "Wrong current password"
// @Router      /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), req.CurrentPassword, req.NewPassword); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "تم تغيير كلمة المرور"})
}
