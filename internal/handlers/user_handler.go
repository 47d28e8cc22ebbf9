package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"thimar/internal/models"
	"thimar/internal/pagination"
	"thimar/internal/services"
)

// UserHandler handles user administration requests
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsersRequest represents the query parameters for listing users
type ListUsersRequest struct {
	pagination.PageRequest
	Search string `form:"search"`
	Type   string `form:"type" binding:"omitempty,user_type"`
	Status string `form:"status" binding:"omitempty,user_status"`
}

// CreateUserRequest represents the request payload for creating a user
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"required,saudi_phone"`
	Password string `json:"password" binding:"required,min=8"`
	Type     string `json:"type" binding:"required,user_type"`
	Status   string `json:"status" binding:"omitempty,user_status"`
}

// UpdateUserRequest represents the request payload for a partial user update
type UpdateUserRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=2"`
	Email  *string `json:"email" binding:"omitempty,email"`
	Phone  *string `json:"phone" binding:"omitempty,saudi_phone"`
	Type   *string `json:"type" binding:"omitempty,user_type"`
	Status *string `json:"status" binding:"omitempty,user_status"`
	Avatar *string `json:"avatar"`
}

// ListUsers returns the filtered user list
// @Summary     List users
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]any "Users"
// @Router      /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	users, err := h.userService.List(c.Request.Context(), services.UserParams{
		PageRequest: req.PageRequest,
		Search:      req.Search,
		Type:        models.UserType(req.Type),
		Status:      models.UserStatus(req.Status),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUser returns one user
// @Summary     Get a user
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     200 {object} map[string]any "User"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// SearchUserByPhone finds a user by exact phone number
// @Summary     Find a user by phone
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       phone query string true "Phone number"
// @Success     200 {object} map[string]any "User"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /users/search [get]
func (h *UserHandler) SearchUserByPhone(c *gin.Context) {
	user, err := h.userService.GetByPhone(c.Request.Context(), c.Query("phone"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// CreateUser creates a user
// @Summary     Create a user
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateUserRequest true "User details"
// @Success     201 {object} map[string]any "Created user"
// @Failure     422 {object} ErrorResponse "Phone or email taken"
// @Router      /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	user, err := h.userService.Create(c.Request.Context(), services.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Type:     models.UserType(req.Type),
		Status:   models.UserStatus(req.Status),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// UpdateUser applies a partial update
// @Summary     Update a user
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Param       request body UpdateUserRequest true "Fields to change"
// @Success     200 {object} map[string]any "Updated user"
// @Router      /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	update := services.UserUpdate{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Avatar: req.Avatar,
	}
	if req.Type != nil {
		userType := models.UserType(*req.Type)
		update.Type = &userType
	}
	if req.Status != nil {
		status := models.UserStatus(*req.Status)
		update.Status = &status
	}

	user, err := h.userService.Update(c.Request.Context(), id, update)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUser removes a user
// @Summary     Delete a user
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     200 {object} map[string]any "Deleted"
// @Router      /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "تم حذف المستخدم"})
}
