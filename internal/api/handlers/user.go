package handlers

import (
	"net/http"

	"scrim-portal-backend/internal/logger"
	"scrim-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles admin user management
type UserHandler struct {
	userService service.UserServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// List handles GET /api/admin/users
// @Summary List users
// @Description All users in registration order
// @Tags admin
// @Produce json
// @Success 200 {array} models.User "Users"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security CookieAuth
// @Router /api/admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateRole handles PATCH /api/admin/users/:id/role
// @Summary Change a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param role body service.UpdateRoleRequest true "New role"
// @Success 200 {object} models.User "Updated user"
// @Failure 400 {object} ErrorResponse "Invalid role"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 404 {object} ErrorResponse "User not found"
// @Security CookieAuth
// @Router /api/admin/users/{id}/role [patch]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req service.UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateRole(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.WithContext(c.Request.Context()).WithField("target_user", user.ID).WithField("role", user.Role).Info("User role changed")
	c.JSON(http.StatusOK, user)
}
