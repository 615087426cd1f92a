package handlers

import (
	"net/http"

	"nyumbani/services/user"
	"nyumbani/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes admin-only account operations.
type AdminHandler struct {
	UserService user.UserService
}

// GetAllUsersHandler handles GET /api/admin/users.
func (h *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := h.UserService.GetAllUsers()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// DeleteUserHandler handles DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUserHandler(c *gin.Context) {
	if err := h.UserService.DeleteUser(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
