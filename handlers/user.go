package handlers

import (
	"net/http"

	"nyumbani/middleware"
	"nyumbani/services/user"
	"nyumbani/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes account and session endpoints.
type UserHandler struct {
	UserService user.UserService
}

// RegisterHandler handles POST /api/users/register.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var input user.RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	resp, err := h.UserService.Register(input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler handles POST /api/users/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	resp, err := h.UserService.Authenticate(input.Email, input.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MeHandler handles GET /api/users/me.
func (h *UserHandler) MeHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	u, err := h.UserService.GetUserByID(actor.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateFCMTokenHandler handles PUT /api/users/fcm-token.
func (h *UserHandler) UpdateFCMTokenHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var input struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Token == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", "token is required")
		return
	}

	if err := h.UserService.UpdateFCMToken(actor.ID, input.Token); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "FCM token updated"})
}

// LogoutHandler handles DELETE /api/users/logout.
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	if err := h.UserService.RevokeAuthToken(actor.ID); err != nil {
		utils.GetLogger().Error("Failed to revoke token", zap.String("userID", actor.ID), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
