package handlers

import (
	"net/http"

	"nyumbani/models"
	"nyumbani/services/settings"
	"nyumbani/utils"

	"github.com/gin-gonic/gin"
)

// SettingsHandler exposes the global pricing settings (admin).
type SettingsHandler struct {
	SettingsService settings.SettingsService
}

// GetHandler handles GET /api/admin/settings.
func (h *SettingsHandler) GetHandler(c *gin.Context) {
	doc, err := h.SettingsService.Get()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// UpdateHandler handles PATCH /api/admin/settings. Only the fields present
// in the body change; every change is validated before any write.
func (h *SettingsHandler) UpdateHandler(c *gin.Context) {
	var update models.SettingsUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	doc, err := h.SettingsService.Update(update)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}
