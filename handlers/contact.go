package handlers

import (
	"net/http"

	"nyumbani/models"
	"nyumbani/services/contact"
	"nyumbani/utils"

	"github.com/gin-gonic/gin"
)

// ContactHandler exposes the public contact form and the admin triage
// endpoints.
type ContactHandler struct {
	ContactService contact.ContactService
}

// SubmitHandler handles POST /api/contact (public).
func (h *ContactHandler) SubmitHandler(c *gin.Context) {
	var input models.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	msg, err := h.ContactService.SubmitMessage(input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Thank you for contacting us! We will get back to you soon.",
		"contact": msg,
	})
}

// ListHandler handles GET /api/contact (admin), with an optional ?status=
// filter.
func (h *ContactHandler) ListHandler(c *gin.Context) {
	msgs, err := h.ContactService.ListMessages(c.Query("status"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// GetHandler handles GET /api/contact/:id (admin). Opening a new message
// marks it read.
func (h *ContactHandler) GetHandler(c *gin.Context) {
	msg, err := h.ContactService.GetMessage(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// SetStatusHandler handles PUT /api/contact/:id/status (admin).
func (h *ContactHandler) SetStatusHandler(c *gin.Context) {
	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Status == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", "status is required")
		return
	}

	msg, err := h.ContactService.SetStatus(c.Param("id"), input.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// DeleteHandler handles DELETE /api/contact/:id (admin).
func (h *ContactHandler) DeleteHandler(c *gin.Context) {
	if err := h.ContactService.DeleteMessage(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contact message deleted"})
}

// UnreadCountHandler handles GET /api/contact/unread-count (admin).
func (h *ContactHandler) UnreadCountHandler(c *gin.Context) {
	count, err := h.ContactService.UnreadCount()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
