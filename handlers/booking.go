package handlers

import (
	"net/http"

	"nyumbani/middleware"
	"nyumbani/models"
	"nyumbani/services/booking"
	"nyumbani/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes viewing-booking endpoints.
type BookingHandler struct {
	BookingService booking.BookingService
}

// CreateHandler handles POST /api/bookings. The response carries both the
// booking and the viewing-fee payment to settle.
func (h *BookingHandler) CreateHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	b, p, err := h.BookingService.CreateBooking(actor, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": b, "payment": p})
}

// GetHandler handles GET /api/bookings/:id.
func (h *BookingHandler) GetHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	b, err := h.BookingService.GetBooking(actor, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListHandler handles GET /api/bookings.
func (h *BookingHandler) ListHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	bookings, err := h.BookingService.ListBookings(actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// UpdateHandler handles PATCH /api/bookings/:id.
func (h *BookingHandler) UpdateHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	b, err := h.BookingService.UpdateBooking(actor, c.Param("id"), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// SetStatusHandler handles PUT /api/bookings/:id/status.
func (h *BookingHandler) SetStatusHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Status == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", "status is required")
		return
	}

	b, err := h.BookingService.SetStatus(actor, c.Param("id"), input.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
