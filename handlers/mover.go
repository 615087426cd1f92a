package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"nyumbani/middleware"
	"nyumbani/models"
	"nyumbani/services/mover"
	"nyumbani/utils"

	"github.com/gin-gonic/gin"
)

// MoverHandler exposes moving-service company and booking endpoints.
type MoverHandler struct {
	MoverService mover.MoverService
}

// RegisterCompanyHandler handles POST /api/movers/companies.
func (h *MoverHandler) RegisterCompanyHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var input models.MoverCompany
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	company, err := h.MoverService.RegisterCompany(actor, &input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

// GetCompanyHandler handles GET /api/movers/companies/:id.
func (h *MoverHandler) GetCompanyHandler(c *gin.Context) {
	company, err := h.MoverService.GetCompany(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// ListCompaniesHandler handles GET /api/movers/companies.
func (h *MoverHandler) ListCompaniesHandler(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	onlyAvailable := !(c.Query("all") == "true" && actor.Role == models.RoleAdmin)

	companies, err := h.MoverService.ListCompanies(onlyAvailable)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

// UpdateCompanyHandler handles PATCH /api/movers/companies/:id.
func (h *MoverHandler) UpdateCompanyHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var patch models.MoverCompanyUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	company, err := h.MoverService.UpdateCompany(actor, c.Param("id"), &patch)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// VerifyCompanyHandler handles PUT /api/movers/companies/:id/verify.
func (h *MoverHandler) VerifyCompanyHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var input struct {
		Verified bool `json:"verified"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	company, err := h.MoverService.VerifyCompany(actor, c.Param("id"), input.Verified)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// UploadDocumentHandler handles POST /api/movers/companies/:id/documents.
func (h *MoverHandler) UploadDocumentHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	docName := c.PostForm("name")
	file, err := c.FormFile("document")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing document file", err.Error())
		return
	}

	tmpPath := filepath.Join(os.TempDir(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to stage upload", err.Error())
		return
	}
	defer os.Remove(tmpPath)

	company, err := h.MoverService.AttachDocument(actor, c.Param("id"), docName, tmpPath)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// CreateBookingHandler handles POST /api/movers/bookings.
func (h *MoverHandler) CreateBookingHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var input models.MoverBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	b, p, err := h.MoverService.CreateBooking(actor, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": b, "payment": p})
}

// GetBookingHandler handles GET /api/movers/bookings/:id.
func (h *MoverHandler) GetBookingHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	b, err := h.MoverService.GetBooking(actor, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListBookingsHandler handles GET /api/movers/bookings.
func (h *MoverHandler) ListBookingsHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	bookings, err := h.MoverService.ListBookings(actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// SetBookingStatusHandler handles PUT /api/movers/bookings/:id/status.
func (h *MoverHandler) SetBookingStatusHandler(c *gin.Context) {
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

	b, err := h.MoverService.SetBookingStatus(actor, c.Param("id"), input.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
