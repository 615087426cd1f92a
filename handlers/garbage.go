package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"nyumbani/middleware"
	"nyumbani/models"
	"nyumbani/services/garbage"
	"nyumbani/utils"

	"github.com/gin-gonic/gin"
)

// GarbageHandler exposes garbage-collection company and booking endpoints.
type GarbageHandler struct {
	GarbageService garbage.GarbageService
}

// RegisterCompanyHandler handles POST /api/garbage/companies.
func (h *GarbageHandler) RegisterCompanyHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var input models.GarbageCompany
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	company, err := h.GarbageService.RegisterCompany(actor, &input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

// GetCompanyHandler handles GET /api/garbage/companies/:id.
func (h *GarbageHandler) GetCompanyHandler(c *gin.Context) {
	company, err := h.GarbageService.GetCompany(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// ListCompaniesHandler handles GET /api/garbage/companies. Customers see
// only verified, active companies; ?all=true lifts the filter for admins.
func (h *GarbageHandler) ListCompaniesHandler(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	onlyAvailable := !(c.Query("all") == "true" && actor.Role == models.RoleAdmin)

	companies, err := h.GarbageService.ListCompanies(onlyAvailable)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

// UpdateCompanyHandler handles PATCH /api/garbage/companies/:id.
func (h *GarbageHandler) UpdateCompanyHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var patch models.GarbageCompanyUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	company, err := h.GarbageService.UpdateCompany(actor, c.Param("id"), &patch)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// VerifyCompanyHandler handles PUT /api/garbage/companies/:id/verify.
func (h *GarbageHandler) VerifyCompanyHandler(c *gin.Context) {
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

	company, err := h.GarbageService.VerifyCompany(actor, c.Param("id"), input.Verified)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// UploadDocumentHandler handles POST /api/garbage/companies/:id/documents
// with multipart fields "name" and "document".
func (h *GarbageHandler) UploadDocumentHandler(c *gin.Context) {
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

	company, err := h.GarbageService.AttachDocument(actor, c.Param("id"), docName, tmpPath)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// CreateBookingHandler handles POST /api/garbage/bookings.
func (h *GarbageHandler) CreateBookingHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var input models.GarbageBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	b, p, err := h.GarbageService.CreateBooking(actor, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": b, "payment": p})
}

// GetBookingHandler handles GET /api/garbage/bookings/:id.
func (h *GarbageHandler) GetBookingHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	b, err := h.GarbageService.GetBooking(actor, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListBookingsHandler handles GET /api/garbage/bookings.
func (h *GarbageHandler) ListBookingsHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	bookings, err := h.GarbageService.ListBookings(actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// SetBookingStatusHandler handles PUT /api/garbage/bookings/:id/status.
func (h *GarbageHandler) SetBookingStatusHandler(c *gin.Context) {
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

	b, err := h.GarbageService.SetBookingStatus(actor, c.Param("id"), input.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
