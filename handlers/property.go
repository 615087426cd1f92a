package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"nyumbani/middleware"
	"nyumbani/models"
	"nyumbani/services/property"
	"nyumbani/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// PropertyHandler exposes property-listing endpoints.
type PropertyHandler struct {
	PropertyService property.PropertyService
}

// CreateHandler handles POST /api/properties.
func (h *PropertyHandler) CreateHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var input models.Property
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	p, err := h.PropertyService.CreateProperty(actor, &input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetHandler handles GET /api/properties/:id. Listings are public.
func (h *PropertyHandler) GetHandler(c *gin.Context) {
	p, err := h.PropertyService.GetProperty(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListHandler handles GET /api/properties with optional filters.
func (h *PropertyHandler) ListHandler(c *gin.Context) {
	filter := bson.M{}
	if city := c.Query("city"); city != "" {
		filter["address.city"] = city
	}
	if t := c.Query("propertyType"); t != "" {
		filter["propertyType"] = t
	}
	if t := c.Query("listingType"); t != "" {
		filter["listingType"] = t
	}
	if c.Query("available") == "true" {
		filter["isAvailable"] = true
	}

	props, err := h.PropertyService.ListProperties(filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, props)
}

// MineHandler handles GET /api/properties/mine for property managers.
func (h *PropertyHandler) MineHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	props, err := h.PropertyService.ListByManager(actor.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, props)
}

// UpdateHandler handles PATCH /api/properties/:id.
func (h *PropertyHandler) UpdateHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var patch models.PropertyUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	p, err := h.PropertyService.UpdateProperty(actor, c.Param("id"), &patch)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteHandler handles DELETE /api/properties/:id.
func (h *PropertyHandler) DeleteHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	if err := h.PropertyService.DeleteProperty(actor, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}

// UploadImageHandler handles POST /api/properties/:id/images with a
// multipart "image" file. The upload is staged to a temp file and pushed to
// Cloudinary.
func (h *PropertyHandler) UploadImageHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing image file", err.Error())
		return
	}

	tmpPath := filepath.Join(os.TempDir(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to stage upload", err.Error())
		return
	}
	defer os.Remove(tmpPath)

	p, err := h.PropertyService.AttachImage(actor, c.Param("id"), tmpPath)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
