package handlers

import (
	"net/http"

	"nyumbani/middleware"
	"nyumbani/models"
	"nyumbani/services/payment"
	"nyumbani/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler exposes payment and settlement endpoints.
type PaymentHandler struct {
	PaymentService payment.PaymentService
}

// ProcessHandler handles POST /api/payments/:id/process.
func (h *PaymentHandler) ProcessHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var input models.ProcessPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	p, err := h.PaymentService.ProcessPayment(actor, c.Param("id"), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetHandler handles GET /api/payments/:id.
func (h *PaymentHandler) GetHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	p, err := h.PaymentService.GetPayment(actor, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListHandler handles GET /api/payments.
func (h *PaymentHandler) ListHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	payments, err := h.PaymentService.ListPayments(actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// RefundHandler handles POST /api/payments/:id/refund (admin).
func (h *PaymentHandler) RefundHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	p, err := h.PaymentService.RefundPayment(actor, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// PayCommissionHandler handles POST /api/payments/:id/pay-commission
// (admin). Settles the provider's share of a completed, paid service.
func (h *PaymentHandler) PayCommissionHandler(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	p, err := h.PaymentService.PayCommission(actor, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
