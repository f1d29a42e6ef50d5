package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/enterprise_ledger/internal/core/ports/services"
	"github.com/SscSPs/enterprise_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type holdingPaymentHandler struct {
	holdingService portssvc.HoldingPaymentSvc
}

func registerHoldingPaymentRoutes(rg *gin.RouterGroup, holdingService portssvc.HoldingPaymentSvc) {
	h := &holdingPaymentHandler{holdingService: holdingService}

	payments := rg.Group("/holding-payments")
	{
		payments.GET("", h.listHoldingPayments)
		payments.POST("", h.createHoldingPayment)
		payments.POST("/:paymentID/settle", h.settleHoldingPayment)
	}
}

// listHoldingPayments godoc
// @Summary List receivables and payables
// @Tags holding-payments
// @Produce json
// @Success 200 {object} dto.ListHoldingPaymentsResponse
// @Security BearerAuth
// @Router /enterprise/holding-payments [get]
func (h *holdingPaymentHandler) listHoldingPayments(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	payments := h.holdingService.ListHoldingPayments(c.Request.Context(), scope.store, scope.orgID)
	c.JSON(http.StatusOK, dto.ToListHoldingPaymentsResponse(payments))
}

// createHoldingPayment godoc
// @Summary Record a receivable or payable
// @Tags holding-payments
// @Accept json
// @Produce json
// @Param payment body dto.CreateHoldingPaymentRequest true "Holding payment"
// @Success 201 {object} domain.HoldingPayment
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /enterprise/holding-payments [post]
func (h *holdingPaymentHandler) createHoldingPayment(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateHoldingPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	hp, err := h.holdingService.CreateHoldingPayment(c.Request.Context(), scope.store, scope.orgID, scope.userID, req)
	if err != nil {
		respondError(c, err, "Failed to record holding payment")
		return
	}
	c.JSON(http.StatusCreated, hp)
}

// settleHoldingPayment godoc
// @Summary Settle a holding payment
// @Description Settles part_amount, or the whole outstanding balance when full is set. Over-settlement is rejected.
// @Tags holding-payments
// @Accept json
// @Produce json
// @Param paymentID path string true "Holding payment ID"
// @Param settlement body dto.SettleHoldingPaymentRequest true "Settlement"
// @Success 200 {object} domain.HoldingPayment
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Concurrent settlement"
// @Security BearerAuth
// @Router /enterprise/holding-payments/{paymentID}/settle [post]
func (h *holdingPaymentHandler) settleHoldingPayment(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var req dto.SettleHoldingPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	hp, err := h.holdingService.SettleHoldingPayment(c.Request.Context(), scope.store, scope.orgID, c.Param("paymentID"), scope.userID, req)
	if err != nil {
		respondError(c, err, "Failed to settle holding payment")
		return
	}
	c.JSON(http.StatusOK, hp)
}
