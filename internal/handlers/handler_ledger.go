package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/enterprise_ledger/internal/core/ports/services"
	"github.com/SscSPs/enterprise_ledger/internal/dto"
	"github.com/SscSPs/enterprise_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves the revenue, expense and investment ledgers.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := &ledgerHandler{ledgerService: ledgerService}

	rg.GET("/revenue", h.listRevenue)
	rg.GET("/expenses", h.listExpenses)
	rg.POST("/transactions", h.addTransaction)

	investments := rg.Group("/investments")
	{
		investments.GET("", h.listInvestments)
		investments.POST("", h.addInvestment)
	}
}

// listRevenue godoc
// @Summary List revenue
// @Tags ledger
// @Produce json
// @Success 200 {object} dto.ListLedgerResponse
// @Security BearerAuth
// @Router /enterprise/revenue [get]
func (h *ledgerHandler) listRevenue(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	entries := h.ledgerService.ListRevenue(c.Request.Context(), scope.store, scope.orgID)
	c.JSON(http.StatusOK, dto.ToListLedgerResponse(entries))
}

// listExpenses godoc
// @Summary List expenses
// @Tags ledger
// @Produce json
// @Success 200 {object} dto.ListLedgerResponse
// @Security BearerAuth
// @Router /enterprise/expenses [get]
func (h *ledgerHandler) listExpenses(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	entries := h.ledgerService.ListExpenses(c.Request.Context(), scope.store, scope.orgID)
	c.JSON(http.StatusOK, dto.ToListLedgerResponse(entries))
}

// addTransaction godoc
// @Summary Record revenue or an expense
// @Description Appends to the revenue or expense ledger. Bank-paid entries are also mirrored into the caller's personal ledger; a failed mirror does not fail the request.
// @Tags ledger
// @Accept json
// @Produce json
// @Param transaction body dto.AddTransactionRequest true "Transaction"
// @Success 201 {object} dto.AddTransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /enterprise/transactions [post]
func (h *ledgerHandler) addTransaction(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var req dto.AddTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.ledgerService.AddTransaction(c.Request.Context(), scope.store, scope.orgID, scope.userID, req)
	if err != nil {
		respondError(c, err, "Failed to record transaction")
		return
	}

	middleware.GetLoggerFromCtx(c).Info("Transaction recorded",
		slog.String("type", string(req.Type)), slog.String("mirror", string(result.Mirror)))
	c.JSON(http.StatusCreated, dto.AddTransactionResponse{Type: req.Type, Mirror: result.Mirror})
}

// listInvestments godoc
// @Summary List investments and withdrawals
// @Tags ledger
// @Produce json
// @Success 200 {object} dto.ListInvestmentsResponse
// @Security BearerAuth
// @Router /enterprise/investments [get]
func (h *ledgerHandler) listInvestments(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	resp := dto.ListInvestmentsResponse{Investments: h.ledgerService.ListInvestments(c.Request.Context(), scope.store, scope.orgID)}
	if resp.Investments == nil {
		resp.Investments = []domain.Investment{}
	}
	c.JSON(http.StatusOK, resp)
}

// addInvestment godoc
// @Summary Record an investment or withdrawal
// @Tags ledger
// @Accept json
// @Produce json
// @Param investment body dto.AddInvestmentRequest true "Investment"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /enterprise/investments [post]
func (h *ledgerHandler) addInvestment(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var req dto.AddInvestmentRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.ledgerService.AddInvestment(c.Request.Context(), scope.store, scope.orgID, scope.userID, req); err != nil {
		respondError(c, err, "Failed to record investment")
		return
	}
	c.JSON(http.StatusCreated, MessageResponse{Message: "Investment recorded"})
}
