package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/enterprise_ledger/internal/core/ports/services"
	"github.com/SscSPs/enterprise_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := &reportingHandler{reportingService: reportingService}

	rg.GET("/dashboard", h.dashboard)
	rg.GET("/cashflow", h.cashflow)
}

// dashboard godoc
// @Summary Enterprise dashboard
// @Description KPIs and the six-month revenue/expense trend of the pinned organization.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 302 "Gate redirect"
// @Security BearerAuth
// @Router /enterprise/dashboard [get]
func (h *reportingHandler) dashboard(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	resp, err := h.reportingService.Dashboard(c.Request.Context(), scope.store, scope.orgID)
	if err != nil {
		respondError(c, err, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// cashflow godoc
// @Summary Combined cash flow
// @Description Revenue and expenses in one newest-first ledger for a preset or custom period.
// @Tags reports
// @Produce json
// @Param period query string false "this_month, last_month, this_year or custom"
// @Param start_date query string false "Custom start (YYYY-MM-DD)"
// @Param end_date query string false "Custom end (YYYY-MM-DD)"
// @Success 200 {object} dto.CashflowResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /enterprise/cashflow [get]
func (h *reportingHandler) cashflow(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var q dto.CashflowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	resp, err := h.reportingService.Cashflow(c.Request.Context(), scope.store, scope.orgID, scope.userID, q)
	if err != nil {
		respondError(c, err, "Failed to load cash flow")
		return
	}
	c.JSON(http.StatusOK, resp)
}
