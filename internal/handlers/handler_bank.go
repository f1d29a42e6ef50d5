package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/enterprise_ledger/internal/core/ports/services"
	"github.com/SscSPs/enterprise_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// bankHandler serves the caller's bank accounts and categories. These belong
// to the user rather than the organization.
type bankHandler struct {
	bankService portssvc.BankSvc
}

func registerBankRoutes(rg *gin.RouterGroup, bankService portssvc.BankSvc) {
	h := &bankHandler{bankService: bankService}

	banks := rg.Group("/banks")
	{
		banks.GET("", h.listBanks)
		banks.POST("", h.addBank)
		banks.PUT("/:bankID", h.updateBank)
		banks.DELETE("/:bankID", h.deleteBank)
	}
	rg.GET("/categories", h.listCategories)
}

// listBanks godoc
// @Summary List personal and enterprise bank accounts
// @Tags banks
// @Produce json
// @Success 200 {object} dto.BanksResponse
// @Security BearerAuth
// @Router /enterprise/banks [get]
func (h *bankHandler) listBanks(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.bankService.ListBanks(c.Request.Context(), scope.store, scope.userID))
}

// addBank godoc
// @Summary Add an enterprise bank account
// @Tags banks
// @Accept json
// @Produce json
// @Param bank body dto.EnterpriseBankRequest true "Bank account"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /enterprise/banks [post]
func (h *bankHandler) addBank(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var req dto.EnterpriseBankRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.bankService.AddEnterpriseBank(c.Request.Context(), scope.store, scope.userID, req); err != nil {
		respondError(c, err, "Failed to add bank account")
		return
	}
	c.JSON(http.StatusCreated, MessageResponse{Message: "Bank account added"})
}

// updateBank godoc
// @Summary Replace an enterprise bank account
// @Tags banks
// @Accept json
// @Produce json
// @Param bankID path string true "Bank account ID"
// @Param bank body dto.EnterpriseBankRequest true "Bank account"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /enterprise/banks/{bankID} [put]
func (h *bankHandler) updateBank(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var req dto.EnterpriseBankRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.bankService.UpdateEnterpriseBank(c.Request.Context(), scope.store, scope.userID, c.Param("bankID"), req); err != nil {
		respondError(c, err, "Failed to update bank account")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Bank account updated"})
}

// deleteBank godoc
// @Summary Delete an enterprise bank account
// @Tags banks
// @Param bankID path string true "Bank account ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /enterprise/banks/{bankID} [delete]
func (h *bankHandler) deleteBank(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	if err := h.bankService.DeleteEnterpriseBank(c.Request.Context(), scope.store, scope.userID, c.Param("bankID")); err != nil {
		respondError(c, err, "Failed to delete bank account")
		return
	}
	c.Status(http.StatusNoContent)
}

// listCategories godoc
// @Summary List transaction categories
// @Description Default categories first, then the caller's custom ones.
// @Tags banks
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Security BearerAuth
// @Router /enterprise/categories [get]
func (h *bankHandler) listCategories(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	categories := h.bankService.ListCategories(c.Request.Context(), scope.store, scope.userID)
	c.JSON(http.StatusOK, dto.CategoriesResponse{Categories: categories})
}
