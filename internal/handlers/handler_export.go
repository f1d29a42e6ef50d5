package handlers

import (
	"fmt"
	"net/http"

	portssvc "github.com/SscSPs/enterprise_ledger/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

type exportHandler struct {
	exportService portssvc.ExportSvc
}

func registerExportRoutes(rg *gin.RouterGroup, exportService portssvc.ExportSvc) {
	h := &exportHandler{exportService: exportService}
	rg.GET("/export/:scope/:format", h.export)
}

// export godoc
// @Summary Download a ledger export
// @Description Exports expenses, revenue or the combined cash flow as CSV or XLSX.
// @Tags export
// @Produce octet-stream
// @Param scope path string true "expenses, revenue or cashflow"
// @Param format path string true "csv or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Nothing to export"
// @Security BearerAuth
// @Router /enterprise/export/{scope}/{format} [get]
func (h *exportHandler) export(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	file, err := h.exportService.Export(c.Request.Context(), scope.store, scope.orgID,
		portssvc.ExportScope(c.Param("scope")), portssvc.ExportFormat(c.Param("format")))
	if err != nil {
		respondError(c, err, "Failed to export")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
