package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/enterprise_ledger/internal/core/ports/services"
	"github.com/SscSPs/enterprise_ledger/internal/dto"
	"github.com/SscSPs/enterprise_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type organizationHandler struct {
	organizationService portssvc.OrganizationSvc
}

// registerOrganizationRoutes mounts the selection routes. rg must resolve a
// store for signed-in users but must not run the enterprise gate.
func registerOrganizationRoutes(rg *gin.RouterGroup, organizationService portssvc.OrganizationSvc) {
	h := &organizationHandler{organizationService: organizationService}

	rg.GET("/select-organization", h.listOrganizations)
	rg.GET("/organizations", h.listOrganizations)
	rg.POST("/organizations/:orgID/switch", h.switchOrganization)
}

// listOrganizations godoc
// @Summary List the caller's organizations
// @Description Lists every organization the caller belongs to and marks the pinned one.
// @Tags organizations
// @Produce json
// @Success 200 {object} dto.ListOrganizationsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No memberships"
// @Security BearerAuth
// @Router /enterprise/organizations [get]
func (h *organizationHandler) listOrganizations(c *gin.Context) {
	store, _ := middleware.GetStoreFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	orgs, err := h.organizationService.ListOrganizations(c.Request.Context(), store, userID)
	if err != nil {
		respondError(c, err, "Failed to list organizations")
		return
	}

	resp := dto.ListOrganizationsResponse{Organizations: orgs}
	if sess, ok := middleware.GetSession(c); ok {
		resp.CurrentOrgID = sess.OrgID
	}
	c.JSON(http.StatusOK, resp)
}

// switchOrganization godoc
// @Summary Pin another organization
// @Description Pins orgID in the session. Only organizations the caller belongs to can be pinned.
// @Tags organizations
// @Produce json
// @Param orgID path string true "Organization ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /enterprise/organizations/{orgID}/switch [post]
func (h *organizationHandler) switchOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c)
	store, _ := middleware.GetStoreFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)
	orgID := c.Param("orgID")

	if err := h.organizationService.SwitchOrganization(c.Request.Context(), store, userID, orgID); err != nil {
		respondError(c, err, "Failed to switch organization")
		return
	}

	if sess, ok := middleware.GetSession(c); ok {
		sess.Pin(orgID)
		sess.AddFlash("success", "Switched organization.")
	}
	logger.Info("Organization switched", slog.String("org_id", orgID))
	c.JSON(http.StatusOK, MessageResponse{Message: "Switched organization"})
}
