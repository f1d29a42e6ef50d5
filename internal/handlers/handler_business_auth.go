package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/enterprise_ledger/internal/core/ports/services"
	"github.com/SscSPs/enterprise_ledger/internal/dto"
	"github.com/SscSPs/enterprise_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// businessAuthHandler handles the per-business password login layered on top
// of the user session.
type businessAuthHandler struct {
	businessAuthService portssvc.BusinessAuthSvc
}

// registerBusinessAuthRoutes mounts sign-up and sign-in on signedIn (which
// must resolve a store for the user) and verification on public.
func registerBusinessAuthRoutes(signedIn, public *gin.RouterGroup, businessAuthService portssvc.BusinessAuthSvc, limit gin.HandlerFunc) {
	h := &businessAuthHandler{businessAuthService: businessAuthService}

	signedIn.POST("/auth/signup", limit, h.signUp)
	signedIn.POST("/auth/signin", limit, h.signIn)
	public.GET("/auth/verify", h.verifyEmail)
}

// openBusiness records the business as active and pins its organization.
func openBusiness(c *gin.Context, result *portssvc.BusinessAuthResult) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		return
	}
	sess.ActiveBusiness = result.BusinessName
	if result.OrganizationID != "" {
		sess.Pin(result.OrganizationID)
	}
}

// signUp godoc
// @Summary Register a business login
// @Description Stores a bcrypt-hashed business password, sends (logs) a verification link and provisions the organization.
// @Tags business-auth
// @Accept json
// @Produce json
// @Param signup body dto.BusinessSignUpRequest true "Business credentials"
// @Success 201 {object} dto.BusinessAuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Business already registered"
// @Failure 429 {object} ErrorResponse
// @Security BearerAuth
// @Router /enterprise/auth/signup [post]
func (h *businessAuthHandler) signUp(c *gin.Context) {
	store, _ := middleware.GetStoreFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)
	var req dto.BusinessSignUpRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.businessAuthService.SignUp(c.Request.Context(), store, userID, req)
	if err != nil {
		respondError(c, err, "Failed to register business")
		return
	}
	openBusiness(c, result)
	if sess, ok := middleware.GetSession(c); ok {
		sess.AddFlash("success", "Business registered. Check your email to verify it.")
	}
	c.JSON(http.StatusCreated, dto.BusinessAuthResponse{
		BusinessName:   result.BusinessName,
		OrganizationID: result.OrganizationID,
		Verified:       result.Verified,
		Message:        "Verification link sent",
	})
}

// signIn godoc
// @Summary Open a business
// @Description Checks the business password; the business email must be verified.
// @Tags business-auth
// @Accept json
// @Produce json
// @Param signin body dto.BusinessSignInRequest true "Business credentials"
// @Success 200 {object} dto.BusinessAuthResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Email not verified"
// @Failure 429 {object} ErrorResponse
// @Security BearerAuth
// @Router /enterprise/auth/signin [post]
func (h *businessAuthHandler) signIn(c *gin.Context) {
	store, _ := middleware.GetStoreFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)
	var req dto.BusinessSignInRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.businessAuthService.SignIn(c.Request.Context(), store, userID, req)
	if err != nil {
		respondError(c, err, "Failed to sign in to business")
		return
	}
	openBusiness(c, result)
	c.JSON(http.StatusOK, dto.BusinessAuthResponse{
		BusinessName:   result.BusinessName,
		OrganizationID: result.OrganizationID,
		Verified:       result.Verified,
	})
}

// verifyEmail godoc
// @Summary Verify a business email
// @Tags business-auth
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse "Unknown or used token"
// @Router /enterprise/auth/verify [get]
func (h *businessAuthHandler) verifyEmail(c *gin.Context) {
	store, _ := middleware.GetStoreFromContext(c)
	cred, err := h.businessAuthService.VerifyEmail(c.Request.Context(), store, c.Query("token"))
	if err != nil {
		respondError(c, err, "Failed to verify email")
		return
	}
	if sess, ok := middleware.GetSession(c); ok {
		sess.AddFlash("success", "Email verified. You can now sign in to "+cred.BusinessName+".")
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Email verified"})
}
