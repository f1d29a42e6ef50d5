package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/enterprise_ledger/internal/dto"
	"github.com/SscSPs/enterprise_ledger/internal/middleware"
	"github.com/SscSPs/enterprise_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// authHandler starts and ends browser sessions. Credentials are checked by the
// external auth provider; this side only verifies the access token it issued.
type authHandler struct {
	jwtSecret string
}

func registerAuthRoutes(rg *gin.RouterGroup, jwtSecret string) {
	h := &authHandler{jwtSecret: jwtSecret}

	rg.POST("/login", h.login)
	rg.POST("/logout", h.logout)
	rg.GET("/flashes", h.flashes)
}

// login godoc
// @Summary Start a session
// @Description Verifies an access token from the auth provider and signs the session in.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.SignInRequest true "Access token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c)
	var req dto.SignInRequest
	if !bindJSON(c, &req) {
		return
	}

	claims, err := utils.ParseAccessToken(req.AccessToken, h.jwtSecret)
	if err != nil {
		logger.Warn("Rejected access token", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid access token"})
		return
	}

	sess, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Session unavailable"})
		return
	}
	sess.SignOut()
	middleware.RenewSession(c)
	sess.UserID = claims.Subject
	sess.UserEmail = claims.Email
	sess.AccessToken = req.AccessToken

	logger.Info("Session signed in", slog.String("user_id", claims.Subject))
	c.JSON(http.StatusOK, gin.H{"user_id": claims.Subject, "email": claims.Email})
}

// logout godoc
// @Summary End the session
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /logout [post]
func (h *authHandler) logout(c *gin.Context) {
	if sess, ok := middleware.GetSession(c); ok {
		sess.SignOut()
		middleware.RenewSession(c)
		sess.AddFlash("info", "You have been signed out.")
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Signed out"})
}

// flashes godoc
// @Summary Pop queued session messages
// @Tags auth
// @Produce json
// @Success 200 {array} dto.FlashResponse
// @Router /flashes [get]
func (h *authHandler) flashes(c *gin.Context) {
	resp := []dto.FlashResponse{}
	if sess, ok := middleware.GetSession(c); ok {
		for _, f := range sess.PopFlashes() {
			resp = append(resp, dto.FlashResponse{Category: f.Category, Message: f.Message})
		}
	}
	c.JSON(http.StatusOK, resp)
}
