package middleware

import (
	"log/slog"
	"net/http"

	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/enterprise_ledger/internal/platform/reqctx"
	"github.com/gin-gonic/gin"
)

// RequireUser resolves a store for signed-in callers on routes that do not
// need a pinned organization (organization selection, business login).
func RequireUser(provider portsrepo.StoreProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := reqctx.PrincipalFrom(c.Request.Context())
		if !ok || principal.UserID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		resolveStore(c, provider, principal.AccessToken)
	}
}

// PublicStore resolves an anonymous store, e.g. for email verification links
// opened outside a session.
func PublicStore(provider portsrepo.StoreProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := reqctx.PrincipalFrom(c.Request.Context())
		resolveStore(c, provider, principal.AccessToken)
	}
}

func resolveStore(c *gin.Context, provider portsrepo.StoreProvider, token string) {
	store, err := provider.ForRequest(c.Request.Context(), token)
	if err != nil {
		GetLoggerFromCtx(c).Error("Failed to resolve data store", slog.String("error", err.Error()))
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Data store unavailable"})
		return
	}
	c.Set(string(storeKey), store)
	c.Next()
}
