package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/enterprise_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// PosthogMiddleware records successful enterprise requests as PostHog events,
// grouped by the pinned organization.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		// "/enterprise/revenue" -> "enterprise_revenue"
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		orgID, _ := GetOrgIDFromContext(c)
		if store, ok := GetStoreFromContext(c); ok {
			props["backend"] = string(store.Backend())
		}
		posthogClient.Enqueue(userID, eventName, orgID, props)
	}
}
