package middleware

import (
	"log/slog"
	"strings"

	"github.com/SscSPs/enterprise_ledger/internal/platform/reqctx"
	"github.com/SscSPs/enterprise_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// PrincipalMiddleware attaches the authenticated caller to the request context.
// A valid "Authorization: Bearer" access token wins and is also recorded in the
// session; otherwise the signed-in session user is used. Requests without
// either continue anonymously and are turned away by the gate.
func PrincipalMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c)
		sess, _ := GetSession(c)

		if token := bearerToken(c.GetHeader("Authorization")); token != "" {
			claims, err := utils.ParseAccessToken(token, jwtSecret)
			if err == nil {
				if sess != nil {
					if sess.UserID != claims.Subject {
						sess.SignOut()
						RenewSession(c)
						sess.UserID = claims.Subject
						sess.UserEmail = claims.Email
					}
					sess.AccessToken = token
				}
				attachPrincipal(c, reqctx.Principal{UserID: claims.Subject, Email: claims.Email, AccessToken: token})
				c.Next()
				return
			}
			logger.Warn("Invalid access token", slog.String("error", err.Error()))
		}

		if sess.Authenticated() {
			attachPrincipal(c, reqctx.Principal{UserID: sess.UserID, Email: sess.UserEmail, AccessToken: sess.AccessToken})
		}
		c.Next()
	}
}

func attachPrincipal(c *gin.Context, p reqctx.Principal) {
	ctx := reqctx.WithPrincipal(c.Request.Context(), p)
	ctx = reqctx.WithLogger(ctx, reqctx.Logger(ctx).With(slog.String("user_id", p.UserID)))
	c.Request = c.Request.WithContext(ctx)
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
