package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/enterprise_ledger/internal/platform/session"
	"github.com/gin-gonic/gin"
)

// SessionConfig controls the session cookie.
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// SessionMiddleware loads the caller's session (or starts a new one) before
// the handler runs and saves it afterwards. Last writer wins.
func SessionMiddleware(store session.Store, cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c)

		var sess *session.Session
		loadedID := ""
		if id, err := c.Cookie(cfg.CookieName); err == nil && id != "" {
			loaded, err := store.Load(c.Request.Context(), id)
			switch {
			case err == nil:
				sess = loaded
				loadedID = loaded.ID
			case errors.Is(err, session.ErrNotFound):
			default:
				logger.Warn("Failed to load session", slog.String("error", err.Error()))
			}
		}
		if sess == nil {
			sess = session.New()
		}

		setSessionCookie(c, cfg, sess.ID)
		c.Set(string(sessionKey), sess)
		c.Set(string(sessionCookieKey), cfg)

		c.Next()

		if loadedID != "" && loadedID != sess.ID {
			if err := store.Delete(c.Request.Context(), loadedID); err != nil {
				logger.Warn("Failed to delete renewed session", slog.String("error", err.Error()))
			}
		}
		if err := store.Save(c.Request.Context(), sess); err != nil {
			logger.Error("Failed to save session", slog.String("error", err.Error()))
		}
	}
}

// RenewSession gives the request's session a fresh id and re-issues the cookie.
// It must run before the response is written. The old id is deleted from the
// store when SessionMiddleware finishes.
func RenewSession(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		return
	}
	sess.Renew()
	if v, ok := c.Get(string(sessionCookieKey)); ok {
		if cfg, ok := v.(SessionConfig); ok {
			setSessionCookie(c, cfg, sess.ID)
		}
	}
}

// setSessionCookie replaces any session cookie already queued on the response.
func setSessionCookie(c *gin.Context, cfg SessionConfig, id string) {
	header := c.Writer.Header()
	var kept []string
	for _, v := range header.Values("Set-Cookie") {
		if !strings.HasPrefix(v, cfg.CookieName+"=") {
			kept = append(kept, v)
		}
	}
	header.Del("Set-Cookie")
	for _, v := range kept {
		header.Add("Set-Cookie", v)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, id, int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)
}
