package middleware

import (
	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/enterprise_ledger/internal/platform/reqctx"
	"github.com/SscSPs/enterprise_ledger/internal/platform/session"
	"github.com/gin-gonic/gin"
)

// Keys used in the Gin context. Using a custom type prevents collisions.
type contextKey string

const (
	sessionKey       = contextKey("session")
	sessionCookieKey = contextKey("sessionCookie")
	storeKey         = contextKey("store")
	orgIDKey         = contextKey("orgID")
)

// GetSession returns the session loaded by SessionMiddleware.
func GetSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(string(sessionKey))
	if !ok {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok && s != nil
}

// GetUserIDFromContext returns the authenticated user id.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	p, ok := reqctx.PrincipalFrom(c.Request.Context())
	if !ok {
		return "", false
	}
	return p.UserID, true
}

// GetStoreFromContext returns the store resolved by the enterprise gate.
func GetStoreFromContext(c *gin.Context) (portsrepo.DataStore, bool) {
	v, ok := c.Get(string(storeKey))
	if !ok {
		return nil, false
	}
	s, ok := v.(portsrepo.DataStore)
	return s, ok
}

// GetOrgIDFromContext returns the organization pinned by the enterprise gate.
func GetOrgIDFromContext(c *gin.Context) (string, bool) {
	id := c.GetString(string(orgIDKey))
	return id, id != ""
}
