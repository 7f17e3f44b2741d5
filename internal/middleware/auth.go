package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/gin-gonic/gin"

	"file-processing-tasks/internal/model"
	"file-processing-tasks/pkg/response"
)

const (
	HeaderAPIKey   = "X-API-Key"
	HeaderClientID = "X-Client-ID"

	scopeKey    = "scope"
	identityKey = "identity"
)

// Auth rejects requests without the configured API key and stores the caller
// scope on the gin context.
func (mw Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderAPIKey)
		if mw.apiKey != "" && subtle.ConstantTimeCompare([]byte(key), []byte(mw.apiKey)) != 1 {
			mw.l.Warnf(c.Request.Context(), "middleware.Auth: rejected request from %s", c.ClientIP())
			response.Unauthorized(c)
			c.Abort()
			return
		}

		id := mw.identity(c, key)
		c.Set(identityKey, id)
		c.Set(scopeKey, model.Scope{ClientID: clientID(c, id)})
		c.Next()
	}
}

// GetScope returns the scope set by Auth, or one derived from the request
// when Auth did not run.
func GetScope(c *gin.Context) model.Scope {
	if v, ok := c.Get(scopeKey); ok {
		if sc, ok := v.(model.Scope); ok {
			return sc
		}
	}
	return model.Scope{ClientID: clientID(c, c.ClientIP())}
}

// identity is what the caller proved: a fingerprint of the accepted key, or
// the remote address when auth is off. Rate limits are keyed on it.
func (mw Middleware) identity(c *gin.Context, key string) string {
	if mw.apiKey != "" {
		sum := sha256.Sum256([]byte(key))
		return "key:" + hex.EncodeToString(sum[:4])
	}
	return c.ClientIP()
}

// clientID is a label for logs and use cases. The client header is trusted
// only for naming, never for limits.
func clientID(c *gin.Context, identity string) string {
	if id := c.GetHeader(HeaderClientID); id != "" {
		return id
	}
	return identity
}
