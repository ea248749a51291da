package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionHeader carries the conversation identifier across requests.
	SessionHeader = "X-Session-ID"
	// SessionKey is the gin context key the handlers read.
	SessionKey = "sessionID"
)

// SessionMiddleware resolves the conversation session for each request.
// Clients without a session header get a fresh UUID; the resolved ID is
// always echoed back so the client can persist it.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			sessionID = uuid.New().String()
		}
		c.Set(SessionKey, sessionID)
		c.Header(SessionHeader, sessionID)
		c.Next()
	}
}

// SessionID returns the session identifier resolved for this request.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionKey)
}
