package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionHeader carries the opaque cart session id. The purchase
	// list is scoped to this id; the server mints one when absent and
	// echoes it back so the client can keep its cart across requests.
	SessionHeader = "X-Session-ID"

	sessionKey = "cart_session_id"
)

// Session binds the request to a cart session.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(sessionKey, id)
		c.Header(SessionHeader, id)
		c.Next()
	}
}

// SessionID returns the cart session id bound by Session.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
