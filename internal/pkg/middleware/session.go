package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	SessionHeader    = "X-Session-ID"
	sessionKey       = "sessionID"
	customerTokenKey = "customerToken"
)

// Session requires the browser session id that scopes cart and contact storage.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := strings.TrimSpace(c.GetHeader(SessionHeader))
		if sid == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + SessionHeader})
			return
		}
		c.Set(sessionKey, sid)

		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			c.Set(customerTokenKey, strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")))
		}
		c.Next()
	}
}

func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

// CustomerToken returns the bearer token if the customer is identified, or "".
func CustomerToken(c *gin.Context) string {
	return c.GetString(customerTokenKey)
}
