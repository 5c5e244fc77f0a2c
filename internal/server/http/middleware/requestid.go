package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation identifier.
const RequestIDHeader = "X-Request-Id"

const requestIDContextKey = "request_id"

// RequestID assigns a correlation id to each request, honoring one supplied
// by the caller.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDContextKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFromContext returns the correlation id assigned to the request.
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(requestIDContextKey)
}
